// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package ipbdd represents sets and maps of IPv4 and IPv6 addresses as
reduced, ordered binary decision diagrams (ROBDDs). The variable order is
fixed rather than configurable: level 0 selects the address family (true
for IPv4, false for IPv6), and levels 1 through 128 carry the address bits,
most significant first. An IPv4 entry only ever constrains levels 1..32,
leaving the rest as don't care, so an IPv4 network and an IPv6 network can
share a single diagram without either one paying for the other's width.

Basics

A Cache is the node store, unique table and operator memoization tables
for one ROBDD universe; every Set or Map is a single root Node inside a
particular Cache. Node is a tagged integer: the low bit marks a terminal
(with the remaining bits holding its value) versus a nonterminal (with the
remaining bits holding an arena index). Because the diagram is reduced,
two nodes describe the same function if and only if they are the same
Node value -- testing Set.Equal is a single comparison, never a walk.

Explicit reference counting

Unlike a general-purpose BDD kernel that can piggyback on the host
language's garbage collector to reclaim unreferenced nodes automatically,
a Cache here reclaims a node's arena slot the moment Cache.Decref drops its
count to zero, cascading into its children. Every Cache operation that
returns a node (the And/Or/Xor/AndNot/Not/Ite family, AddressNode,
NetworkNode, Load) hands back a Node the caller owns: hold onto it past
the call, or release it with Decref. Set and Map manage this bookkeeping
for their own root internally (Set.Add, Map.Set and the like return no
Node) and expose Close to release it.

Serialization

Save and Load exchange a Cache-independent, versioned binary encoding of a
single root's reachable subgraph: nonterminals are written in postorder
(children before parents) so that Load reads the stream in one linear
pass, resolving each branch's stream id against either a terminal value
(non-negative) or an already-materialized earlier record (negative), then
reconstructs nodes in that same order once every record's reference count
is known.
*/
package ipbdd
