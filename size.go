// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import "math/big"

// RestrictFamily fixes the family variable (level 0) to v4 and returns the
// resulting subgraph over the remaining address-bit variables. Because the
// family variable is always the topmost level in the order, a node that
// still depends on it is always found exactly at the root -- any node seen
// at a deeper level already has the same value for both families.
func (c *Cache) RestrictFamily(n Node, v4 bool) Node {
	if n.IsTerminal() {
		return n
	}
	rec := c.nodes[n.index()]
	if rec.variable != FamilyVar {
		return n
	}
	if v4 {
		return rec.high
	}
	return rec.low
}

// SatCount counts the number of distinct assignments to the variables at
// levels 1..nvars that make n true, treating any level beyond nvars (and
// any level skipped between a node and its children within that range) as
// a don't care that is free to take either value.
func (c *Cache) SatCount(n Node, nvars int) *big.Int {
	return c.satcountAt(n, 1, int32(nvars))
}

func (c *Cache) satcountAt(n Node, from, bound int32) *big.Int {
	if n == c.zero {
		return big.NewInt(0)
	}
	if n == c.one {
		return new(big.Int).Lsh(big.NewInt(1), uint(bound-from+1))
	}
	rec := c.nodes[n.index()]
	lvl := rec.variable
	gap := new(big.Int).Lsh(big.NewInt(1), uint(lvl-from))
	low := c.satcountAt(rec.low, lvl+1, bound)
	high := c.satcountAt(rec.high, lvl+1, bound)
	sum := new(big.Int).Add(low, high)
	return sum.Mul(sum, gap)
}

// AddressCount returns the exact number of addresses matched by n, split
// between the IPv4 and IPv6 halves of the address space so that the shared
// don't-care tail (levels 33..128 on an IPv4-only entry) never inflates the
// count the way a single satcount over all 129 levels would.
func (c *Cache) AddressCount(n Node) *big.Int {
	v4 := c.SatCount(c.RestrictFamily(n, true), IPv4Bits)
	v6 := c.SatCount(c.RestrictFamily(n, false), IPv6Bits)
	return new(big.Int).Add(v4, v6)
}
