// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

// NodesEqual reports whether id1 in cache1 and id2 in cache2 describe the
// same function, walking both graphs structurally instead of comparing ids
// directly. Hash-consing only guarantees that equal subgraphs share one id
// within a single unique table; two Caches built independently (or grown to
// different sizes) can assign the same structural node different ids, so
// id1 == id2 is meaningful only when cache1 == cache2.
func NodesEqual(cache1 *Cache, id1 Node, cache2 *Cache, id2 Node) bool {
	if cache1 == cache2 {
		return id1 == id2
	}
	return nodesEqual(cache1, id1, cache2, id2, make(map[[2]Node]bool))
}

func nodesEqual(c1 *Cache, n1 Node, c2 *Cache, n2 Node, equal map[[2]Node]bool) bool {
	if n1.IsTerminal() || n2.IsTerminal() {
		return n1.IsTerminal() && n2.IsTerminal() && n1.Value() == n2.Value()
	}
	key := [2]Node{n1, n2}
	if equal[key] {
		return true
	}
	r1 := c1.nodes[n1.index()]
	r2 := c2.nodes[n2.index()]
	if r1.variable != r2.variable {
		return false
	}
	if !nodesEqual(c1, r1.low, c2, r2.low, equal) {
		return false
	}
	if !nodesEqual(c1, r1.high, c2, r2.high, equal) {
		return false
	}
	equal[key] = true
	return true
}
