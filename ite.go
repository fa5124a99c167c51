// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

// Ite (if-then-else) computes the node for (f & g) | (!f & h) directly,
// rather than as three separate Apply calls, exactly the shortcut a BDD
// package takes because the combined recursion shares far more
// subcomputations than composing And/Or/Not would.
func (c *Cache) Ite(f, g, h Node) Node {
	switch {
	case f == c.one:
		return c.Incref(g)
	case f == c.zero:
		return c.Incref(h)
	case g == h:
		return c.Incref(g)
	case g == c.one && h == c.zero:
		return c.Incref(f)
	case g == c.zero && h == c.one:
		return c.Not(f)
	}
	if res, ok := c.caches.ite.match(c, f, g, h); ok {
		return res
	}
	p := c.levelOf(f)
	q := c.levelOf(g)
	r := c.levelOf(h)
	m := min3(p, q, r)
	low := c.Ite(iteBranch(c, p, q, r, f, false), iteBranch(c, q, p, r, g, false), iteBranch(c, r, p, q, h, false))
	high := c.Ite(iteBranch(c, p, q, r, f, true), iteBranch(c, q, p, r, g, true), iteBranch(c, r, p, q, h, true))
	res := c.mknonterm(m, low, high)
	return c.caches.ite.set(f, g, h, res)
}

// iteBranch returns n's low (or high) branch when n's own level is the
// smallest of the three, and n unchanged otherwise -- only the node(s)
// actually sitting at the top level get expanded at each recursive step.
func iteBranch(c *Cache, self, other1, other2 int32, n Node, high bool) Node {
	if self > other1 || self > other2 {
		return n
	}
	if high {
		return c.branchHigh(n)
	}
	return c.branchLow(n)
}

func min3(p, q, r int32) int32 {
	if p <= q {
		if p <= r {
			return p
		}
		return r
	}
	if q <= r {
		return q
	}
	return r
}
