// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import "testing"

func TestTerminalTagging(t *testing.T) {
	for _, v := range []int32{0, 1, 2, 42} {
		n := mkterminal(v)
		if !n.IsTerminal() {
			t.Fatalf("mkterminal(%d) not tagged as terminal", v)
		}
		if n.Value() != v {
			t.Fatalf("mkterminal(%d).Value() = %d", v, n.Value())
		}
	}
}

func TestHashConsing(t *testing.T) {
	c := New()
	a := c.And(c.Ithvar(1), c.Ithvar(2))
	b := c.And(c.Ithvar(1), c.Ithvar(2))
	if a != b {
		t.Fatalf("expected hash-consed equality, got %v != %v", a, b)
	}
}

func TestApplyTruthTable(t *testing.T) {
	c := New()
	x, y := c.Ithvar(1), c.Ithvar(2)
	and := c.And(x, y)
	or := c.Or(x, y)
	xor := c.Xor(x, y)

	cases := []struct {
		name   string
		node   Node
		x, y   bool
		expect bool
	}{
		{"and-00", and, false, false, false},
		{"and-11", and, true, true, true},
		{"or-00", or, false, false, false},
		{"or-10", or, true, false, true},
		{"xor-11", xor, true, true, false},
		{"xor-10", xor, true, false, true},
	}
	for _, tc := range cases {
		res := c.Evaluate(tc.node, func(level int) bool {
			switch level {
			case 1:
				return tc.x
			case 2:
				return tc.y
			}
			return false
		})
		if (res == c.one) != tc.expect {
			t.Errorf("%s: got %v want %v", tc.name, res == c.one, tc.expect)
		}
	}
}

func TestNotInvolution(t *testing.T) {
	c := New()
	n := c.And(c.Ithvar(1), c.NIthvar(2))
	if c.Not(c.Not(n)) != n {
		t.Fatal("not(not(n)) != n")
	}
}

func TestIteMatchesOrAndNot(t *testing.T) {
	c := New()
	f, g, h := c.Ithvar(1), c.Ithvar(2), c.Ithvar(3)
	ite := c.Ite(f, g, h)
	manual := c.Or(c.And(f, g), c.And(c.Not(f), h))
	if ite != manual {
		t.Fatalf("Ite(f,g,h) != (f&g)|(!f&h): %v != %v", ite, manual)
	}
}

func TestIncrefDecrefReclaims(t *testing.T) {
	c := New()
	before := c.freenum
	n := c.And(c.Ithvar(1), c.Ithvar(2))
	if c.freenum >= before {
		t.Fatal("expected a node to be consumed")
	}
	c.Decref(n)
	if c.freenum != before {
		t.Fatalf("expected node to be reclaimed: freenum %d want %d", c.freenum, before)
	}
}

// TestDecrefReclaimsWholeChain guards against the reference-counting
// regression where mknonterm never assigned a real reference on creation:
// once the caller releases the intermediate operand it owns, every node
// built for the final root is reachable only through that root's refcount,
// so a single Decref on the root unwinds the whole chain back to the free
// list.
func TestDecrefReclaimsWholeChain(t *testing.T) {
	c := New()
	before := c.freenum
	ab := c.And(c.Ithvar(1), c.Ithvar(2))
	g := c.And(ab, c.Ithvar(3))
	c.Decref(ab)
	if c.freenum >= before {
		t.Fatal("expected new nodes to be consumed building the chain")
	}
	c.Decref(g)
	if c.freenum != before {
		t.Fatalf("expected every node built for the chain to be reclaimed: freenum %d want %d", c.freenum, before)
	}
}
