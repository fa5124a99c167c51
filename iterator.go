// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import "net/netip"

// Tribool is the value an assignment gives a single decision variable while
// enumerating the satisfying paths of a node: a variable can be forced
// false or true, or left as a don't care because no reachable path's result
// depends on it.
type Tribool int8

const (
	TriFalse  Tribool = 0
	TriTrue   Tribool = 1
	TriEither Tribool = 2
)

// profile walks n, the value of bit true meaning walk the high/true branch,
// and calls visit with a length-varnum Tribool slice for every satisfying
// path. Skipped levels (nodes whose children are reached without a decision
// node at every intermediate level) are reported as TriEither.
func (c *Cache) profile(n Node, visit func([]Tribool)) {
	acc := make([]Tribool, varnum)
	for i := range acc {
		acc[i] = TriEither
	}
	var walk func(Node, int32)
	walk = func(m Node, level int32) {
		if m == c.zero {
			return
		}
		if level == int32(varnum) || m == c.one {
			out := make([]Tribool, varnum)
			copy(out, acc)
			visit(out)
			return
		}
		rec := c.nodes[m.index()]
		if rec.variable != level {
			walk(m, level+1)
			return
		}
		acc[level] = TriFalse
		walk(rec.low, level+1)
		acc[level] = TriTrue
		walk(rec.high, level+1)
		acc[level] = TriEither
	}
	walk(n, 0)
}

// Iterate calls visit once for every network of s whose host bits are all
// either fixed or a contiguous don't-care suffix, i.e. every network that
// can be expressed as a single CIDR literal. A profile whose don't cares
// are not confined to a tail is expanded bit by bit until it is.
func (s *Set) Iterate(visit func(netip.Prefix) error) error {
	return s.cache.iterateNode(s.root, visit)
}

// IterateComplement calls visit for the complement of s (every network not
// in s), using the same CIDR summarization as Iterate.
func (s *Set) IterateComplement(visit func(netip.Prefix) error) error {
	comp := s.cache.Not(s.root)
	err := s.cache.iterateNode(comp, visit)
	s.cache.Decref(comp)
	return err
}

func (c *Cache) iterateNode(root Node, visit func(netip.Prefix) error) error {
	var outerErr error
	c.profile(root, func(p []Tribool) {
		if outerErr != nil {
			return
		}
		switch p[FamilyVar] {
		case TriTrue:
			outerErr = emitFamily(p[1:1+IPv4Bits], true, visit)
		case TriFalse:
			outerErr = emitFamily(p[1:1+IPv6Bits], false, visit)
		case TriEither:
			if err := emitFamily(p[1:1+IPv4Bits], true, visit); err != nil {
				outerErr = err
				return
			}
			outerErr = emitFamily(p[1:1+IPv6Bits], false, visit)
		}
	})
	return outerErr
}

// emitFamily summarizes one family's bit profile into the smallest set of
// CIDR literals that cover exactly the addresses the profile describes,
// expanding any don't care that is not part of the trailing run.
func emitFamily(bits []Tribool, v4 bool, visit func(netip.Prefix) error) error {
	firstEither := len(bits)
	for i, b := range bits {
		if b == TriEither {
			firstEither = i
			break
		}
	}
	tailAllEither := true
	for i := firstEither; i < len(bits); i++ {
		if bits[i] != TriEither {
			tailAllEither = false
			break
		}
	}
	if tailAllEither {
		return emitCIDR(bits, firstEither, v4, visit)
	}
	// Expand the first don't care that has a later fixed bit into its two
	// concrete values and recurse on each.
	mid := firstEither
	for _, v := range [2]Tribool{TriFalse, TriTrue} {
		next := make([]Tribool, len(bits))
		copy(next, bits)
		next[mid] = v
		if err := emitFamily(next, v4, visit); err != nil {
			return err
		}
	}
	return nil
}

func emitCIDR(bits []Tribool, prefixlen int, v4 bool, visit func(netip.Prefix) error) error {
	raw := make([]byte, len(bits)/8)
	for i := 0; i < prefixlen; i++ {
		if bits[i] == TriTrue {
			raw[i/8] |= 1 << uint(7-i%8)
		}
	}
	var addr netip.Addr
	if v4 {
		var a4 [4]byte
		copy(a4[:], raw)
		addr = netip.AddrFrom4(a4)
	} else {
		var a16 [16]byte
		copy(a16[:], raw)
		addr = netip.AddrFrom16(a16)
	}
	return visit(netip.PrefixFrom(addr, prefixlen))
}

// Networks collects the CIDR summarization of s into a slice, for callers
// that do not need the streaming form of Iterate.
func (s *Set) Networks() ([]netip.Prefix, error) {
	var out []netip.Prefix
	err := s.Iterate(func(p netip.Prefix) error {
		out = append(out, p)
		return nil
	})
	return out, err
}
