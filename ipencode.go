// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"fmt"
	"net/netip"
)

// addressBits returns the family bit (true for IPv4) and the ordered,
// MSB-first address bits for addr.
func addressBits(addr netip.Addr) (bool, []bool) {
	addr = addr.Unmap()
	v4 := addr.Is4()
	raw := addr.AsSlice()
	bits := make([]bool, 0, len(raw)*8)
	for _, byt := range raw {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (byt>>uint(i))&1 == 1)
		}
	}
	return v4, bits
}

// cube builds the conjunction of Ithvar/NIthvar over the family variable and
// every fixed address-bit level; levels past prefixlen are left unmentioned
// (don't care), exactly matching CIDR semantics: a /p network constrains the
// top p bits and leaves the rest free.
func (c *Cache) cube(v4 bool, bits []bool, prefixlen int) Node {
	fam := c.Ithvar(FamilyVar)
	if !v4 {
		fam = c.NIthvar(FamilyVar)
	}
	res := c.And(c.one, fam)
	for i := 0; i < prefixlen; i++ {
		lvl := i + 1
		bit := c.Ithvar(lvl)
		if !bits[i] {
			bit = c.NIthvar(lvl)
		}
		next := c.And(res, bit)
		c.Decref(res)
		res = next
	}
	return res
}

// AddressNode returns the cube matching exactly one address (prefix length
// equal to the full width of its family).
func (c *Cache) AddressNode(addr netip.Addr) Node {
	v4, bits := addressBits(addr)
	return c.cube(v4, bits, len(bits))
}

// NetworkNode returns the cube matching every address inside prefix. In
// Strict mode, a prefix whose host bits are not all zero is reported as an
// invalid_network error; in Lenient mode the host bits are masked off
// instead.
func (c *Cache) NetworkNode(prefix netip.Prefix, mode Mode) (Node, error) {
	if !prefix.IsValid() {
		return 0, newError(KindInvalidNetwork, fmt.Sprintf("invalid prefix %v", prefix), nil)
	}
	addr := prefix.Addr().Unmap()
	v4, bits := addressBits(addr)
	plen := prefix.Bits()
	width := len(bits)
	if plen < 0 || plen > width {
		return 0, newError(KindInvalidNetwork, fmt.Sprintf("prefix length %d out of range for %v", plen, addr), nil)
	}
	for i := plen; i < width; i++ {
		if bits[i] {
			if mode == Strict {
				return 0, newError(KindInvalidNetwork, fmt.Sprintf("%v has non-zero host bits past /%d", prefix, plen), nil)
			}
			bits[i] = false
		}
	}
	return c.cube(v4, bits, plen), nil
}

// ParseAddress parses a textual IPv4 or IPv6 literal.
func ParseAddress(s string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, newError(KindInvalidAddress, fmt.Sprintf("cannot parse address %q", s), err)
	}
	return addr, nil
}

// ParseNetwork parses a textual CIDR literal (ADDR/PREFIX), or a bare
// address literal treated as a /32 or /128 host network.
func ParseNetwork(s string) (netip.Prefix, error) {
	if prefix, err := netip.ParsePrefix(s); err == nil {
		return prefix, nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, newError(KindInvalidNetwork, fmt.Sprintf("cannot parse network %q", s), err)
	}
	bits := 32
	if addr.Is6() && !addr.Is4In6() {
		bits = 128
	}
	return netip.PrefixFrom(addr, bits), nil
}
