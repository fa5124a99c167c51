// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"math/big"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAddContainsRemove(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()

	addr := netip.MustParseAddr("198.51.100.7")
	require.False(t, s.Contains(addr))
	s.Add(addr)
	require.True(t, s.Contains(addr))
	s.Remove(addr)
	require.False(t, s.Contains(addr))
}

func TestSetAddNetworkContainsMembers(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()

	net := netip.MustParsePrefix("203.0.113.0/24")
	require.NoError(t, s.AddNetwork(net))
	require.True(t, s.Contains(netip.MustParseAddr("203.0.113.1")))
	require.True(t, s.Contains(netip.MustParseAddr("203.0.113.255")))
	require.False(t, s.Contains(netip.MustParseAddr("203.0.114.1")))

	ok, err := s.ContainsNetwork(netip.MustParsePrefix("203.0.113.128/25"))
	require.NoError(t, err)
	require.True(t, ok)
}

// P1: IsEmpty holds for a freshly created set.
func TestP1EmptySet(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	require.True(t, s.IsEmpty())
	require.Equal(t, big.NewInt(0), s.Size())
}

// P2: adding then removing the same address returns to the empty set.
func TestP2AddRemoveRoundTrip(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	addr := netip.MustParseAddr("2001:db8::42")
	s.Add(addr)
	require.False(t, s.IsEmpty())
	s.Remove(addr)
	require.True(t, s.IsEmpty())
}

// P3: union, intersection and difference agree with direct membership tests
// on a sample of addresses.
func TestP3SetAlgebraAgreesWithMembership(t *testing.T) {
	c := New()
	a := NewSet(c)
	b := NewSet(c)
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.AddNetwork(netip.MustParsePrefix("10.0.0.0/24")))
	require.NoError(t, b.AddNetwork(netip.MustParsePrefix("10.0.0.128/25")))

	union := a.Union(b)
	inter := a.Intersect(b)
	diff := a.Difference(b)
	defer union.Close()
	defer inter.Close()
	defer diff.Close()

	sample := []netip.Addr{
		netip.MustParseAddr("10.0.0.1"),
		netip.MustParseAddr("10.0.0.200"),
		netip.MustParseAddr("10.0.1.1"),
	}
	for _, addr := range sample {
		want := a.Contains(addr) || b.Contains(addr)
		require.Equal(t, want, union.Contains(addr), addr.String())
		require.Equal(t, a.Contains(addr) && b.Contains(addr), inter.Contains(addr), addr.String())
		require.Equal(t, a.Contains(addr) && !b.Contains(addr), diff.Contains(addr), addr.String())
	}
}

// P4: Equal holds for sets built from different networks that cover the
// same addresses, and distinguishes sets with different members.
func TestP4EqualIsStructural(t *testing.T) {
	c := New()
	a := NewSet(c)
	b := NewSet(c)
	defer a.Close()
	defer b.Close()

	require.NoError(t, a.AddNetwork(netip.MustParsePrefix("172.16.0.0/16")))
	require.NoError(t, b.AddNetwork(netip.MustParsePrefix("172.16.0.0/17")))
	require.NoError(t, b.AddNetwork(netip.MustParsePrefix("172.16.128.0/17")))
	require.True(t, a.Equal(b))

	c2 := NewSet(c)
	defer c2.Close()
	require.NoError(t, c2.AddNetwork(netip.MustParsePrefix("172.17.0.0/16")))
	require.False(t, a.Equal(c2))
}

// P5: Size counts exactly the addresses a CIDR network covers.
func TestP5SizeMatchesPrefixWidth(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("192.168.0.0/28")))
	require.Equal(t, big.NewInt(16), s.Size())
}

// P6: a set built purely from IPv4 networks never reports IPv6 membership.
func TestP6FamiliesDoNotLeak(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("0.0.0.0/0")))
	require.False(t, s.Contains(netip.MustParseAddr("::1")))
}

// Scenario 6: lenient mode accepts a misaligned network literal that strict
// mode rejects, masking its host bits.
func TestScenarioLenientVsStrictNetwork(t *testing.T) {
	c := New()
	s := NewSet(c)
	s.SetMode(Strict)
	defer s.Close()
	require.Error(t, s.AddNetwork(netip.MustParsePrefix("10.1.2.3/24")))

	s.SetMode(Lenient)
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("10.1.2.3/24")))
	require.True(t, s.Contains(netip.MustParseAddr("10.1.2.0")))
}

func TestMapDefaultAndOverride(t *testing.T) {
	c := New()
	m := NewMap(c, -1)
	defer m.Close()

	addr := netip.MustParseAddr("10.20.30.40")
	require.Equal(t, -1, m.Get(addr))
	m.Set(addr, 7)
	require.Equal(t, 7, m.Get(addr))
	m.Remove(addr)
	require.Equal(t, -1, m.Get(addr))
}

func TestMapNetworkOverride(t *testing.T) {
	c := New()
	m := NewMap(c, 0)
	defer m.Close()
	require.NoError(t, m.SetNetwork(netip.MustParsePrefix("10.0.0.0/24"), 100))
	require.Equal(t, 100, m.Get(netip.MustParseAddr("10.0.0.42")))
	require.Equal(t, 0, m.Get(netip.MustParseAddr("10.0.1.42")))
}
