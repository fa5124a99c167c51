// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNetworksSummarizesAlignedCIDR(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("198.51.100.0/24")))

	nets, err := s.Networks()
	require.NoError(t, err)
	require.Len(t, nets, 1)
	require.Equal(t, "198.51.100.0/24", nets[0].String())
}

func TestNetworksRoundTripsThroughNewSet(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("203.0.113.0/25")))
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("2001:db8:1::/48")))

	nets, err := s.Networks()
	require.NoError(t, err)

	rebuilt := NewSet(c)
	defer rebuilt.Close()
	for _, n := range nets {
		require.NoError(t, rebuilt.AddNetwork(n))
	}
	require.True(t, s.Equal(rebuilt))
}

func TestIterateComplementOfEverything(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("0.0.0.0/0")))
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("::/0")))

	var got []netip.Prefix
	require.NoError(t, s.IterateComplement(func(p netip.Prefix) error {
		got = append(got, p)
		return nil
	}))
	require.Empty(t, got)
}

func TestNetworksDiscontiguousHoleSplits(t *testing.T) {
	c := New()
	s := NewSet(c)
	defer s.Close()
	require.NoError(t, s.AddNetwork(netip.MustParsePrefix("10.0.0.0/24")))
	s.Remove(netip.MustParseAddr("10.0.0.5"))

	nets, err := s.Networks()
	require.NoError(t, err)
	require.True(t, len(nets) > 1)

	rebuilt := NewSet(c)
	defer rebuilt.Close()
	for _, n := range nets {
		require.NoError(t, rebuilt.AddNetwork(n))
	}
	require.True(t, s.Equal(rebuilt))
}
