// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAddressNodeDistinctPerAddress(t *testing.T) {
	c := New()
	a := c.AddressNode(netip.MustParseAddr("10.0.0.1"))
	b := c.AddressNode(netip.MustParseAddr("10.0.0.2"))
	require.NotEqual(t, a, b)
}

func TestAddressNodeSeparatesFamilies(t *testing.T) {
	c := New()
	v4 := c.AddressNode(netip.MustParseAddr("192.0.2.1"))
	v6 := c.AddressNode(netip.MustParseAddr("::1"))
	require.NotEqual(t, v4, v6)
	require.Equal(t, c.False(), c.And(v4, v6))
}

func TestNetworkNodeStrictRejectsMisalignment(t *testing.T) {
	c := New()
	_, err := c.NetworkNode(netip.MustParsePrefix("10.0.0.1/24"), Strict)
	require.Error(t, err)
	var ipbddErr *Error
	require.ErrorAs(t, err, &ipbddErr)
	require.Equal(t, KindInvalidNetwork, ipbddErr.Kind)
}

func TestNetworkNodeLenientMasksHostBits(t *testing.T) {
	c := New()
	lenient, err := c.NetworkNode(netip.MustParsePrefix("10.0.0.1/24"), Lenient)
	require.NoError(t, err)
	aligned, err := c.NetworkNode(netip.MustParsePrefix("10.0.0.0/24"), Strict)
	require.NoError(t, err)
	require.Equal(t, aligned, lenient)
}

func TestParseNetworkAcceptsBareAddress(t *testing.T) {
	p, err := ParseNetwork("203.0.113.5")
	require.NoError(t, err)
	require.Equal(t, 32, p.Bits())

	p6, err := ParseNetwork("2001:db8::1")
	require.NoError(t, err)
	require.Equal(t, 128, p6.Bits())
}

func TestParseAddressRejectsGarbage(t *testing.T) {
	_, err := ParseAddress("not-an-address")
	require.Error(t, err)
	var ipbddErr *Error
	require.ErrorAs(t, err, &ipbddErr)
	require.Equal(t, KindInvalidAddress, ipbddErr.Kind)
}
