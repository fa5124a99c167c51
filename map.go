// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import "net/netip"

// Map associates every address in IPv4 and IPv6 space with a small integer
// value. Addresses that were never explicitly set resolve to
// defaultValue -- a Map always has a total domain, it never needs a
// separate "undefined" case the way Set's Contains does.
type Map struct {
	cache        *Cache
	root         Node
	defaultValue int32
	mode         Mode
}

// NewMap returns a Map where every address resolves to defaultValue.
func NewMap(c *Cache, defaultValue int) *Map {
	root := mkterminal(int32(defaultValue))
	return &Map{cache: c, root: c.Incref(root), defaultValue: int32(defaultValue), mode: c.cfg.mode}
}

// SetMode overrides the CIDR alignment mode used by SetNetwork and
// RemoveNetwork on m.
func (m *Map) SetMode(mode Mode) {
	m.mode = mode
}

// graft replaces m's root with one that maps every address in region to
// value and leaves the rest unchanged, releasing the reference held on the
// previous root.
func (m *Map) graft(region Node, value int32) {
	n := m.cache.Ite(region, mkterminal(value), m.root)
	m.cache.Decref(m.root)
	m.root = n
}

// Set associates addr with value.
func (m *Map) Set(addr netip.Addr, value int) {
	region := m.cache.AddressNode(addr)
	m.graft(region, int32(value))
	m.cache.Decref(region)
}

// SetNetwork associates every address in prefix with value.
func (m *Map) SetNetwork(prefix netip.Prefix, value int) error {
	region, err := m.cache.NetworkNode(prefix, m.mode)
	if err != nil {
		return err
	}
	m.graft(region, int32(value))
	m.cache.Decref(region)
	return nil
}

// Get returns the value addr is associated with, or the map's default
// value if addr was never explicitly set.
func (m *Map) Get(addr netip.Addr) int {
	v4, bits := addressBits(addr)
	res := m.cache.Evaluate(m.root, func(level int) bool {
		if level == FamilyVar {
			return v4
		}
		idx := level - 1
		if idx >= len(bits) {
			// level belongs to the other family's remaining bits; value is
			// irrelevant once family has already resolved the branch, but
			// Evaluate always needs an answer.
			return false
		}
		return bits[idx]
	})
	return int(res.Value())
}

// Remove resets addr back to the map's default value.
func (m *Map) Remove(addr netip.Addr) {
	m.Set(addr, int(m.defaultValue))
}

// RemoveNetwork resets every address in prefix back to the map's default
// value.
func (m *Map) RemoveNetwork(prefix netip.Prefix) error {
	return m.SetNetwork(prefix, int(m.defaultValue))
}

// Close releases m's reference on its root node.
func (m *Map) Close() {
	m.cache.Decref(m.root)
}
