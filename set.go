// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"math/big"
	"net/netip"
)

// Set is an exact, canonical representation of a set of IPv4 and/or IPv6
// addresses, backed by a single root node in a Cache. Two sets built from
// the same Cache are equal as Go values (Equal returns true) exactly when
// they describe the same addresses, regardless of the order or form (single
// addresses vs. networks) their members were added in.
type Set struct {
	cache *Cache
	root  Node
	mode  Mode
}

// NewSet returns an empty set rooted in c.
func NewSet(c *Cache) *Set {
	return &Set{cache: c, root: c.Incref(c.False()), mode: c.cfg.mode}
}

// SetMode overrides the CIDR alignment mode used by AddNetwork and
// RemoveNetwork on s.
func (s *Set) SetMode(m Mode) {
	s.mode = m
}

// Root returns the underlying node, for callers that need to pass a set's
// contents directly to Cache operations (the CLI's dot emitter, the
// serializer).
func (s *Set) Root() Node {
	return s.root
}

// FromRoot wraps an existing node as a Set without rebuilding it. The
// caller gives up ownership of the reference held on n; the returned Set
// takes over managing it.
func FromRoot(c *Cache, n Node) *Set {
	return &Set{cache: c, root: n, mode: c.cfg.mode}
}

// setRoot installs n, already owning one reference of its own, as s's new
// root, releasing the reference held on the previous one.
func (s *Set) setRoot(n Node) {
	s.cache.Decref(s.root)
	s.root = n
}

// Add inserts a single address into s.
func (s *Set) Add(addr netip.Addr) {
	point := s.cache.AddressNode(addr)
	s.setRoot(s.cache.Or(s.root, point))
	s.cache.Decref(point)
}

// AddNetwork inserts every address in prefix into s.
func (s *Set) AddNetwork(prefix netip.Prefix) error {
	n, err := s.cache.NetworkNode(prefix, s.mode)
	if err != nil {
		return err
	}
	s.setRoot(s.cache.Or(s.root, n))
	s.cache.Decref(n)
	return nil
}

// Remove deletes a single address from s.
func (s *Set) Remove(addr netip.Addr) {
	point := s.cache.AddressNode(addr)
	s.setRoot(s.cache.AndNot(s.root, point))
	s.cache.Decref(point)
}

// RemoveNetwork deletes every address in prefix from s.
func (s *Set) RemoveNetwork(prefix netip.Prefix) error {
	n, err := s.cache.NetworkNode(prefix, s.mode)
	if err != nil {
		return err
	}
	s.setRoot(s.cache.AndNot(s.root, n))
	s.cache.Decref(n)
	return nil
}

// Contains reports whether addr is a member of s.
func (s *Set) Contains(addr netip.Addr) bool {
	point := s.cache.AddressNode(addr)
	res := s.cache.And(s.root, point)
	ok := res == point
	s.cache.Decref(res)
	s.cache.Decref(point)
	return ok
}

// ContainsNetwork reports whether every address in prefix is a member of s.
func (s *Set) ContainsNetwork(prefix netip.Prefix) (bool, error) {
	n, err := s.cache.NetworkNode(prefix, s.mode)
	if err != nil {
		return false, err
	}
	res := s.cache.And(s.root, n)
	ok := res == n
	s.cache.Decref(res)
	s.cache.Decref(n)
	return ok, nil
}

// Union returns a new set containing every address in s or other.
func (s *Set) Union(other *Set) *Set {
	return FromRoot(s.cache, s.cache.Or(s.root, other.root))
}

// Intersect returns a new set containing every address in both s and other.
func (s *Set) Intersect(other *Set) *Set {
	return FromRoot(s.cache, s.cache.And(s.root, other.root))
}

// Difference returns a new set containing the addresses of s that are not
// in other.
func (s *Set) Difference(other *Set) *Set {
	return FromRoot(s.cache, s.cache.AndNot(s.root, other.root))
}

// Equal reports whether s and other contain exactly the same addresses.
// Because the engine keeps every node hash-consed, this is a single
// pointer-equality test on the two roots rather than a structural walk.
func (s *Set) Equal(other *Set) bool {
	return s.root == other.root
}

// IsEmpty reports whether s has no members.
func (s *Set) IsEmpty() bool {
	return s.root == s.cache.False()
}

// Size returns the exact number of addresses in s.
func (s *Set) Size() *big.Int {
	return s.cache.AddressCount(s.root)
}

// NodeCount returns the number of BDD nodes used to represent s.
func (s *Set) NodeCount() int {
	return s.cache.NodeCount(s.root)
}

// Close releases s's reference on its root node. After Close, s must not be
// used again.
func (s *Set) Close() {
	s.cache.Decref(s.root)
	s.root = s.cache.False()
}
