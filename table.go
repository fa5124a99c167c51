// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"fmt"
	"log"
	"math"
)

// hashsize is the width, in bytes, of the key used to address the unique
// table: one byte for the decision variable (0..128 fits easily) plus four
// bytes each for the low and high branches.
const hashsize = 1 + 4 + 4

// Cache is the explicit handle every operation in this package takes and
// returns nodes against. Unlike a BDD package that reclaims unreferenced
// nodes behind the caller's back through finalizers, a Cache only frees a
// node when its reference count, maintained by explicit Incref/Decref
// calls, reaches zero -- the caller owns the lifetime of whatever Node it
// holds onto past the call that produced it.
type Cache struct {
	nodes   []record
	unique  map[[hashsize]byte]Node
	freepos int32
	freenum int
	produced int

	uniqueAccess, uniqueHit, uniqueMiss int

	caches caches
	cfg    configs

	varset [varnum][2]Node // Ithvar/NIthvar skeleton, indexed by level

	zero, one Node
}

// New allocates a Cache. The variable order is fixed: level 0 selects the
// address family, levels 1..128 the (up to 128) address bits.
func New(options ...func(*configs)) *Cache {
	cfg := makeconfigs()
	for _, f := range options {
		f(cfg)
	}
	c := &Cache{cfg: *cfg}
	nodesize := cfg.nodesize
	c.nodes = make([]record, nodesize)
	for k := range c.nodes {
		c.nodes[k].setfree(int32(k + 1))
	}
	c.nodes[nodesize-1].setfree(0)
	c.unique = make(map[[hashsize]byte]Node, nodesize)

	// Slots 0 and 1 are never allocated, so a Node's zero value never aliases
	// a live handle. Terminals are tagged values and occupy no slot.
	c.nodes[0] = record{variable: varnum, low: -1, high: 0, refcou: _MAXREFCOUNT}
	c.nodes[1] = record{variable: varnum, low: -1, high: 0, refcou: _MAXREFCOUNT}
	c.freepos = 2
	c.freenum = nodesize - 2

	c.zero = mkterminal(0)
	c.one = mkterminal(1)

	for lvl := 0; lvl < varnum; lvl++ {
		v1 := c.mknonterm(int32(lvl), c.zero, c.one)
		c.pin(v1)
		v0 := c.mknonterm(int32(lvl), c.one, c.zero)
		c.pin(v0)
		c.varset[lvl] = [2]Node{v0, v1}
	}

	c.caches.init(cfg.cachesize, cfg.cacheratio)
	return c
}

func (c *Cache) pin(n Node) {
	if n.IsTerminal() {
		return
	}
	c.nodes[n.index()].refcou = _MAXREFCOUNT
}

// False and True return the two boolean terminal nodes.
func (c *Cache) False() Node { return c.zero }
func (c *Cache) True() Node  { return c.one }

// From returns True if v is true, False otherwise.
func (c *Cache) From(v bool) Node {
	if v {
		return c.one
	}
	return c.zero
}

// Ithvar returns the node that is true exactly when the variable at the
// given level is true; NIthvar returns its negation.
func (c *Cache) Ithvar(level int) Node  { return c.varset[level][1] }
func (c *Cache) NIthvar(level int) Node { return c.varset[level][0] }

func (c *Cache) hashkey(level int32, low, high Node) [hashsize]byte {
	var k [hashsize]byte
	k[0] = byte(level)
	k[1] = byte(low)
	k[2] = byte(low >> 8)
	k[3] = byte(low >> 16)
	k[4] = byte(low >> 24)
	k[5] = byte(high)
	k[6] = byte(high >> 8)
	k[7] = byte(high >> 16)
	k[8] = byte(high >> 24)
	return k
}

// mknonterm returns the unique nonterminal node for (level, low, high),
// building a fresh arena slot only if one does not already exist. This is
// the hash-consing step that keeps the diagram reduced: equal subgraphs are
// always represented by the same Node. The caller must already hold one
// reference each on low and high; mknonterm consumes both and returns a node
// carrying exactly one fresh reference of its own.
func (c *Cache) mknonterm(level int32, low, high Node) Node {
	if low == high {
		c.Decref(high)
		return low
	}
	c.uniqueAccess++
	key := c.hashkey(level, low, high)
	if n, ok := c.unique[key]; ok {
		c.uniqueHit++
		c.Incref(n)
		c.Decref(low)
		c.Decref(high)
		return n
	}
	c.uniqueMiss++
	if c.freepos == 0 {
		if !c.grow() {
			panic(errMemory)
		}
	}
	idx := c.freepos
	c.freepos = c.nodes[idx].nextfree()
	c.freenum--
	c.nodes[idx] = record{variable: level, low: low, high: high, refcou: 1}
	c.unique[key] = mknonterminal(idx)
	c.produced++
	return mknonterminal(idx)
}

func (c *Cache) grow() bool {
	old := len(c.nodes)
	if c.cfg.maxnodesize > 0 && old >= c.cfg.maxnodesize {
		return false
	}
	size := old
	if old > math.MaxInt32>>1 {
		size = math.MaxInt32 - 1
	} else {
		size = old << 1
	}
	if c.cfg.maxnodeincrease > 0 && size > old+c.cfg.maxnodeincrease {
		size = old + c.cfg.maxnodeincrease
	}
	if c.cfg.maxnodesize > 0 && size > c.cfg.maxnodesize {
		size = c.cfg.maxnodesize
	}
	if size <= old {
		return false
	}
	grown := make([]record, size)
	copy(grown, c.nodes)
	for k := old; k < size; k++ {
		grown[k].setfree(int32(k + 1))
	}
	grown[size-1].setfree(0)
	c.nodes = grown
	c.freepos = int32(old)
	c.freenum += size - old
	c.caches.resize(size)
	if debugLogging {
		log.Printf("ipbdd: grew node table %d -> %d\n", old, size)
	}
	return true
}

// Variable returns the decision level of a nonterminal node.
func (c *Cache) Variable(n Node) int {
	if n.IsTerminal() {
		return varnum
	}
	return int(c.nodes[n.index()].variable)
}

// Low and High return the false and true branches of a nonterminal node.
func (c *Cache) Low(n Node) Node {
	if n.IsTerminal() {
		return n
	}
	return c.nodes[n.index()].low
}

func (c *Cache) High(n Node) Node {
	if n.IsTerminal() {
		return n
	}
	return c.nodes[n.index()].high
}

// NodeCount returns the number of nonterminal nodes reachable from n.
func (c *Cache) NodeCount(n Node) int {
	seen := make(map[Node]bool)
	var walk func(Node)
	walk = func(m Node) {
		if m.IsTerminal() || seen[m] {
			return
		}
		seen[m] = true
		walk(c.Low(m))
		walk(c.High(m))
	}
	walk(n)
	return len(seen)
}

// MemorySize estimates, in bytes, how much arena space the reachable
// subgraph of n occupies.
func (c *Cache) MemorySize(n Node) int {
	return c.NodeCount(n) * int(hashsize+4)
}

// Incref increments the reference count of n and returns n unchanged, so
// calls can be chained: root = cache.Incref(cache.And(a, b)).
func (c *Cache) Incref(n Node) Node {
	if n.IsTerminal() {
		return n
	}
	rec := &c.nodes[n.index()]
	if rec.refcou < _MAXREFCOUNT {
		rec.refcou++
	}
	return n
}

// Decref decrements the reference count of n. When it reaches zero the
// node's arena slot, and recursively any child that itself becomes
// unreferenced, is returned to the free list immediately -- there is no
// deferred, stop-the-world reclaim pass. Because a reclaim frees an arena
// slot that a live operator-cache entry might still name as its memoized
// result, any Decref that actually reclaims a node invalidates every
// operator cache so a later hit can never hand back a stale id.
func (c *Cache) Decref(n Node) {
	if c.decref(n) {
		c.caches.reset()
	}
}

// decref is Decref's recursive worker; it reports whether it reclaimed at
// least one node, so the public entry point knows whether the operator
// caches need invalidating.
func (c *Cache) decref(n Node) bool {
	if n.IsTerminal() {
		return false
	}
	idx := n.index()
	rec := &c.nodes[idx]
	if rec.refcou == 0 || rec.refcou == _MAXREFCOUNT {
		return false
	}
	rec.refcou--
	if rec.refcou > 0 {
		return false
	}
	low, high := rec.low, rec.high
	key := c.hashkey(rec.variable, low, high)
	delete(c.unique, key)
	rec.setfree(c.freepos)
	c.freepos = idx
	c.freenum++
	c.decref(low)
	c.decref(high)
	return true
}

// Stats reports allocator and operator-cache occupancy, grounded in the
// same style of summary a BDD kernel prints for diagnostics.
func (c *Cache) Stats() string {
	res := fmt.Sprintf("Allocated:  %d\n", len(c.nodes))
	res += fmt.Sprintf("Produced:   %d\n", c.produced)
	r := (float64(c.freenum) / float64(len(c.nodes))) * 100
	res += fmt.Sprintf("Free:       %d (%.3g %%)\n", c.freenum, r)
	res += fmt.Sprintf("Unique Access: %d  Hit: %d  Miss: %d\n", c.uniqueAccess, c.uniqueHit, c.uniqueMiss)
	res += fmt.Sprintf("And cache:    hit %d miss %d\n", c.caches.and.opHit, c.caches.and.opMiss)
	res += fmt.Sprintf("Or cache:     hit %d miss %d\n", c.caches.or.opHit, c.caches.or.opMiss)
	res += fmt.Sprintf("Xor cache:    hit %d miss %d\n", c.caches.xor.opHit, c.caches.xor.opMiss)
	res += fmt.Sprintf("Andnot cache: hit %d miss %d\n", c.caches.andnot.opHit, c.caches.andnot.opMiss)
	res += fmt.Sprintf("Ite cache:    hit %d miss %d\n", c.caches.ite.opHit, c.caches.ite.opMiss)
	res += fmt.Sprintf("Not cache:    hit %d miss %d\n", c.caches.not.opHit, c.caches.not.opMiss)
	return res
}

// Allnodes walks every reachable nonterminal node from the given roots and
// calls f with its id, level, low and high children. Used by the
// GraphViz emitter and PrintNodes.
func (c *Cache) Allnodes(f func(n Node, level int, low, high Node) error, roots ...Node) error {
	seen := make(map[Node]bool)
	var walk func(Node) error
	walk = func(n Node) error {
		if n.IsTerminal() || seen[n] {
			return nil
		}
		seen[n] = true
		rec := c.nodes[n.index()]
		if err := walk(rec.low); err != nil {
			return err
		}
		if err := walk(rec.high); err != nil {
			return err
		}
		return f(n, int(rec.variable), rec.low, rec.high)
	}
	for _, r := range roots {
		if err := walk(r); err != nil {
			return err
		}
	}
	return nil
}
