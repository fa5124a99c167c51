// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

// Mode selects how NetworkNode, and the Set and Map network methods built on
// it, validate CIDR alignment: whether a /p network is rejected when it
// carries non-zero bits past the prefix.
type Mode int

const (
	// Strict rejects any network literal whose host bits are not all zero.
	// This is the default.
	Strict Mode = iota
	// Lenient masks off the host bits instead of rejecting them.
	Lenient
)

// configs stores the tunable parameters of a Cache, set through functional
// options passed to New.
type configs struct {
	nodesize        int // initial number of nodes in the table
	cachesize       int // initial cache size (per operator cache)
	cacheratio      int // ratio (%) between cache size and node table size, 0 if constant
	maxnodesize     int // maximum total number of nodes (0 if no limit)
	maxnodeincrease int // maximum number of nodes added at each grow step (0 if no limit)
	mode            Mode
}

func makeconfigs() *configs {
	c := &configs{}
	c.maxnodeincrease = _DEFAULTMAXNODEINC
	// Every level's Ithvar/NIthvar pair is built eagerly at New, so the
	// initial table needs headroom beyond the 2*varnum+2 slots the skeleton
	// itself occupies.
	c.nodesize = 4*varnum + 64
	c.cachesize = 10000
	c.mode = Strict
	return c
}

// Nodesize is a configuration option for New. It sets a preferred initial
// size for the node table; the table can grow during computation.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 2*varnum+2 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option for New. It caps the number of
// nodes a Cache may hold. The default (0) means no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Maxnodeincrease is a configuration option for New. It bounds how many
// nodes a single grow step adds to the table.
func Maxnodeincrease(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodeincrease = size
	}
}

// Cachesize is a configuration option for New. It sets the initial number
// of entries in each operator cache (AND, OR, XOR, ANDNOT, ITE, NOT),
// rounded up to the next prime. Default is 10000.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		c.cachesize = size
	}
}

// Cacheratio is a configuration option for New. With a ratio of r, every
// grow of the node table reallocates each operator cache, empty, with r
// entries for every 100 slots of the grown table (rounded up to a prime).
// Default (0) means the caches keep their initial size.
func Cacheratio(ratio int) func(*configs) {
	return func(c *configs) {
		c.cacheratio = ratio
	}
}

// WithMode is a configuration option for New. It sets the CIDR alignment
// mode that Sets and Maps created in the Cache start with; SetMode
// overrides it per Set or Map.
func WithMode(m Mode) func(*configs) {
	return func(c *configs) {
		c.mode = m
	}
}
