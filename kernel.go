// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"errors"
)

// FamilyVar is the level of the variable that selects the address family of
// an entry: true selects IPv4, false selects IPv6. It is always the topmost
// variable in the order, exactly as the BDD encoding this engine descends
// from reserves its first decision for the family before any address bit.
const FamilyVar = 0

// IPv4Bits and IPv6Bits are the number of address-bit variables that follow
// the family variable. Levels 1..32 carry the IPv4 bits (MSB first); levels
// 1..128 carry the IPv6 bits (MSB first). An IPv4 entry leaves levels 33..128
// at EITHER (don't care).
const (
	IPv4Bits = 32
	IPv6Bits = 128
)

// varnum is the fixed number of decision levels in the variable order: one
// family variable plus one level per IPv6 address bit. The order never
// changes at runtime, unlike a general-purpose BDD kernel's resizable
// variable count.
const varnum = 1 + IPv6Bits

// _MAXREFCOUNT is the maximal value of a node's reference counter. It is also
// used to pin permanent slots (the reserved slots 0 and 1, the Ithvar/NIthvar skeleton) so
// they are never mistaken for reclaimable. Equal to 1023 (10 bits).
const _MAXREFCOUNT int32 = 0x3FF

// _DEFAULTMAXNODEINC is the default bound on how many nodes a single grow
// step may add, approx. one million (1 048 576).
const _DEFAULTMAXNODEINC int = 1 << 20

var errMemory = errors.New("ipbdd: unable to free memory or grow node table")
