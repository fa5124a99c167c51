// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"encoding/binary"
	"fmt"
	"io"
)

var magic = [6]byte{'I', 'P', ' ', 's', 'e', 't'}

const formatVersion uint16 = 1

const headerSize = 6 + 2 + 8 + 4 // magic + version + total length + node count

// recordSize is the on-disk size of a single nonterminal record: one byte
// for the decision variable plus two signed 32-bit stream ids.
const recordSize = 1 + 4 + 4

// Save writes root's reachable subgraph to w in the format described by
// spec §6: a six-byte magic, a big-endian version, the total stream length,
// the nonterminal count N, then N records in postorder (children before
// parents) each giving a variable and the stream ids of its two branches.
// A stream id is the (non-negative) terminal value it names, or the
// (negative) position -k of the k-th nonterminal record written before it.
// If root is itself a terminal (an empty Set, or a Map whose every address
// still resolves to the same default value), N is written as 0 and the N
// records are replaced by a single bare 4-byte big-endian terminal value.
func Save(w io.Writer, c *Cache, root Node) error {
	if root.IsTerminal() {
		var hdr [headerSize]byte
		copy(hdr[0:6], magic[:])
		binary.BigEndian.PutUint16(hdr[6:8], formatVersion)
		binary.BigEndian.PutUint64(hdr[8:16], uint64(headerSize+4))
		binary.BigEndian.PutUint32(hdr[16:20], 0)
		if _, err := w.Write(hdr[:]); err != nil {
			return newError(KindIO, "writing header", err)
		}
		var val [4]byte
		binary.BigEndian.PutUint32(val[:], uint32(root.Value()))
		if _, err := w.Write(val[:]); err != nil {
			return newError(KindIO, "writing terminal value", err)
		}
		return nil
	}
	order, ids := postorder(c, root)

	total := int64(headerSize + len(order)*recordSize)
	var hdr [headerSize]byte
	copy(hdr[0:6], magic[:])
	binary.BigEndian.PutUint16(hdr[6:8], formatVersion)
	binary.BigEndian.PutUint64(hdr[8:16], uint64(total))
	binary.BigEndian.PutUint32(hdr[16:20], uint32(len(order)))
	if _, err := w.Write(hdr[:]); err != nil {
		return newError(KindIO, "writing header", err)
	}

	buf := make([]byte, recordSize)
	for _, n := range order {
		rec := c.nodes[n.index()]
		buf[0] = byte(rec.variable)
		binary.BigEndian.PutUint32(buf[1:5], uint32(streamID(rec.low, ids)))
		binary.BigEndian.PutUint32(buf[5:9], uint32(streamID(rec.high, ids)))
		if _, err := w.Write(buf); err != nil {
			return newError(KindIO, "writing record", err)
		}
	}
	return nil
}

// postorder returns every nonterminal reachable from root, children before
// parents, together with the stream id (a negative index) each is assigned.
func postorder(c *Cache, root Node) ([]Node, map[Node]int32) {
	ids := make(map[Node]int32)
	var order []Node
	var walk func(Node)
	walk = func(n Node) {
		if n.IsTerminal() {
			return
		}
		if _, seen := ids[n]; seen {
			return
		}
		rec := c.nodes[n.index()]
		walk(rec.low)
		walk(rec.high)
		order = append(order, n)
		ids[n] = -int32(len(order))
	}
	walk(root)
	return order, ids
}

func streamID(n Node, ids map[Node]int32) int32 {
	if n.IsTerminal() {
		return n.Value()
	}
	return ids[n]
}

// Load reads a stream written by Save and rebuilds it in c, returning the
// root node with one reference already held on the caller's behalf.
func Load(c *Cache, r io.Reader) (Node, error) {
	// A stream that ends early is malformed (KindParse); any other read
	// failure is reported as KindIO.
	readErr := func(msg string, err error) *Error {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return newError(KindParse, msg+": truncated stream", err)
		}
		return newError(KindIO, msg, err)
	}
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return 0, readErr("reading header", err)
	}
	if string(hdr[0:6]) != string(magic[:]) {
		return 0, newError(KindParse, "bad magic", nil)
	}
	version := binary.BigEndian.Uint16(hdr[6:8])
	if version != formatVersion {
		return 0, newError(KindParse, fmt.Sprintf("unsupported version %d", version), nil)
	}
	total := binary.BigEndian.Uint64(hdr[8:16])
	n := binary.BigEndian.Uint32(hdr[16:20])

	if n == 0 {
		if total != uint64(headerSize)+4 {
			return 0, newError(KindParse, "inconsistent stream length", nil)
		}
		var val [4]byte
		if _, err := io.ReadFull(r, val[:]); err != nil {
			return 0, readErr("reading terminal value", err)
		}
		return mkterminal(int32(binary.BigEndian.Uint32(val[:]))), nil
	}
	if total != uint64(headerSize)+uint64(n)*uint64(recordSize) {
		return 0, newError(KindParse, "inconsistent stream length", nil)
	}

	type rawRecord struct {
		variable      byte
		lowID, highID int32
	}
	records := make([]rawRecord, n)
	buf := make([]byte, recordSize)
	for i := uint32(0); i < n; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return 0, readErr("reading record", err)
		}
		records[i] = rawRecord{
			variable: buf[0],
			lowID:    int32(binary.BigEndian.Uint32(buf[1:5])),
			highID:   int32(binary.BigEndian.Uint32(buf[5:9])),
		}
	}

	// fanin counts how many times a given back-reference is used as some
	// later record's child. A node built below starts with one reference
	// of its own; every additional use another record makes of it as a
	// low or high child needs its own transferable reference, acquired
	// with Incref before anything consumes it. A record id that turns out
	// to have zero fan-in is never claimed as anyone's child -- the only
	// such id in a well-formed stream is the root, the last record
	// written, and its one constructor-held reference becomes the
	// reference this function hands back to the caller.
	fanin := make(map[int32]int, n)
	for _, rec := range records {
		if rec.lowID < 0 {
			fanin[rec.lowID]++
		}
		if rec.highID < 0 {
			fanin[rec.highID]++
		}
	}

	byID := make(map[int32]Node, n)
	var last Node
	for i, rec := range records {
		low, err := resolveID(rec.lowID, byID)
		if err != nil {
			return 0, err
		}
		high, err := resolveID(rec.highID, byID)
		if err != nil {
			return 0, err
		}
		node := c.mknonterm(int32(rec.variable), low, high)
		id := -int32(i + 1)
		for k := fanin[id]; k > 1; k-- {
			c.Incref(node)
		}
		byID[id] = node
		last = node
	}
	return last, nil
}

func resolveID(id int32, byID map[int32]Node) (Node, error) {
	if id >= 0 {
		return mkterminal(id), nil
	}
	n, ok := byID[id]
	if !ok {
		return 0, newError(KindParse, fmt.Sprintf("dangling back-reference %d", id), nil)
	}
	return n, nil
}
