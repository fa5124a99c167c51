// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// PrintNodes writes a tabular, human-readable listing of every node
// reachable from root to w: one line per nonterminal giving its id, decision
// level, and its false/true branches.
func PrintNodes(w io.Writer, c *Cache, root Node) error {
	if root == c.False() {
		_, err := fmt.Fprintln(w, "False")
		return err
	}
	if root == c.True() {
		_, err := fmt.Fprintln(w, "True")
		return err
	}
	type row struct{ id, level int; low, high Node }
	var rows []row
	err := c.Allnodes(func(n Node, level int, low, high Node) error {
		i := sort.Search(len(rows), func(i int) bool { return rows[i].id >= int(n) })
		rows = append(rows, row{})
		copy(rows[i+1:], rows[i:])
		rows[i] = row{int(n), level, low, high}
		return nil
	}, root)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 0, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t[%d\t] ? \t%d\t : %d\n", r.id, r.level, r.low, r.high)
	}
	return tw.Flush()
}
