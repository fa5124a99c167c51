// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package ipbdd

import (
	"fmt"
	"io"

	"github.com/emicklei/dot"
)

// WriteDot renders root's reachable subgraph as a GraphViz digraph: a
// dashed edge to the low (false) branch, a solid edge to the high (true)
// branch, and a boxed node per distinct terminal value.
func WriteDot(w io.Writer, c *Cache, root Node) error {
	g := dot.NewGraph(dot.Directed)
	g.Attr("rankdir", "TB")

	terminals := make(map[Node]dot.Node)
	nodes := make(map[Node]dot.Node)

	terminal := func(n Node) dot.Node {
		if gn, ok := terminals[n]; ok {
			return gn
		}
		gn := g.Node(fmt.Sprintf("t%d", n.Value())).
			Attr("shape", "box").
			Attr("label", fmt.Sprintf("%d", n.Value()))
		terminals[n] = gn
		return gn
	}

	err := c.Allnodes(func(n Node, level int, low, high Node) error {
		gn := g.Node(fmt.Sprintf("n%d", n)).
			Attr("label", fmt.Sprintf("x%d", level))
		nodes[n] = gn
		return nil
	}, root)
	if err != nil {
		return err
	}

	err = c.Allnodes(func(n Node, level int, low, high Node) error {
		src := nodes[n]
		dst := func(m Node) dot.Node {
			if m.IsTerminal() {
				return terminal(m)
			}
			return nodes[m]
		}
		g.Edge(src, dst(low)).Attr("style", "dashed")
		g.Edge(src, dst(high)).Attr("style", "solid")
		return nil
	}, root)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, g.String())
	return err
}
