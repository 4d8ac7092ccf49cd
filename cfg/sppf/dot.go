package sppf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ToGraphViz exports a forest to the Graphviz Dot format. Symbol nodes are
// drawn as boxes, intermediate nodes as ellipses, packed nodes as small
// points and terminals as plain text, all terminals on the same rank.
func (f *Forest) ToGraphViz(w io.Writer) error {
	bw := bufio.NewWriter(w)
	ids := make(map[*SymbolNode]int, len(f.order))
	for i, sn := range f.order {
		ids[sn] = i
	}
	bw.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10, arrowsize=0.5];

`)
	var terminals []string
	for _, sn := range f.order {
		id := ids[sn]
		switch sn.Kind {
		case TerminalKind:
			bw.WriteString(fmt.Sprintf("n%03d [shape=plaintext label=\"%s\"]\n", id, escape(sn.Lexeme)))
			terminals = append(terminals, fmt.Sprintf("n%03d", id))
		case IntermediateKind:
			bw.WriteString(fmt.Sprintf("n%03d [shape=ellipse label=\"%s\"]\n", id, escape(sn.String())))
		default:
			bw.WriteString(fmt.Sprintf("n%03d [shape=box, style=filled, fillcolor=%s label=\"%s\"]\n",
				id, nodecolor(f, sn), escape(sn.String())))
		}
	}
	for _, sn := range f.order {
		packed := f.packed[sn]
		for j, pn := range packed {
			from := fmt.Sprintf("n%03d", ids[sn])
			if len(packed) > 1 { // only draw packed nodes for ambiguous nodes
				pid := fmt.Sprintf("p%03d_%d", ids[sn], j)
				bw.WriteString(fmt.Sprintf("%s [shape=point label=\"\"]\n", pid))
				bw.WriteString(fmt.Sprintf("%s -> %s [label=\"%d\"]\n", from, pid, pn.Rule.Serial))
				from = pid
			}
			if pn.Left != nil {
				bw.WriteString(fmt.Sprintf("%s -> n%03d\n", from, ids[pn.Left]))
			}
			if pn.Right != nil {
				bw.WriteString(fmt.Sprintf("%s -> n%03d\n", from, ids[pn.Right]))
			}
		}
	}
	if len(terminals) > 0 {
		bw.WriteString(fmt.Sprintf("{ rank=same; %s }\n", strings.Join(terminals, "; ")))
	}
	bw.WriteString("}\n")
	return bw.Flush()
}

func nodecolor(f *Forest, sn *SymbolNode) string {
	if sn == f.root {
		return "lightgray"
	}
	if len(f.packed[sn]) > 1 {
		return "lightpink"
	}
	return "white"
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
