package view

import (
	"fmt"
	"io"

	"github.com/npillmayer/parscan/scantree"
)

// Tree2Dot outputs the internal structure of a scan tree in Graphviz DOT
// format (for debugging purposes). Merge slots are circles, base slots
// boxes; labels carry weights and status.
func Tree2Dot[A, D any](t *scantree.Tree[A, D], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	nodelist, edgelist := "", ""
	depth := t.Depth()
	for level := 0; level < depth; level++ {
		for i := 0; i < 1<<level; i++ {
			m := t.MergeAt(level, i)
			id := mergeID(level, i)
			label := fmt.Sprintf("(%d,%d)\\n%s", m.WeightLeft, m.WeightRight, mergeLabel(m))
			nodelist += fmt.Sprintf("\"%d\" [label=\"%s\"%s];\n", id, label, mergeDotStyles(m))
			if level+1 == depth {
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, baseID(depth, 2*i))
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, baseID(depth, 2*i+1))
			} else {
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, mergeID(level+1, 2*i))
				edgelist += fmt.Sprintf("\"%d\" -> \"%d\";\n", id, mergeID(level+1, 2*i+1))
			}
		}
	}
	for i := 0; i < t.Capacity(); i++ {
		b := t.BaseAt(i)
		label := fmt.Sprintf("%d\\n%s", b.Weight, baseLabel(b))
		nodelist += fmt.Sprintf("\"%d\" [label=\"%s\",style=filled,shape=box];\n", baseID(depth, i), label)
	}
	io.WriteString(w, nodelist)
	io.WriteString(w, edgelist)
	io.WriteString(w, "}\n")
}

func mergeID(level, i int) int {
	return (1 << level) - 1 + i
}

func baseID(depth, i int) int {
	return (1 << depth) - 1 + i
}

func mergeLabel[A any](m scantree.MergeSlot[A]) string {
	if m.State == scantree.MergeFull {
		return m.State.String() + "/" + m.Status.String()
	}
	return m.State.String()
}

func baseLabel[D any](b scantree.BaseSlot[D]) string {
	if b.State == scantree.BaseFull {
		return b.State.String() + "/" + b.Status.String()
	}
	return b.State.String()
}

func mergeDotStyles[A any](m scantree.MergeSlot[A]) string {
	s := ",style=filled,color=black,shape=circle"
	switch {
	case m.State == scantree.MergeFull && m.Status == scantree.Done:
		s += ",fillcolor=\"#a3e4b5\""
	case m.State == scantree.MergeFull:
		s += ",fillcolor=\"#ffe9a3\""
	case m.State == scantree.MergePart:
		s += ",fillcolor=\"#a3d7e4\""
	default:
		s += ",fillcolor=white"
	}
	return s
}
