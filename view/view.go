package view

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/npillmayer/parscan"
	"github.com/npillmayer/parscan/scantree"
)

// Palette maps slot conditions to console colors.
type Palette struct {
	Todo  *color.Color
	Done  *color.Color
	Part  *color.Color
	Empty *color.Color
}

// Printer renders scan forests to a console with per-status colors.
type Printer[A, D any] struct {
	palette Palette
	showA   func(A) string
	showD   func(D) string
}

// NewPrinter creates a printer. showA and showD stringify the opaque
// payloads; either may be nil to suppress payloads. A nil palette entry
// falls back to the default palette.
func NewPrinter[A, D any](palette *Palette, showA func(A) string, showD func(D) string) *Printer[A, D] {
	p := &Printer[A, D]{
		palette: makeDefaultPalette(),
		showA:   showA,
		showD:   showD,
	}
	if palette != nil {
		def := p.palette
		p.palette = *palette
		if p.palette.Todo == nil {
			p.palette.Todo = def.Todo
		}
		if p.palette.Done == nil {
			p.palette.Done = def.Done
		}
		if p.palette.Part == nil {
			p.palette.Part = def.Part
		}
		if p.palette.Empty == nil {
			p.palette.Empty = def.Empty
		}
	}
	return p
}

func makeDefaultPalette() Palette {
	return Palette{
		Todo:  color.New(color.FgYellow),
		Done:  color.New(color.FgGreen),
		Part:  color.New(color.FgCyan),
		Empty: color.New(color.FgHiBlack),
	}
}

// Forest writes a round-state overview of all in-flight trees, head tree
// first.
func (p *Printer[A, D]) Forest(w io.Writer, s *parscan.State[A, D]) {
	fmt.Fprintf(w, "scan state: seq %d, %d tree(s), delay %d\n",
		s.CurrentJobSequenceNumber(), len(s.Trees()), s.Delay())
	for i, tr := range s.Trees() {
		fmt.Fprintf(w, "tree %d, owes %d job(s)\n", i, tr.RequiredJobCount())
		p.Tree(w, tr)
	}
}

// Tree writes one tree, one line per level, leaves last.
func (p *Printer[A, D]) Tree(w io.Writer, t *scantree.Tree[A, D]) {
	for level := 0; level < t.Depth(); level++ {
		fmt.Fprintf(w, "  L%d:", level)
		for i := 0; i < 1<<level; i++ {
			m := t.MergeAt(level, i)
			c, label := p.mergeStyle(m)
			c.Fprintf(w, " [%d,%d %s]", m.WeightLeft, m.WeightRight, label)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprint(w, "  B: ")
	for i := 0; i < t.Capacity(); i++ {
		b := t.BaseAt(i)
		c, label := p.baseStyle(b)
		c.Fprintf(w, " [%d %s]", b.Weight, label)
	}
	fmt.Fprintln(w)
}

func (p *Printer[A, D]) mergeStyle(m scantree.MergeSlot[A]) (*color.Color, string) {
	switch m.State {
	case scantree.MergeFull:
		label := m.Status.String()
		if p.showA != nil {
			label += " " + p.showA(m.Left) + "·" + p.showA(m.Right)
		}
		if m.Status == scantree.Done {
			return p.palette.Done, label
		}
		return p.palette.Todo, label
	case scantree.MergePart:
		label := "Part"
		if p.showA != nil {
			label += " " + p.showA(m.Left)
		}
		return p.palette.Part, label
	}
	return p.palette.Empty, "Empty"
}

func (p *Printer[A, D]) baseStyle(b scantree.BaseSlot[D]) (*color.Color, string) {
	if b.State == scantree.BaseEmpty {
		return p.palette.Empty, "Empty"
	}
	label := b.Status.String()
	if p.showD != nil {
		label += " " + p.showD(b.Job)
	}
	if b.Status == scantree.Done {
		return p.palette.Done, label
	}
	return p.palette.Todo, label
}
