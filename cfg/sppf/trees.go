package sppf

import (
	"bytes"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg"
)

// Tree is an explicit parse tree, extracted from a forest.
type Tree struct {
	Symbol   *cfg.Symbol
	Rule     *cfg.Rule // nil for terminals
	Extent   chartparse.Span
	Lexeme   string // terminals only
	Children []*Tree
}

// String returns a bracketed representation of a tree, e.g.
//
//    (S (NP (Det a) (Nominal (Noun banana))))
//
func (t *Tree) String() string {
	var b bytes.Buffer
	t.write(&b)
	return b.String()
}

func (t *Tree) write(b *bytes.Buffer) {
	if t.Rule == nil {
		b.WriteString(t.Lexeme)
		return
	}
	b.WriteString("(")
	b.WriteString(t.Symbol.Name)
	for _, ch := range t.Children {
		b.WriteString(" ")
		ch.write(b)
	}
	b.WriteString(")")
}

// Derivations enumerates the parse trees represented by the forest, starting
// at the root node. At most max trees are returned; max ≤ 0 means no limit.
// Derivations running through a cycle (e.g., with rules A → A) are cut at the
// point where a node repeats, thus only finite trees are returned.
func (f *Forest) Derivations(max int) []*Tree {
	if f.RootNode() == nil {
		return nil
	}
	e := enumerator{forest: f, max: max, onPath: make(map[*SymbolNode]bool)}
	return e.trees(f.root)
}

type enumerator struct {
	forest *Forest
	max    int
	onPath map[*SymbolNode]bool
}

func (e *enumerator) limit(n int) bool {
	return e.max > 0 && n >= e.max
}

func (e *enumerator) trees(sn *SymbolNode) []*Tree {
	if sn.IsTerminal() {
		return []*Tree{{Symbol: sn.Symbol, Extent: sn.Extent, Lexeme: sn.Lexeme}}
	}
	if e.onPath[sn] {
		tracer().Debugf("cycle at %v, cutting derivation", sn)
		return nil
	}
	e.onPath[sn] = true
	defer delete(e.onPath, sn)
	var result []*Tree
	for _, alt := range e.forest.Alternatives(sn) {
		partial := [][]*Tree{nil}
		for _, child := range alt.Children {
			subtrees := e.trees(child)
			var next [][]*Tree
			for _, p := range partial {
				for _, st := range subtrees {
					next = append(next, append(append([]*Tree(nil), p...), st))
					if e.limit(len(next)) {
						break
					}
				}
				if e.limit(len(next)) {
					break
				}
			}
			partial = next
			if len(partial) == 0 {
				break
			}
		}
		for _, children := range partial {
			result = append(result, &Tree{
				Symbol:   sn.Symbol,
				Rule:     alt.Rule,
				Extent:   sn.Extent,
				Children: children,
			})
			if e.limit(len(result)) {
				return result
			}
		}
	}
	return result
}
