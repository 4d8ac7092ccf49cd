package earley

import (
	"fmt"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg/sppf"
	"github.com/npillmayer/schuko/gconf"
)

// ParseForest returns the parse forest of the last parse run, if the parser
// has been created with option GenerateTree(true) and the input has been
// accepted. Otherwise it returns nil.
func (p *Parser) ParseForest() *sppf.Forest {
	return p.forest
}

// Forest returns the parse forest for accepted input. If the forest has not
// been created during parsing, it will be created now. For input which has
// not been accepted, ErrNoParse is returned.
func (p *Parser) Forest() (*sppf.Forest, error) {
	if len(p.accepted) == 0 {
		return nil, ErrNoParse
	}
	if p.forest == nil {
		p.forest = p.buildForest()
	}
	return p.forest, nil
}

/*
buildForest walks backwards over the derivation links of the chart items,
starting at the accepted items.

A good overview of how to construct a parse forest from Earley-items may be found in
"Parsing Techniques" by  Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/), Section 7.2.1.2.
The forest is binarized as described by Scott & Johnstone: an item

    (A → α X • β, [i, j])

stands for an intermediate node (A → α X •, i, j) if β is non-empty, and for a
symbol node (A, i, j) otherwise. Every link (pred, child) recorded for the item
turns into a packed node with children node(pred) and node(child), where a
predecessor with the dot at position 0 contributes no node. A link without
a child item stands for a scanned terminal.

Every item is expanded only once, thus cyclic derivations (A ⇒+ A) result in
cycles of forest nodes, but the walk terminates.
*/
func (p *Parser) buildForest() *sppf.Forest {
	f := sppf.NewForest()
	n := uint64(len(p.words))
	f.SetRoot(f.AddSymbol(p.g.Start(), chartparse.Span{0, n}))
	visited := itemset{}
	worklist := append([]*Item(nil), p.accepted...)
	for len(worklist) > 0 {
		item := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		if visited.contains(item) {
			continue
		}
		visited = visited.add(item)
		node := nodeFor(f, item)
		if item.rule.IsEpsilon() {
			f.AddPacked(node, item.rule, nil, nil)
			continue
		}
		if len(item.links) == 0 { // only lexical items are created without links
			if !p.isLexicalScan(item) {
				stuck(fmt.Sprintf("no derivation recorded for item %v", item))
				continue
			}
			t := f.AddTerminal(item.rule.At(0), item.Origin, p.words[item.Origin])
			f.AddPacked(node, item.rule, nil, t)
			continue
		}
		for _, l := range item.links {
			var left, right *sppf.SymbolNode
			if l.pred.dot > 0 {
				left = nodeFor(f, l.pred)
				worklist = append(worklist, l.pred)
			}
			if l.child == nil {
				pos := item.Pos - 1
				right = f.AddTerminal(item.rule.At(item.dot-1), pos, p.words[pos])
			} else {
				right = nodeFor(f, l.child)
				worklist = append(worklist, l.child)
			}
			f.AddPacked(node, item.rule, left, right)
		}
	}
	nodes, packed := f.Size()
	tracer().Infof("parse forest has %d nodes and %d packed nodes, %d items visited",
		nodes, packed, len(visited))
	return f
}

func (p *Parser) isLexicalScan(item *Item) bool {
	return item.dot == 1 && item.rule.Len() == 1 && item.rule.At(0).IsTerminal() &&
		item.Pos == item.Origin+1 && item.Origin < uint64(len(p.words))
}

// nodeFor returns the forest node standing for an item with dot > 0.
func nodeFor(f *sppf.Forest, item *Item) *sppf.SymbolNode {
	if item.IsComplete() {
		return f.AddSymbol(item.rule.LHS, item.Span())
	}
	return f.AddIntermediate(item.rule, item.dot, item.Span())
}

func stuck(msg string) {
	tracer().Errorf(msg)
	if gconf.GetBool("panic-on-parser-stuck") {
		panic(`Earley-parser is stuck.

Configuration flag panic-on-parser-stuck is set to true. It is aimed at helping
to debug a parser and do a post-mortem of why it got stuck. However, if this is
a production environment and you did not expect this to panic, please unset
panic-on-parser-stuck to its default (false).

` + msg)
	}
}
