package sppf

import (
	"fmt"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg"
)

// NodeKind distinguishes the nodes of a forest.
type NodeKind int8

// Kinds of forest nodes.
const (
	SymbolKind       NodeKind = iota // a non-terminal spanning an input range
	IntermediateKind                 // a prefix of a rule's RHS, spanning an input range
	TerminalKind                     // an input word matched by a terminal
)

func (k NodeKind) String() string {
	switch k {
	case SymbolKind:
		return "symbol"
	case IntermediateKind:
		return "intermediate"
	case TerminalKind:
		return "terminal"
	}
	return "?"
}

// SymbolNode is a node within a parse forest. Symbol nodes and terminal nodes
// stand for a grammar symbol covering a span of the input. Intermediate nodes
// stand for the prefix of a rule's right hand side up to Dot.
type SymbolNode struct {
	Kind   NodeKind
	Symbol *cfg.Symbol      // grammar symbol; LHS of Rule for intermediate nodes
	Rule   *cfg.Rule        // intermediate nodes only
	Dot    int              // intermediate nodes only
	Extent chartparse.Span  // span of input words covered by this node
	Lexeme string           // terminal nodes only
}

// IsTerminal is true for terminal nodes.
func (sn *SymbolNode) IsTerminal() bool {
	return sn.Kind == TerminalKind
}

// IsIntermediate is true for intermediate nodes.
func (sn *SymbolNode) IsIntermediate() bool {
	return sn.Kind == IntermediateKind
}

func (sn *SymbolNode) String() string {
	switch sn.Kind {
	case TerminalKind:
		return fmt.Sprintf("%q%s", sn.Lexeme, sn.Extent)
	case IntermediateKind:
		return fmt.Sprintf("[%s • %d]%s", sn.Rule.LHS, sn.Dot, sn.Extent)
	}
	return fmt.Sprintf("%s%s", sn.Symbol, sn.Extent)
}

// PackedNode is a single way of deriving its parent node. Left is the node
// for the prefix of the RHS (may be nil), Right the node for the last symbol
// of the prefix (nil for epsilon derivations).
type PackedNode struct {
	Rule  *cfg.Rule
	Left  *SymbolNode
	Right *SymbolNode
}

func (pn *PackedNode) String() string {
	return fmt.Sprintf("⟨%v | %v, %v⟩", pn.Rule, pn.Left, pn.Right)
}

type nodeKey struct {
	kind   NodeKind
	sym    *cfg.Symbol
	rule   *cfg.Rule
	dot    int
	extent chartparse.Span
}

type packedKey struct {
	parent *SymbolNode
	rule   *cfg.Rule
	left   *SymbolNode
	right  *SymbolNode
}

// Forest is a shared packed parse forest. Every node exists only once; adding
// an existing node returns the node already present.
//
// Forests are built by a parser. They are not safe for concurrent
// modification, but may be read concurrently once built.
type Forest struct {
	nodes       map[nodeKey]*SymbolNode
	order       []*SymbolNode
	packed      map[*SymbolNode][]*PackedNode
	packedIndex map[packedKey]*PackedNode
	root        *SymbolNode
}

// NewForest returns an empty forest.
func NewForest() *Forest {
	return &Forest{
		nodes:       make(map[nodeKey]*SymbolNode),
		packed:      make(map[*SymbolNode][]*PackedNode),
		packedIndex: make(map[packedKey]*PackedNode),
	}
}

func (f *Forest) node(key nodeKey, lexeme string) *SymbolNode {
	if sn, ok := f.nodes[key]; ok {
		return sn
	}
	sn := &SymbolNode{
		Kind:   key.kind,
		Symbol: key.sym,
		Rule:   key.rule,
		Dot:    key.dot,
		Extent: key.extent,
		Lexeme: lexeme,
	}
	f.nodes[key] = sn
	f.order = append(f.order, sn)
	tracer().Debugf("forest node %v", sn)
	return sn
}

// AddSymbol returns the symbol node for non-terminal A covering span.
func (f *Forest) AddSymbol(A *cfg.Symbol, span chartparse.Span) *SymbolNode {
	return f.node(nodeKey{kind: SymbolKind, sym: A, extent: span}, "")
}

// AddIntermediate returns the intermediate node for the prefix of rule r up to
// dot, covering span.
func (f *Forest) AddIntermediate(r *cfg.Rule, dot int, span chartparse.Span) *SymbolNode {
	return f.node(nodeKey{kind: IntermediateKind, sym: r.LHS, rule: r, dot: dot, extent: span}, "")
}

// AddTerminal returns the terminal node for terminal t, matching the input
// word at position pos.
func (f *Forest) AddTerminal(t *cfg.Symbol, pos uint64, lexeme string) *SymbolNode {
	return f.node(nodeKey{kind: TerminalKind, sym: t, extent: chartparse.Span{pos, pos + 1}}, lexeme)
}

// AddPacked records a derivation of parent by rule r, with children left and
// right. Either child may be nil. Adding an existing derivation is a no-op.
func (f *Forest) AddPacked(parent *SymbolNode, r *cfg.Rule, left, right *SymbolNode) *PackedNode {
	key := packedKey{parent: parent, rule: r, left: left, right: right}
	if pn, ok := f.packedIndex[key]; ok {
		return pn
	}
	pn := &PackedNode{Rule: r, Left: left, Right: right}
	f.packedIndex[key] = pn
	f.packed[parent] = append(f.packed[parent], pn)
	return pn
}

// AddEpsilon returns the symbol node for non-terminal A, derived by the
// epsilon-rule r at position pos.
func (f *Forest) AddEpsilon(A *cfg.Symbol, r *cfg.Rule, pos uint64) *SymbolNode {
	sn := f.AddSymbol(A, chartparse.Span{pos, pos})
	f.AddPacked(sn, r, nil, nil)
	return sn
}

// SetRoot marks the root node of the forest.
func (f *Forest) SetRoot(sn *SymbolNode) {
	f.root = sn
}

// RootNode returns the root node of the forest, or nil for an empty forest.
func (f *Forest) RootNode() *SymbolNode {
	if f == nil {
		return nil
	}
	return f.root
}

// SymbolNodes returns all nodes of the forest, in the order they were created.
func (f *Forest) SymbolNodes() []*SymbolNode {
	return append([]*SymbolNode(nil), f.order...)
}

// Packed returns the packed nodes of a node, i.e. the ways it has been derived.
func (f *Forest) Packed(sn *SymbolNode) []*PackedNode {
	return f.packed[sn]
}

// Size returns the number of nodes and packed nodes of the forest.
func (f *Forest) Size() (int, int) {
	return len(f.order), len(f.packedIndex)
}

// --- Alternatives ----------------------------------------------------------

// Alternative is one way of deriving a symbol node: a rule together with the
// nodes for the symbols of the rule's RHS.
type Alternative struct {
	Rule     *cfg.Rule
	Children []*SymbolNode
}

func (alt Alternative) String() string {
	return fmt.Sprintf("%v ⇒ %v", alt.Rule, alt.Children)
}

// Alternatives returns the derivations of a symbol node, with intermediate
// nodes flattened away. For a non-ambiguous node the result has length 1.
// Terminal nodes do not have alternatives.
func (f *Forest) Alternatives(sn *SymbolNode) []Alternative {
	if sn == nil || sn.IsTerminal() {
		return nil
	}
	var alts []Alternative
	for _, pn := range f.packed[sn] {
		for _, children := range f.prefixes(pn, map[*SymbolNode]bool{sn: true}) {
			alts = append(alts, Alternative{Rule: pn.Rule, Children: children})
		}
	}
	return alts
}

// prefixes expands the left spine of a packed node into sequences of
// children. visiting guards against cycles of intermediate nodes.
func (f *Forest) prefixes(pn *PackedNode, visiting map[*SymbolNode]bool) [][]*SymbolNode {
	var lefts [][]*SymbolNode
	if pn.Left == nil {
		lefts = [][]*SymbolNode{nil}
	} else if visiting[pn.Left] {
		tracer().Errorf("cycle at intermediate node %v", pn.Left)
		return nil
	} else {
		visiting[pn.Left] = true
		for _, lpn := range f.packed[pn.Left] {
			lefts = append(lefts, f.prefixes(lpn, visiting)...)
		}
		delete(visiting, pn.Left)
	}
	if pn.Right == nil {
		return lefts
	}
	r := make([][]*SymbolNode, len(lefts))
	for i, l := range lefts {
		r[i] = append(append([]*SymbolNode(nil), l...), pn.Right)
	}
	return r
}

// IsAmbiguous returns true if a symbol node has more than one derivation.
func (f *Forest) IsAmbiguous(sn *SymbolNode) bool {
	return len(f.Alternatives(sn)) > 1
}

// Ambiguous returns true if any node of the forest has more than one
// derivation.
func (f *Forest) Ambiguous() bool {
	for _, packed := range f.packed {
		if len(packed) > 1 {
			return true
		}
	}
	return false
}
