package sppf

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg"
)

/*
Traversing a parse forest resulting from an ambiguous grammar in practice
mainly comes in two variants:

- The client has additional knowledge of how to prune the parse forest and
  select one tree. Using "book that flight" as an example, a client may know
  that sentences of its domain are always imperative and prune any NP-reading
  of the sentence.

- The choice of parse tree is irrelevant, e.g. if a client only collects the
  words matched by a certain lexical category.

The focus of this package is therefore to enable the user to prune ambiguous
parse trees, without making silent decisions which cannot be influenced by
the user. That means: having sensible defaults, but provide options for the
advanced user.
*/

// RuleNode represents a node occuring during a parse tree/forest walk.
type RuleNode struct {
	symbol *SymbolNode
	Value  interface{} // user-defined value of a node
}

// Symbol returns the grammar symbol a RuleNode refers to.
// It is either a terminal or the LHS of a derived rule.
func (rnode *RuleNode) Symbol() *cfg.Symbol {
	return rnode.symbol.Symbol
}

// Node returns the forest node a RuleNode refers to.
func (rnode *RuleNode) Node() *SymbolNode {
	return rnode.symbol
}

// Span returns the span of input words this rule covers.
func (rnode *RuleNode) Span() chartparse.Span {
	return rnode.symbol.Extent
}

// Root returns the root node of a parse forest.
func (f *Forest) Root() *RuleNode {
	if f == nil || f.root == nil {
		return nil
	}
	return &RuleNode{
		symbol: f.root,
	}
}

// A Cursor is a movable mark within a parse forest, intended for navigating over
// rule nodes. It abstracts away the notion of the and-or-tree. Clients therefore
// are able to view the parse forest as a tree of SymbolNodes.
type Cursor struct {
	forest  *Forest
	current *SymbolNode
	pruner  Pruner
	stack   []frame
}

// frame holds the selected children of a node the cursor moved down from.
type frame struct {
	parent   *SymbolNode
	children []*SymbolNode
	inx      int
	dir      Direction
}

// SetCursor sets up a cursor at a given rule node in a given forest.
// If rnode is nil, the cursor will be set up at the root node of the forest.
//
// A pruner may be given for solving ambiguities. If it is nil, the first
// alternative of an ambiguous node will be selected.
func (f *Forest) SetCursor(rnode *RuleNode, pruner Pruner) *Cursor {
	if rnode == nil {
		if rnode = f.Root(); rnode == nil {
			return nil
		}
	}
	if pruner == nil {
		pruner = DontCarePruner
	}
	return &Cursor{
		forest:  f,
		current: rnode.symbol,
		pruner:  pruner,
		stack:   make([]frame, 0, 32),
	}
}

// Current returns the node the cursor is positioned at.
func (c *Cursor) Current() *RuleNode {
	return &RuleNode{symbol: c.current}
}

// Pruner is an interface type for an entity to help prune ambiguous children
// edges. Prune returns true if alternative alt of node sn should be discarded.
type Pruner interface {
	Prune(sn *SymbolNode, alt Alternative) bool
}

type dcp struct{}

func (p dcp) Prune(sn *SymbolNode, alt Alternative) bool {
	tracer().Infof("Ambiguous symbol node %v detected", sn)
	return false // do not prune anything
}

// DontCarePruner never prunes an ambiguity alternative, thus resulting
// in always selecting the first alternative considered.
// It is the default Pruner if none is given by the caller of a Cursor.
var DontCarePruner dcp = dcp{}

// PrunerFunc lets ordinary functions serve as pruners.
type PrunerFunc func(sn *SymbolNode, alt Alternative) bool

// Prune calls pf(sn, alt).
func (pf PrunerFunc) Prune(sn *SymbolNode, alt Alternative) bool {
	return pf(sn, alt)
}

// candidates returns the alternatives of sn surviving the pruner.
func (c *Cursor) candidates(sn *SymbolNode) []Alternative {
	alts := c.forest.Alternatives(sn)
	if len(alts) <= 1 {
		return alts
	}
	var r []Alternative
	for _, alt := range alts {
		if !c.pruner.Prune(sn, alt) {
			r = append(r, alt)
		}
	}
	return r
}

func (c *Cursor) disambiguate(sn *SymbolNode) (Alternative, bool) {
	alts := c.candidates(sn)
	if len(alts) == 0 {
		return Alternative{}, false
	}
	return alts[0], true
}

// RHS collects the children symbols of a node as a slice.
// It uses the cursor's pruner to decide between ambiguous RHS variants.
func (c *Cursor) RHS(sn *SymbolNode) (*cfg.Rule, []*RuleNode) {
	alt, ok := c.disambiguate(sn)
	if !ok {
		return nil, nil
	}
	return alt.Rule, ruleNodes(alt.Children)
}

func ruleNodes(children []*SymbolNode) []*RuleNode {
	rhsnodes := make([]*RuleNode, len(children))
	for i, ch := range children {
		rhsnodes[i] = &RuleNode{symbol: ch}
	}
	return rhsnodes
}

// Up moves the cursor up to the parent node of the current node, if any.
func (c *Cursor) Up() (*RuleNode, bool) {
	if len(c.stack) == 0 {
		return c.Current(), false
	}
	top := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	c.current = top.parent
	tracer().Debugf("UP Cursor @ %v", c.current)
	return c.Current(), true
}

// Down moves the cursor down to the first child of the curent node, if any.
// dir lets clients start at either the leftmost child (default) or the rightmost
// child.
func (c *Cursor) Down(dir Direction) (*RuleNode, bool) {
	alt, ok := c.disambiguate(c.current)
	if !ok {
		return c.Current(), false
	}
	return c.down(alt, dir)
}

func (c *Cursor) down(alt Alternative, dir Direction) (*RuleNode, bool) {
	if len(alt.Children) == 0 {
		return c.Current(), false
	}
	inx := 0
	if dir == RtoL {
		inx = len(alt.Children) - 1
	}
	c.stack = append(c.stack, frame{
		parent:   c.current,
		children: alt.Children,
		inx:      inx,
		dir:      dir,
	})
	c.current = alt.Children[inx]
	tracer().Debugf("DOWN Cursor @ %v", c.current)
	return c.Current(), true
}

// Sibling moves the cursor to the next sibling of the current node, if any.
func (c *Cursor) Sibling() (*RuleNode, bool) {
	if len(c.stack) == 0 {
		return c.Current(), false
	}
	top := &c.stack[len(c.stack)-1]
	next := top.inx + int(top.dir)
	if next < 0 || next >= len(top.children) {
		return c.Current(), false
	}
	top.inx = next
	c.current = top.children[next]
	tracer().Debugf("SIBLING Cursor @ %v", c.current)
	return c.Current(), true
}

// TopDown traverses a sub-tree top-down, applying Listener-methods for all nodes
// encountered. It returns a user-defined value, calculated by the listener.
func (c *Cursor) TopDown(listener Listener, dir Direction, breakmode Breakmode) interface{} {
	tracer().Debugf("TopDown starting at node %v", c.current)
	onPath := make(map[*SymbolNode]bool)
	return c.traverseTopDown(listener, dir, breakmode, 0, onPath)
}

func (c *Cursor) traverseTopDown(listener Listener, dir Direction, breakmode Breakmode,
	level int, onPath map[*SymbolNode]bool) interface{} {
	//
	node := c.current
	if node.IsTerminal() {
		ctxt := makeCtxt(node.Extent, level, nil, nil)
		return listener.Terminal(node.Symbol, node.Lexeme, ctxt)
	}
	if onPath[node] { // cyclic derivation, A ⇒+ A
		tracer().Debugf("cycle at %v, not descending", node)
		return nil
	}
	onPath[node] = true
	defer delete(onPath, node)
	tracer().Debugf(">>> %s", node)
	alts := c.candidates(node)
	if len(alts) > 1 {
		ctxt := makeCtxt(node.Extent, level, nil, nil)
		n, err := listener.Conflict(node.Symbol, ctxt)
		if err != nil {
			tracer().Errorf("traversal aborted at %v: %v", node, err)
			return nil
		}
		if n > 0 && n < len(alts) {
			alts[0] = alts[n]
		}
	}
	var rule *cfg.Rule
	var rhsNodes []*RuleNode
	if len(alts) > 0 {
		rule, rhsNodes = alts[0].Rule, ruleNodes(alts[0].Children)
	}
	localAttributes := listener.MakeAttrs(node.Symbol)
	ctxt := makeCtxt(node.Extent, level, rule, localAttributes)
	doContinue := listener.EnterRule(node.Symbol, rhsNodes, ctxt)
	if len(alts) > 0 && (doContinue || breakmode == Continue) { // listener signalled us to traverse children nodes
		i := 0
		if dir == RtoL {
			i = len(rhsNodes) - 1
		}
		if _, ok := c.down(alts[0], dir); ok {
			for ; ok; _, ok = c.Sibling() {
				chvalue := c.traverseTopDown(listener, dir, breakmode, level+1, onPath)
				tracer().Debugf("child value[%d] = %v", i, chvalue)
				rhsNodes[i].Value = chvalue
				i += int(dir)
			}
			c.Up()
		}
	}
	value := listener.ExitRule(node.Symbol, rhsNodes, ctxt)
	tracer().Debugf("<<< %s", node)
	return value
}

// Direction lets clients decide wether children nodes should be traversed left-to-right
// (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// --- Listener --------------------------------------------------------------

// Listener is a type for walking a parse tree/forest.
//
// Arguments are:
//
//     - *cfg.Symbol: the grammar symbol at the current node
//     - []*RuleNode: the right-hand side of the grammar production at this node
//     - RuleCtxt:    contextual information for the node
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree.
//
// Conflict is called whenever the traversal encounters an ambiguous node, i.e. one
// where the parse symbol has more than one right-hand side, resulting from different
// applications of grammar productions. The return value indicates the positional number
// of the RHS-variant to be selected. If it returns an error, traversal will be aborted.
// (If in doubt what to do, simply return (0, nil).)
type Listener interface {
	EnterRule(*cfg.Symbol, []*RuleNode, RuleCtxt) bool
	ExitRule(*cfg.Symbol, []*RuleNode, RuleCtxt) interface{}
	Terminal(*cfg.Symbol, string, RuleCtxt) interface{}
	Conflict(*cfg.Symbol, RuleCtxt) (int, error)
	MakeAttrs(*cfg.Symbol) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Span  chartparse.Span // span of input words covered by this rule
	Level int             // nesting level
	Rule  *cfg.Rule       // nil for terminals
	Attrs interface{}     // client-defined attributes local to node
}

func makeCtxt(span chartparse.Span, level int, rule *cfg.Rule, attrs interface{}) RuleCtxt {
	return RuleCtxt{
		Span:  span,
		Level: level,
		Rule:  rule,
		Attrs: attrs,
	}
}

// ---------------------------------------------------------------------------
