package sppf

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func span(from, to uint64) chartparse.Span {
	return chartparse.Span{from, to}
}

// S' ⟶ S
// S  ⟶ A
// A  ⟶ a
func TestSPPFInsert(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	r2 := b.LHS("A").T("a").End()
	if _, err := b.Grammar(); err != nil {
		t.Fatal(err)
	}
	f := NewForest()
	a := f.AddTerminal(r2.At(0), 0, "a")
	A := f.AddSymbol(r2.LHS, span(0, 1))
	f.AddPacked(A, r2, nil, a)
	if f.AddSymbol(r2.LHS, span(0, 1)) != A {
		t.Errorf("expected symbol node A to be shared")
	}
	f.AddPacked(A, r2, nil, a)
	if len(f.Packed(A)) != 1 {
		t.Errorf("expected duplicate packed node to be ignored, have %d", len(f.Packed(A)))
	}
	nodes, packed := f.Size()
	if nodes != 2 || packed != 1 {
		t.Errorf("expected forest of 2 nodes and 1 packed node, is %d/%d", nodes, packed)
	}
}

// S ⟶ A B C
func TestAlternativesFlattened(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	r := b.LHS("S").N("A").N("B").N("C").End()
	b.LHS("A").T("a").End()
	b.LHS("B").T("b").End()
	b.LHS("C").T("c").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	f := NewForest()
	var syms []*SymbolNode
	for i, name := range []string{"A", "B", "C"} {
		pos := uint64(i)
		N := g.SymbolByName(name)
		rules, _ := g.Alternatives(N)
		sn := f.AddSymbol(N, span(pos, pos+1))
		f.AddPacked(sn, rules[0], nil, f.AddTerminal(rules[0].At(0), pos, strings.ToLower(name)))
		syms = append(syms, sn)
	}
	i1 := f.AddIntermediate(r, 1, span(0, 1))
	f.AddPacked(i1, r, nil, syms[0])
	i2 := f.AddIntermediate(r, 2, span(0, 2))
	f.AddPacked(i2, r, i1, syms[1])
	S := f.AddSymbol(g.Start(), span(0, 3))
	f.AddPacked(S, r, i2, syms[2])
	f.SetRoot(S)
	alts := f.Alternatives(S)
	if len(alts) != 1 {
		t.Fatalf("expected 1 alternative for S, have %d", len(alts))
	}
	for i, ch := range alts[0].Children {
		if ch != syms[i] {
			t.Errorf("expected child #%d of S to be %v, is %v", i, syms[i], ch)
		}
	}
	if f.IsAmbiguous(S) || f.Ambiguous() {
		t.Errorf("expected forest not to be ambiguous")
	}
	trees := f.Derivations(0)
	if len(trees) != 1 || trees[0].String() != "(S (A a) (B b) (C c))" {
		t.Errorf("unexpected derivations %v", trees)
	}
}

// S ⟶ A | B
// A ⟶ a
// B ⟶ a
func ambiguousForest(t *testing.T) *Forest {
	b := cfg.NewGrammarBuilder("G")
	r1 := b.LHS("S").N("A").End()
	r2 := b.LHS("S").N("B").End()
	r3 := b.LHS("A").T("a").End()
	r4 := b.LHS("B").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	f := NewForest()
	a := f.AddTerminal(g.Terminal("a"), 0, "a")
	A := f.AddSymbol(r3.LHS, span(0, 1))
	f.AddPacked(A, r3, nil, a)
	B := f.AddSymbol(r4.LHS, span(0, 1))
	f.AddPacked(B, r4, nil, a)
	S := f.AddSymbol(g.Start(), span(0, 1))
	f.AddPacked(S, r1, nil, A)
	f.AddPacked(S, r2, nil, B)
	f.SetRoot(S)
	return f
}

func TestAmbiguousForest(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	f := ambiguousForest(t)
	if !f.IsAmbiguous(f.RootNode()) || !f.Ambiguous() {
		t.Errorf("expected root node to be ambiguous")
	}
	var trees []string
	for _, tree := range f.Derivations(0) {
		trees = append(trees, tree.String())
	}
	if diff := cmp.Diff([]string{"(S (A a))", "(S (B a))"}, trees); diff != "" {
		t.Errorf("derivations differ (-want +got):\n%s", diff)
	}
	if len(f.Derivations(1)) != 1 {
		t.Errorf("expected number of derivations to be limited to 1")
	}
}

// S ⟶ S | a
func TestCyclicDerivations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	r1 := b.LHS("S").N("S").End()
	r2 := b.LHS("S").T("a").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	f := NewForest()
	S := f.AddSymbol(g.Start(), span(0, 1))
	f.AddPacked(S, r1, nil, S)
	f.AddPacked(S, r2, nil, f.AddTerminal(g.Terminal("a"), 0, "a"))
	f.SetRoot(S)
	trees := f.Derivations(0)
	if len(trees) != 1 || trees[0].String() != "(S a)" {
		t.Errorf("expected single finite derivation, have %v", trees)
	}
	l := &collector{}
	f.SetCursor(nil, nil).TopDown(l, LtoR, Continue)
	if len(l.terminals) > 1 {
		t.Errorf("expected traversal to stop at cycle, have terminals %v", l.terminals)
	}
}

func TestEpsilonNode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	b := cfg.NewGrammarBuilder("G")
	b.LHS("S").N("A").End()
	r := b.LHS("A").Epsilon()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	f := NewForest()
	A := f.AddEpsilon(r.LHS, r, 0)
	S := f.AddSymbol(g.Start(), span(0, 0))
	f.AddPacked(S, g.Rule(1), nil, A)
	f.SetRoot(S)
	trees := f.Derivations(0)
	if len(trees) != 1 || trees[0].String() != "(S (A))" {
		t.Errorf("unexpected derivations %v", trees)
	}
}

// --- Traversal -------------------------------------------------------------

type collector struct {
	rules     []string
	terminals []string
	conflicts int
	choice    int
}

func (c *collector) EnterRule(sym *cfg.Symbol, rhs []*RuleNode, ctxt RuleCtxt) bool {
	c.rules = append(c.rules, sym.Name)
	return true
}

func (c *collector) ExitRule(sym *cfg.Symbol, rhs []*RuleNode, ctxt RuleCtxt) interface{} {
	var b strings.Builder
	for _, r := range rhs {
		if s, ok := r.Value.(string); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

func (c *collector) Terminal(t *cfg.Symbol, lexeme string, ctxt RuleCtxt) interface{} {
	c.terminals = append(c.terminals, lexeme)
	return lexeme
}

func (c *collector) Conflict(sym *cfg.Symbol, ctxt RuleCtxt) (int, error) {
	c.conflicts++
	return c.choice, nil
}

func (c *collector) MakeAttrs(*cfg.Symbol) interface{} {
	return nil
}

var _ Listener = &collector{}

func TestTraverse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	f := ambiguousForest(t)
	l := &collector{choice: 1}
	value := f.SetCursor(nil, nil).TopDown(l, LtoR, Continue)
	if value != "a" {
		t.Errorf("expected traversal to collect 'a', got %v", value)
	}
	if l.conflicts != 1 {
		t.Errorf("expected 1 conflict, have %d", l.conflicts)
	}
	if diff := cmp.Diff([]string{"S", "B"}, l.rules); diff != "" {
		t.Errorf("visited rules differ (-want +got):\n%s", diff)
	}
}

func TestPruner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	f := ambiguousForest(t)
	noA := PrunerFunc(func(sn *SymbolNode, alt Alternative) bool {
		return alt.Children[0].Symbol.Name == "A"
	})
	c := f.SetCursor(nil, noA)
	rule, rhs := c.RHS(f.RootNode())
	if rule == nil || len(rhs) != 1 || rhs[0].Symbol().Name != "B" {
		t.Fatalf("expected pruner to select S → B, got %v", rule)
	}
	if _, ok := c.Down(LtoR); !ok || c.Current().Symbol().Name != "B" {
		t.Errorf("expected cursor to move down to B")
	}
	if _, ok := c.Sibling(); ok {
		t.Errorf("expected B to have no sibling")
	}
	if rn, ok := c.Up(); !ok || rn.Node() != f.RootNode() {
		t.Errorf("expected cursor to move up to root")
	}
}

func TestGraphViz(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	f := ambiguousForest(t)
	var b bytes.Buffer
	if err := f.ToGraphViz(&b); err != nil {
		t.Fatal(err)
	}
	dot := b.String()
	for _, s := range []string{"digraph {", "shape=point", "rank=same", "lightgray"} {
		if !strings.Contains(dot, s) {
			t.Errorf("expected dot output to contain %q", s)
		}
	}
	t.Logf("\n%s", dot)
}
