package earley

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/chartparse/cfg"
)

// spanTable is a brute force recognizer: derives[A][i][j] holds if
// non-terminal A derives the words i…j-1. It is computed as a least fixpoint
// over all spans, which copes with epsilon-rules and cyclic rules.
type spanTable struct {
	g       *cfg.Grammar
	words   []string
	derives map[*cfg.Symbol][][]bool
}

func newSpanTable(g *cfg.Grammar, words []string) *spanTable {
	n := len(words)
	tab := &spanTable{g: g, words: words, derives: make(map[*cfg.Symbol][][]bool)}
	rules := rulesOf(g)
	for _, r := range rules {
		if _, ok := tab.derives[r.LHS]; ok {
			continue
		}
		m := make([][]bool, n+1)
		for i := range m {
			m[i] = make([]bool, n+1)
		}
		tab.derives[r.LHS] = m
	}
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			for i := 0; i <= n; i++ {
				for _, j := range tab.ends(r.RHS(), i) {
					if !tab.derives[r.LHS][i][j] {
						tab.derives[r.LHS][i][j] = true
						changed = true
					}
				}
			}
		}
	}
	return tab
}

func rulesOf(g *cfg.Grammar) []*cfg.Rule {
	var rules []*cfg.Rule
	for n := 1; n < g.Size(); n++ {
		rules = append(rules, g.Rule(n))
	}
	return rules
}

// ends returns all positions j such that the symbols in rhs derive the words
// i…j-1.
func (tab *spanTable) ends(rhs []*cfg.Symbol, i int) []int {
	reach := map[int]bool{i: true}
	for _, A := range rhs {
		next := make(map[int]bool)
		for p := range reach {
			if A.IsTerminal() {
				if p < len(tab.words) && tab.words[p] == A.Name {
					next[p+1] = true
				}
				continue
			}
			m, ok := tab.derives[A]
			if !ok {
				continue
			}
			for q := p; q <= len(tab.words); q++ {
				if m[p][q] {
					next[q] = true
				}
			}
		}
		reach = next
	}
	var r []int
	for j := range reach {
		r = append(r, j)
	}
	return r
}

func (tab *spanTable) prefixDerives(rhs []*cfg.Symbol, i, k int) bool {
	for _, j := range tab.ends(rhs, i) {
		if j == k {
			return true
		}
	}
	return false
}

// expectedItems lists the items an Earley chart has to hold: (A → α • β, i, k)
// for every A which may be expected at position i and every α deriving the
// words i…k-1. Lexical categories are scanned, not predicted, therefore they
// occur only as completed items.
func (tab *spanTable) expectedItems() []string {
	g, n := tab.g, len(tab.words)
	lex := g.Lexicon()
	expected := map[*cfg.Symbol][]bool{g.SeedRule().LHS: make([]bool, n+1)}
	expected[g.SeedRule().LHS][0] = true
	rules := append([]*cfg.Rule{g.SeedRule()}, rulesOf(g)...)
	for changed := true; changed; {
		changed = false
		for _, r := range rules {
			for i := 0; i <= n; i++ {
				if e := expected[r.LHS]; e == nil || !e[i] {
					continue
				}
				for dot, B := range r.RHS() {
					if B.IsTerminal() {
						continue
					}
					for _, k := range tab.ends(r.RHS()[:dot], i) {
						if expected[B] == nil {
							expected[B] = make([]bool, n+1)
						}
						if !expected[B][k] {
							expected[B][k] = true
							changed = true
						}
					}
				}
			}
		}
	}
	var items []string
	for _, r := range rules {
		for i := 0; i <= n; i++ {
			if e := expected[r.LHS]; e == nil || !e[i] {
				continue
			}
			for dot := 0; dot <= r.Len(); dot++ {
				if dot < r.Len() && lex.IsCategory(r.LHS) {
					continue
				}
				for _, k := range tab.ends(r.RHS()[:dot], i) {
					items = append(items, itemString(r, dot, i, k))
				}
			}
		}
	}
	sort.Strings(items)
	return items
}

func itemString(r *cfg.Rule, dot, i, k int) string {
	return fmt.Sprintf("%d:%d@%d,%d", r.Serial, dot, i, k)
}

func chartItems(c *Chart) []string {
	var items []string
	for k := 0; k < c.Len(); k++ {
		for _, item := range c.Items(k) {
			items = append(items, itemString(item.Rule(), item.Dot(), int(item.Origin), int(item.Pos)))
		}
	}
	sort.Strings(items)
	return items
}

// sentences returns all sequences of words from alphabet of length 0…max.
func sentences(alphabet []string, max int) [][]string {
	all := [][]string{{}}
	layer := [][]string{{}}
	for l := 1; l <= max; l++ {
		var next [][]string
		for _, s := range layer {
			for _, a := range alphabet {
				next = append(next, append(append([]string(nil), s...), a))
			}
		}
		all = append(all, next...)
		layer = next
	}
	return all
}

func makeTestGrammars(t *testing.T) []*cfg.Grammar {
	var grammars []*cfg.Grammar
	add := func(b *cfg.GrammarBuilder) {
		g, err := b.Grammar()
		if err != nil {
			t.Fatal(err)
		}
		grammars = append(grammars, g)
	}
	// S → S S | a S b | ε
	b := cfg.NewGrammarBuilder("balanced")
	b.LHS("S").N("S").N("S").End()
	b.LHS("S").T("a").N("S").T("b").End()
	b.LHS("S").Epsilon()
	add(b)
	// S → A S | b ;  A → A | a | ε
	b = cfg.NewGrammarBuilder("cyclic")
	b.LHS("S").N("A").N("S").End()
	b.LHS("S").T("b").End()
	b.LHS("A").N("A").End()
	b.LHS("A").T("a").End()
	b.LHS("A").Epsilon()
	add(b)
	// S → C T | ε ;  T → b S | S C ;  C → a | b
	b = cfg.NewGrammarBuilder("mixed")
	b.LHS("S").N("C").N("T").End()
	b.LHS("S").Epsilon()
	b.LHS("T").T("b").N("S").End()
	b.LHS("T").N("S").N("C").End()
	b.LHS("C").T("a").End()
	b.LHS("C").T("b").End()
	add(b)
	// S → X ;  X → Y ;  Y → X | a Y | ε
	b = cfg.NewGrammarBuilder("unit-cycle")
	b.LHS("S").N("X").End()
	b.LHS("X").N("Y").End()
	b.LHS("Y").N("X").End()
	b.LHS("Y").T("a").N("Y").End()
	b.LHS("Y").Epsilon()
	add(b)
	return grammars
}

// For every input up to length 5, the parser accepts exactly the sentences
// derivable from the start symbol, and the chart holds exactly the items
// which are both predictable and justified by the input.
func TestChartAgainstSpanTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	tracing.Select("chartparse.cfg").SetTraceLevel(tracing.LevelError)
	for _, g := range makeTestGrammars(t) {
		for _, words := range sentences([]string{"a", "b"}, 5) {
			p := NewParser(g)
			accept, err := p.Parse(words)
			if err != nil {
				t.Fatal(err)
			}
			tab := newSpanTable(g, words)
			if want := tab.derives[g.Start()][0][len(words)]; accept != want {
				t.Errorf("grammar %s, input %v: accept = %v, expected %v", g.Name, words, accept, want)
				continue
			}
			if diff := cmp.Diff(tab.expectedItems(), chartItems(p.Chart())); diff != "" {
				t.Errorf("grammar %s, input %v: chart differs (-want +have):\n%s", g.Name, words, diff)
			}
			for _, item := range p.Chart().Items(len(words)) {
				if !tab.prefixDerives(item.Rule().RHS()[:item.Dot()], int(item.Origin), int(item.Pos)) {
					t.Errorf("grammar %s, input %v: item %v not justified by input", g.Name, words, item)
				}
			}
		}
	}
}
