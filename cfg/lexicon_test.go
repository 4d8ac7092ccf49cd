package cfg

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func names(syms []*Symbol) []string {
	r := make([]string, len(syms))
	for i, A := range syms {
		r[i] = A.Name
	}
	return r
}

func TestLexiconCategories(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	g := makeGrammar(t)
	lex := g.Lexicon()
	for _, N := range []string{"Det", "Noun", "Verb", "Proper-Noun"} {
		if !lex.IsCategory(g.SymbolByName(N)) {
			t.Errorf("expected %s to be a lexical category", N)
		}
	}
	for _, N := range []string{"S", "NP", "VP", "Nominal"} {
		if lex.IsCategory(g.SymbolByName(N)) {
			t.Errorf("expected %s not to be a lexical category", N)
		}
	}
	if diff := cmp.Diff([]string{"Noun", "Verb"}, names(lex.CategoriesFor("Book"))); diff != "" {
		t.Errorf("categories for 'Book' differ (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Proper-Noun"}, names(lex.CategoriesFor("batman"))); diff != "" {
		t.Errorf("categories for 'batman' differ (-want +got):\n%s", diff)
	}
	if r := lex.RuleFor(g.SymbolByName("Verb"), "BOOK"); r == nil || r.LHS.Name != "Verb" {
		t.Errorf("expected lexical rule Verb → book, got %v", r)
	}
}

func TestLexiconUnknownWord(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	lex := makeGrammar(t).Lexicon()
	cats := lex.CategoriesFor("xyz")
	if cats == nil || len(cats) != 0 {
		t.Errorf("expected empty set of categories for unknown word, got %v", cats)
	}
	if len(lex.RulesFor("xyz")) != 0 {
		t.Errorf("expected no lexical rules for unknown word")
	}
}

func TestLexiconMixedRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	b := NewGrammarBuilder("G")
	b.LHS("S").N("X").End()
	b.LHS("X").T("x").End()
	b.LHS("X").N("Y").End() // X is not a lexical category
	b.LHS("Y").T("y").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lex := g.Lexicon()
	if lex.IsCategory(g.SymbolByName("X")) {
		t.Errorf("expected X not to be a lexical category")
	}
	if len(lex.CategoriesFor("x")) != 0 {
		t.Errorf("expected 'x' not to be in the lexicon")
	}
	if !lex.Matches(g.Terminal("x"), "X") {
		t.Errorf("expected terminal x to match 'X'")
	}
	if diff := cmp.Diff([]string{"y"}, lex.Words()); diff != "" {
		t.Errorf("words differ (-want +got):\n%s", diff)
	}
}

func TestLexiconIsShared(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	g := makeGrammar(t)
	var wg sync.WaitGroup
	lexicons := make([]*Lexicon, 8)
	for i := range lexicons {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lexicons[i] = g.Lexicon()
			lexicons[i].CategoriesFor("banana")
		}(i)
	}
	wg.Wait()
	for _, lex := range lexicons[1:] {
		if lex != lexicons[0] {
			t.Fatalf("expected lexicon to be computed once per grammar")
		}
	}
}

func TestLexiconConcurrentLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "chartparse.cfg")
	defer teardown()
	//
	lex := makeGrammar(t).Lexicon()
	var wg sync.WaitGroup
	errs := make(chan string, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if w := lex.Normalize("Straße"); w != "strasse" {
					errs <- w
					return
				}
				if len(lex.CategoriesFor("BANANA")) == 0 {
					errs <- "BANANA"
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for w := range errs {
		t.Errorf("unexpected lookup result %q", w)
	}
}
