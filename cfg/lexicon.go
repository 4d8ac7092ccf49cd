package cfg

import (
	"sort"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"golang.org/x/text/cases"
)

// Lexicon is the lexical index of a grammar. It maps words to the lexical
// categories (parts of speech) which directly derive them.
//
// A lexical category is a non-terminal where every alternative consists of
// exactly one terminal, e.g.
//
//    Noun → banana | book | factory
//
// The classification is derived from the explicit terminal/non-terminal tags
// of the grammar symbols, once, when the lexicon is created. Words are
// compared after Unicode case folding.
//
// A Lexicon is read-only after construction and may be shared between
// parsers running concurrently.
type Lexicon struct {
	g          *Grammar
	categories map[*Symbol]bool     // set of lexical categories
	entries    map[string][]*Rule   // folded word → lexical rules
	cats       map[string][]*Symbol // folded word → sorted categories
	folded     map[*Symbol]string   // terminal → folded name
}

// NewLexicon creates the lexical index for a grammar. Clients will usually
// call g.Lexicon() instead, which caches the index.
func NewLexicon(g *Grammar) *Lexicon {
	lex := &Lexicon{
		g:          g,
		categories: make(map[*Symbol]bool),
		entries:    make(map[string][]*Rule),
		cats:       make(map[string][]*Symbol),
		folded:     make(map[*Symbol]string),
	}
	for _, A := range g.symbols {
		if A.IsTerminal() {
			lex.folded[A] = fold(A.Name)
		}
	}
	for N, rules := range g.alternatives {
		if isCategory(rules) {
			lex.categories[N] = true
		}
	}
	catsets := make(map[string]*treeset.Set)
	for _, r := range g.rules[1:] { // rules are ordered by serial number
		if !lex.categories[r.LHS] {
			continue
		}
		word := lex.folded[r.rhs[0]]
		lex.entries[word] = append(lex.entries[word], r)
		if catsets[word] == nil {
			catsets[word] = treeset.NewWith(symbolByName)
		}
		catsets[word].Add(r.LHS)
	}
	for word, set := range catsets {
		syms := make([]*Symbol, 0, set.Size())
		for _, x := range set.Values() {
			syms = append(syms, x.(*Symbol))
		}
		lex.cats[word] = syms
	}
	tracer().Debugf("lexicon for grammar %s has %d categories and %d words",
		g.Name, len(lex.categories), len(lex.entries))
	return lex
}

func isCategory(rules []*Rule) bool {
	if len(rules) == 0 {
		return false
	}
	for _, r := range rules {
		if len(r.rhs) != 1 || !r.rhs[0].IsTerminal() {
			return false
		}
	}
	return true
}

func symbolByName(a, b interface{}) int {
	A, B := a.(*Symbol), b.(*Symbol)
	switch {
	case A.Name < B.Name:
		return -1
	case A.Name > B.Name:
		return 1
	}
	return 0
}

// Casers are not safe for concurrent use, so every call of fold borrows one.
var casers = sync.Pool{
	New: func() interface{} { return cases.Fold() },
}

func fold(s string) string {
	c := casers.Get().(cases.Caser)
	defer casers.Put(c)
	return c.String(s)
}

// Normalize returns the form of a word used for lookups.
func (lex *Lexicon) Normalize(word string) string {
	return fold(word)
}

// Grammar returns the grammar this lexicon has been created for.
func (lex *Lexicon) Grammar() *Grammar {
	return lex.g
}

// IsCategory returns true if B is a lexical category.
func (lex *Lexicon) IsCategory(B *Symbol) bool {
	return lex.categories[B]
}

// CategoriesFor returns the lexical categories deriving word, sorted by name.
// Unknown words result in an empty set; this is not an error.
func (lex *Lexicon) CategoriesFor(word string) []*Symbol {
	cats := lex.cats[fold(word)]
	if len(cats) == 0 {
		return []*Symbol{}
	}
	return append([]*Symbol(nil), cats...)
}

// RulesFor returns the lexical rules B → t where t matches word, ordered by
// rule number. Unknown words result in an empty slice.
func (lex *Lexicon) RulesFor(word string) []*Rule {
	return lex.entries[fold(word)]
}

// RuleFor returns the lexical rule B → t for a category B matching word, or nil.
func (lex *Lexicon) RuleFor(B *Symbol, word string) *Rule {
	for _, r := range lex.entries[fold(word)] {
		if r.LHS == B {
			return r
		}
	}
	return nil
}

// Matches returns true if terminal t matches word.
func (lex *Lexicon) Matches(t *Symbol, word string) bool {
	f, ok := lex.folded[t]
	return ok && f == fold(word)
}

// Words returns all words of the lexicon (in folded form), sorted.
func (lex *Lexicon) Words() []string {
	words := make([]string, 0, len(lex.entries))
	for w := range lex.entries {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
