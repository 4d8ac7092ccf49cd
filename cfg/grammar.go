package cfg

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/cnf/structhash"
)

// Errors reported when constructing a grammar. Grammar() wraps them, so
// clients should test with errors.Is.
var (
	// ErrUnknownNonterminal is reported for a non-terminal without alternatives.
	ErrUnknownNonterminal = errors.New("unknown non-terminal")
	// ErrMalformedGrammar is reported for inconsistent or invalid grammar input.
	ErrMalformedGrammar = errors.New("malformed grammar")
)

// SeedSymbolName is the name of the left hand side of the seed rule.
// It is reserved and may not be used by clients.
const SeedSymbolName = "S'"

// DefaultStartSymbol is the start symbol of grammars without rules.
const DefaultStartSymbol = "S"

// --- Symbols ---------------------------------------------------------------

type symbolKind int8

const (
	nonTerminalKind symbolKind = iota
	terminalKind
)

// Symbol is a grammar symbol, either a terminal or a non-terminal. The kind
// of a symbol is fixed when it is introduced to a grammar builder.
type Symbol struct {
	Name  string
	Value int // serial number, unique within a grammar
	kind  symbolKind
}

// IsTerminal returns true if this symbol is a terminal.
func (A *Symbol) IsTerminal() bool {
	return A.kind == terminalKind
}

// IsSeed returns true for the left hand side of the seed rule.
func (A *Symbol) IsSeed() bool {
	return A.Name == SeedSymbolName
}

func (A *Symbol) String() string {
	return A.Name
}

// --- Rules -----------------------------------------------------------------

// Rule is a production of a grammar: LHS → RHS. Rules are immutable once
// the grammar has been built, and every (LHS, RHS) pair exists only once
// within a grammar. Rule pointers may therefore be used as identity.
type Rule struct {
	Serial int     // order number of this rule within a grammar
	LHS    *Symbol // left hand side symbol
	rhs    []*Symbol
}

// RHS returns the right hand side of a rule. Clients must not modify the
// slice.
func (r *Rule) RHS() []*Symbol {
	return r.rhs
}

// Len returns the number of symbols of the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// At returns the RHS symbol at index i, or nil if i is out of range.
func (r *Rule) At(i int) *Symbol {
	if i < 0 || i >= len(r.rhs) {
		return nil
	}
	return r.rhs[i]
}

// IsEpsilon is true for rules with an empty right hand side.
func (r *Rule) IsEpsilon() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("[%s] ::= %v", r.LHS, r.rhs)
}

func (r *Rule) sameRHS(rhs []*Symbol) bool {
	if len(r.rhs) != len(rhs) {
		return false
	}
	for i, A := range rhs {
		if r.rhs[i] != A {
			return false
		}
	}
	return true
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a type for context-free grammars. Grammars are created by a
// GrammarBuilder and are read-only afterwards, thus may be shared between
// parsers running concurrently.
type Grammar struct {
	Name         string
	rules        []*Rule
	symbols      []*Symbol
	byName       map[string]*Symbol
	alternatives map[*Symbol][]*Rule
	start        *Symbol
	lexOnce      sync.Once
	lexicon      *Lexicon
	fpOnce       sync.Once
	fingerprint  string
}

// Start returns the start symbol of the grammar.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// SeedRule returns rule 0, S' ➞ Start.
func (g *Grammar) SeedRule() *Rule {
	return g.rules[0]
}

// Size returns the number of rules, including the seed rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// IsEmpty is true for a grammar without any client rules.
func (g *Grammar) IsEmpty() bool {
	return len(g.rules) <= 1
}

// Rule returns rule no. n or nil.
func (g *Grammar) Rule(n int) *Rule {
	if n < 0 || n >= len(g.rules) {
		return nil
	}
	return g.rules[n]
}

// SymbolByName returns a symbol of the grammar by name, or nil.
func (g *Grammar) SymbolByName(name string) *Symbol {
	return g.byName[name]
}

// Terminal returns the terminal with the given name, or nil.
func (g *Grammar) Terminal(name string) *Symbol {
	if A := g.byName[name]; A != nil && A.IsTerminal() {
		return A
	}
	return nil
}

// Alternatives returns the rules for non-terminal N, in the order they have
// been defined. Clients must not modify the slice.
func (g *Grammar) Alternatives(N *Symbol) ([]*Rule, error) {
	if N != nil {
		if rules, ok := g.alternatives[N]; ok {
			return rules, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownNonterminal, N)
}

// AlternativesFor is a variant of Alternatives, receiving the name of a non-terminal.
func (g *Grammar) AlternativesFor(name string) ([]*Rule, error) {
	N := g.byName[name]
	if N == nil || N.IsTerminal() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNonterminal, name)
	}
	return g.Alternatives(N)
}

// EachNonTerminal iterates over all non-terminals of the grammar (excluding
// S'), calling a mapper function for each. Results are collected in order.
func (g *Grammar) EachNonTerminal(mapper func(name string, N *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.symbols {
		if !A.IsTerminal() && !A.IsSeed() {
			r = append(r, mapper(A.Name, A))
		}
	}
	return r
}

// EachTerminal iterates over all terminals of the grammar, calling a mapper
// function for each. Results are collected in order.
func (g *Grammar) EachTerminal(mapper func(name string, T *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.symbols {
		if A.IsTerminal() {
			r = append(r, mapper(A.Name, A))
		}
	}
	return r
}

// Lexicon returns the lexical index of the grammar. It is computed on first
// use and cached.
func (g *Grammar) Lexicon() *Lexicon {
	g.lexOnce.Do(func() {
		g.lexicon = NewLexicon(g)
	})
	return g.lexicon
}

// Fingerprint returns a hash over the contents of the grammar. Grammars with
// identical rules (in identical order) have identical fingerprints. An empty
// string is returned if hashing failed.
func (g *Grammar) Fingerprint() string {
	g.fpOnce.Do(func() {
		type fpRule struct {
			LHS string
			RHS []string
			Tag []bool
		}
		doc := struct {
			Start string
			Rules []fpRule
		}{Start: g.start.Name}
		for _, r := range g.rules[1:] {
			fr := fpRule{LHS: r.LHS.Name}
			for _, A := range r.rhs {
				fr.RHS = append(fr.RHS, A.Name)
				fr.Tag = append(fr.Tag, A.IsTerminal())
			}
			doc.Rules = append(doc.Rules, fr)
		}
		h, err := structhash.Hash(doc, 1)
		if err != nil {
			tracer().Errorf("cannot compute fingerprint of grammar %s: %v", g.Name, err)
			return
		}
		g.fingerprint = h
	})
	return g.fingerprint
}

// Dump is a debugging helper, writing the rules of a grammar to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-------------------------------------------------------")
}

// String lists the rules of a grammar, one per line.
func (g *Grammar) String() string {
	var b bytes.Buffer
	for _, r := range g.rules {
		b.WriteString(fmt.Sprintf("%3d: %s\n", r.Serial, r))
	}
	return b.String()
}
