package cfg

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// GrammarBuilder is used to construct a grammar. Clients add rules with
//
//    b := NewGrammarBuilder("G")
//    b.LHS("S").N("A").T("a").End()   // S -> A a
//    b.LHS("A").Epsilon()             // A ->
//
// and retrieve the grammar with b.Grammar().
type GrammarBuilder struct {
	g        *Grammar
	start    string
	declared []*Symbol // LHS symbols, in order of first appearance
	errs     *multierror.Error
	done     bool
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar
// to build.
func NewGrammarBuilder(gname string) *GrammarBuilder {
	g := &Grammar{
		Name:         gname,
		byName:       make(map[string]*Symbol),
		alternatives: make(map[*Symbol][]*Rule),
	}
	gb := &GrammarBuilder{g: g}
	seed := gb.symbol(SeedSymbolName, nonTerminalKind)
	g.rules = append(g.rules, &Rule{Serial: 0, LHS: seed})
	return gb
}

// SetStart sets the start symbol of the grammar. If it is not set, the LHS
// of the first rule will serve as the start symbol.
func (gb *GrammarBuilder) SetStart(name string) *GrammarBuilder {
	gb.start = name
	return gb
}

// LHS starts a rule given the name of the left hand side symbol, which
// is a non-terminal.
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	rb := &RuleBuilder{gb: gb}
	if s == SeedSymbolName {
		gb.fail(fmt.Errorf("%w: symbol name %q is reserved", ErrMalformedGrammar, s))
	}
	rb.lhs = gb.symbol(s, nonTerminalKind)
	gb.declare(rb.lhs)
	return rb
}

func (gb *GrammarBuilder) declare(A *Symbol) {
	for _, B := range gb.declared {
		if A == B {
			return
		}
	}
	gb.declared = append(gb.declared, A)
}

// symbol interns a symbol by name. A symbol keeps the kind of its first
// appearance; a conflicting appearance is recorded as an error.
func (gb *GrammarBuilder) symbol(name string, kind symbolKind) *Symbol {
	if name == "" {
		gb.fail(fmt.Errorf("%w: empty symbol name", ErrMalformedGrammar))
	}
	if A, ok := gb.g.byName[name]; ok {
		if A.kind != kind {
			gb.fail(fmt.Errorf("%w: symbol %q used as terminal and as non-terminal",
				ErrMalformedGrammar, name))
		}
		return A
	}
	A := &Symbol{Name: name, Value: len(gb.g.symbols), kind: kind}
	gb.g.symbols = append(gb.g.symbols, A)
	gb.g.byName[name] = A
	return A
}

func (gb *GrammarBuilder) fail(err error) {
	tracer().Errorf(err.Error())
	gb.errs = multierror.Append(gb.errs, err)
}

// appendRule adds a rule to the grammar, unless an identical one exists.
func (gb *GrammarBuilder) appendRule(lhs *Symbol, rhs []*Symbol) *Rule {
	if gb.done {
		gb.fail(fmt.Errorf("%w: rule for %s added after grammar has been built",
			ErrMalformedGrammar, lhs))
	}
	for _, r := range gb.g.alternatives[lhs] {
		if r.sameRHS(rhs) {
			tracer().Debugf("duplicate rule %s ignored", r)
			return r
		}
	}
	r := &Rule{Serial: len(gb.g.rules), LHS: lhs, rhs: rhs}
	gb.g.rules = append(gb.g.rules, r)
	gb.g.alternatives[lhs] = append(gb.g.alternatives[lhs], r)
	return r
}

// Grammar returns the grammar after validating it. Validation checks every
// rule and reports all problems together. The returned error wraps
// ErrUnknownNonterminal and/or ErrMalformedGrammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	g := gb.g
	if !gb.done {
		gb.done = true
		gb.resolveStart()
		gb.validate()
		g.Dump()
	}
	if err := gb.errs.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("grammar %s: %w", g.Name, err)
	}
	return g, nil
}

func (gb *GrammarBuilder) resolveStart() {
	g := gb.g
	name := gb.start
	if name == "" {
		if len(g.rules) > 1 {
			name = g.rules[1].LHS.Name
		} else {
			name = DefaultStartSymbol
		}
	}
	if name == SeedSymbolName {
		gb.fail(fmt.Errorf("%w: start symbol may not be %q", ErrMalformedGrammar, name))
	}
	g.start = gb.symbol(name, nonTerminalKind)
	g.rules[0].rhs = []*Symbol{g.start}
}

func (gb *GrammarBuilder) validate() {
	g := gb.g
	reported := make(map[*Symbol]bool)
	for _, A := range gb.declared {
		if _, ok := g.alternatives[A]; !ok {
			reported[A] = true
			gb.fail(fmt.Errorf("%w: non-terminal %s has no alternatives", ErrMalformedGrammar, A))
		}
	}
	if g.IsEmpty() { // an empty grammar is valid and recognizes nothing
		return
	}
	if _, ok := g.alternatives[g.start]; !ok && !g.start.IsTerminal() && !reported[g.start] {
		gb.fail(fmt.Errorf("%w: start symbol %s has no rules", ErrUnknownNonterminal, g.start))
	}
	for _, r := range g.rules[1:] {
		for _, A := range r.rhs {
			if A.IsTerminal() || reported[A] {
				continue
			}
			if _, ok := g.alternatives[A]; !ok {
				reported[A] = true
				gb.fail(fmt.Errorf("%w: %s, referenced by rule %s, has no rules",
					ErrUnknownNonterminal, A, r))
			}
		}
	}
}

// --- Rule builder ----------------------------------------------------------

// RuleBuilder is a builder type for rules.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs *Symbol
	rhs []*Symbol
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	if s == SeedSymbolName {
		rb.gb.fail(fmt.Errorf("%w: symbol name %q is reserved", ErrMalformedGrammar, s))
	}
	rb.rhs = append(rb.rhs, rb.gb.symbol(s, nonTerminalKind))
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	if s == SeedSymbolName {
		rb.gb.fail(fmt.Errorf("%w: symbol name %q is reserved", ErrMalformedGrammar, s))
	}
	rb.rhs = append(rb.rhs, rb.gb.symbol(s, terminalKind))
	return rb
}

// End a rule.
func (rb *RuleBuilder) End() *Rule {
	r := rb.gb.appendRule(rb.lhs, rb.rhs)
	tracer().Debugf("appending rule %s", r)
	return r
}

// Epsilon sets epsilon as the RHS of a production.
// This must be called directly after rb.LHS(...).
func (rb *RuleBuilder) Epsilon() *Rule {
	if len(rb.rhs) > 0 {
		rb.gb.fail(fmt.Errorf("%w: epsilon rule for %s has symbols", ErrMalformedGrammar, rb.lhs))
	}
	rb.rhs = nil
	return rb.End()
}
