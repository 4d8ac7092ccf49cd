package earley

import (
	"errors"
	"fmt"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg"
	"github.com/npillmayer/chartparse/cfg/scanner"
	"github.com/npillmayer/chartparse/cfg/sppf"
)

// ErrNoParse is returned when a parse forest is requested for input which
// has not been accepted.
var ErrNoParse = errors.New("no parse found")

// Parser is an Earley-parser type. Create and initialize one with
// earley.NewParser(...)
type Parser struct {
	g        *cfg.Grammar
	lexicon  *cfg.Lexicon
	chart    *Chart
	words    []string           // input words
	tokens   []chartparse.Token // input tokens, if parsed from a tokenizer
	accepted []*Item            // completed start items spanning the input
	forest   *sppf.Forest       // parse forest, if generated
	mode     uint               // flags controlling parser behaviour
}

// NewParser creates and initializes an Earley parser for a grammar.
func NewParser(g *cfg.Grammar, opts ...Option) *Parser {
	p := &Parser{
		g: g,
	}
	for _, option := range opts {
		option(p)
	}
	if p.lexicon == nil {
		p.lexicon = g.Lexicon()
	}
	return p
}

// Option configures a parser.
type Option func(p *Parser)

const (
	optionGenerateTree uint = 1 << 1 // generate a parse forest after accepting input
)

// GenerateTree lets the parser create a parse forest for accepted input.
// The forest may be retrieved with parser.ParseForest().
func GenerateTree(b bool) Option {
	return func(p *Parser) {
		if !p.hasmode(optionGenerateTree) && b ||
			p.hasmode(optionGenerateTree) && !b {
			p.mode ^= optionGenerateTree
		}
	}
}

// WithLexicon sets a pre-computed lexicon for the grammar. It must have been
// created for the parser's grammar.
func WithLexicon(lex *cfg.Lexicon) Option {
	return func(p *Parser) {
		p.lexicon = lex
	}
}

func (p *Parser) hasmode(m uint) bool {
	return p.mode&m > 0
}

// Grammar returns the grammar the parser has been created for.
func (p *Parser) Grammar() *cfg.Grammar {
	return p.g
}

// Chart returns the chart of the last parse run.
func (p *Parser) Chart() *Chart {
	return p.chart
}

// Accepted returns the completed items of the start symbol, spanning the
// complete input of the last parse run.
func (p *Parser) Accepted() []*Item {
	return p.accepted
}

// TokenAt returns the input token at position pos, or nil.
func (p *Parser) TokenAt(pos uint64) chartparse.Token {
	if pos >= uint64(len(p.words)) {
		return nil
	}
	if p.tokens != nil {
		return p.tokens[pos]
	}
	return scanner.MakeDefaultToken(scanner.Word, p.words[pos], chartparse.Span{pos, pos + 1})
}

// TokenRetriever returns a function for accessing the input tokens of the
// last parse run, suitable for forest listeners.
func (p *Parser) TokenRetriever() chartparse.TokenRetriever {
	return p.TokenAt
}

// ParseTokens reads all tokens from a tokenizer and parses them.
func (p *Parser) ParseTokens(tokenizer scanner.Tokenizer) (bool, error) {
	tokens := scanner.Collect(tokenizer)
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Lexeme()
	}
	accept, err := p.parse(words)
	p.tokens = tokens
	return accept, err
}

// Parse parses a sequence of words. It returns true if the input has been
// accepted. Input which is not accepted is not an error: the parser returns
// false and a nil error. A non-nil error signals a misconfigured parser.
//
// Every call of Parse starts with a fresh chart.
func (p *Parser) Parse(words []string) (bool, error) {
	return p.parse(words)
}

func (p *Parser) parse(words []string) (bool, error) {
	if p.g == nil {
		return false, errors.New("earley parser has no grammar")
	}
	if p.lexicon.Grammar() != p.g {
		return false, fmt.Errorf("lexicon has been created for grammar %s, not for %s",
			p.lexicon.Grammar().Name, p.g.Name)
	}
	p.words = append([]string(nil), words...)
	p.tokens = nil
	p.accepted = nil
	p.forest = nil
	n := len(p.words)
	p.chart = newChart(n)
	seed := newItem(p.g.SeedRule(), 0, 0, 0)
	p.enqueue(seed, 0, nil)
	for k := 0; k <= n; k++ {
		p.processPosition(uint64(k))
		dumpState(p.chart, uint64(k))
	}
	for _, item := range p.chart.set(uint64(n)).values() {
		if item.IsComplete() && item.Origin == 0 && item.rule.LHS == p.g.Start() {
			p.accepted = append(p.accepted, item)
		}
	}
	accept := len(p.accepted) > 0
	tracer().Infof("input of %d words %s", n, acceptString(accept))
	if accept {
		tracer().Debugf("accepting items: %s", itemSetString(p.accepted))
	}
	if accept && p.hasmode(optionGenerateTree) {
		p.forest = p.buildForest()
	}
	return accept, nil
}

func acceptString(accept bool) string {
	if accept {
		return "accepted"
	}
	return "not accepted"
}

// processPosition applies predictor, scanner and completer to the items at
// position k. The item set grows while we iterate over it. A completion of an
// item at its own origin (possible with epsilon-rules) may advance items which
// have been inserted after it, so in this case we re-iterate the set until
// a pass neither inserts items nor adds backpointers.
func (p *Parser) processPosition(k uint64) {
	S := p.chart.set(k)
	for {
		changes := S.changes
		S.nullable = false
		for x := 0; x < S.size(); x++ {
			p.process(S.at(x), k)
		}
		if !S.nullable || S.changes == changes {
			break
		}
		tracer().Debugf("state %d changed by nullable completions, next pass", k)
	}
}

func (p *Parser) process(item *Item, k uint64) {
	if item.IsComplete() {
		p.completer(item, k)
		return
	}
	B := item.PeekSymbol()
	switch {
	case B.IsTerminal():
		p.scanTerminal(item, B, k)
	case p.lexicon.IsCategory(B):
		p.scanner(item, B, k)
	default:
		p.predictor(item, B, k)
	}
}

// Predictor: for an item (A → α • B β, [i, k]) add (B → • γ, [k, k]) to S(k)
// for every rule B → γ.
func (p *Parser) predictor(item *Item, B *cfg.Symbol, k uint64) {
	rules, err := p.g.Alternatives(B)
	if err != nil { // only possible for the start symbol of an empty grammar
		tracer().Debugf("cannot predict %s: %v", B, err)
		return
	}
	for _, r := range rules {
		p.enqueue(newItem(r, 0, k, k), k, nil)
	}
}

// Scanner: for an item (A → α • B β, [i, k]) with B being a lexical category,
// add (B → w •, [k, k+1]) to S(k+1) if B derives the input word w at k.
// Words without a matching category simply do not produce an item.
func (p *Parser) scanner(item *Item, B *cfg.Symbol, k uint64) {
	if k >= uint64(len(p.words)) {
		return
	}
	word := p.words[k]
	r := p.lexicon.RuleFor(B, word)
	if r == nil {
		return
	}
	tracer().Debugf("scanned %q as %s", word, B)
	p.enqueue(newItem(r, 1, k, k+1), k+1, nil)
}

// scanTerminal scans a terminal occuring directly in a rule which is not a
// lexical category: (A → α • t β, [i, k]) advances to (A → α t • β, [i, k+1])
// if the input word at k matches t.
func (p *Parser) scanTerminal(item *Item, t *cfg.Symbol, k uint64) {
	if k >= uint64(len(p.words)) || !p.lexicon.Matches(t, p.words[k]) {
		return
	}
	p.enqueue(item.advance(k+1), k+1, &link{pred: item})
}

// Completer: for a completed item (B → γ •, [j, k]) find all items in S(j)
// of the form (A → α • B β, [i, j]) and add (A → α B • β, [i, k]) to S(k),
// recording the completed item as a backpointer.
func (p *Parser) completer(item *Item, k uint64) {
	B := item.rule.LHS
	j := item.Origin
	if j == k {
		p.chart.set(k).nullable = true
	}
	origin := p.chart.set(j)
	cnt := origin.size()
	for x := 0; x < cnt; x++ {
		waiting := origin.at(x)
		if waiting.IsComplete() || waiting.PeekSymbol() != B {
			continue
		}
		p.enqueue(waiting.advance(k), k, &link{pred: waiting, child: item})
	}
}

// enqueue inserts an item into S(k), unless an identical item is present.
// In either case, the derivation step l (if any) is recorded at the item
// resident in S(k). enqueue returns the resident item.
func (p *Parser) enqueue(item *Item, k uint64, l *link) *Item {
	S := p.chart.set(k)
	resident, inserted := S.add(item)
	if inserted {
		tracer().Debugf("S(%d) += %v", k, resident)
	}
	if l != nil {
		if l.child != nil && resident.addBackpointer(l.child) {
			S.changes++
		}
		if resident.addLink(*l) {
			S.changes++
		}
	}
	return resident
}
