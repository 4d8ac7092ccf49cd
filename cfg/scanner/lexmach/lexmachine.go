package lexmach

import (
	"strings"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/chartparse/cfg/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'chartparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.scanner")
}

// DefaultPunctuation is the set of punctuation marks a WordLexer splits off
// words, unless configured otherwise.
var DefaultPunctuation = []string{
	".", ",", ";", ":", "!", "?", "(", ")", "[", "]", "+", "-", "*", "/", "=", "'", "\"",
}

// Patterns for the token classes of scanner.WordTokenizer.
const (
	wordPattern   = `([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-|')*`
	numberPattern = `[0-9]+(\.[0-9]+)?`
	spacePattern  = `( |\t|\n|\r)+`
)

type pattern struct {
	regex   string
	toktype chartparse.TokType
}

type config struct {
	punctuation []string
	patterns    []pattern
}

// Option configures a WordLexer.
type Option func(*config)

// Punctuation replaces the set of punctuation marks. Each mark is matched
// literally and may consist of more than one character, e.g. "--".
func Punctuation(marks ...string) Option {
	return func(c *config) {
		c.punctuation = marks
	}
}

// Pattern adds a class of tokens, given as a lexmachine regular expression.
// On matches of equal length, patterns win over words and numbers, in the
// order they have been added.
func Pattern(regex string, toktype chartparse.TokType) Option {
	return func(c *config) {
		c.patterns = append(c.patterns, pattern{regex: regex, toktype: toktype})
	}
}

// WordLexer splits sentences into words, numbers and punctuation, with a DFA
// compiled by lexmachine. Token types are the ones of scanner.WordTokenizer.
// A WordLexer is compiled once and may then create any number of scanners.
type WordLexer struct {
	lexer *lexmachine.Lexer
}

// NewWordLexer compiles a word lexer. It returns an error if one of the
// patterns is not a valid lexmachine expression.
func NewWordLexer(opts ...Option) (*WordLexer, error) {
	c := &config{punctuation: DefaultPunctuation}
	for _, opt := range opts {
		opt(c)
	}
	lexer := lexmachine.NewLexer()
	for _, p := range c.patterns {
		lexer.Add([]byte(p.regex), emit(p.toktype))
	}
	lexer.Add([]byte(wordPattern), emit(scanner.Word))
	lexer.Add([]byte(numberPattern), emit(scanner.Number))
	lexer.Add([]byte(spacePattern), skip)
	for _, mark := range c.punctuation {
		lexer.Add([]byte(literal(mark)), emit(scanner.Punct))
	}
	if err := lexer.Compile(); err != nil {
		tracer().Errorf("cannot compile word lexer: %v", err)
		return nil, err
	}
	return &WordLexer{lexer: lexer}, nil
}

// literal escapes every character of a punctuation mark.
func literal(mark string) string {
	var b strings.Builder
	for _, r := range mark {
		b.WriteByte('\\')
		b.WriteRune(r)
	}
	return b.String()
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func emit(toktype chartparse.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(toktype), string(m.Bytes), m), nil
	}
}

// Scanner creates a tokenizer for a sentence.
func (wl *WordLexer) Scanner(sentence string) (*Scanner, error) {
	s, err := wl.lexer.Scanner([]byte(sentence))
	if err != nil {
		return nil, err
	}
	return &Scanner{scanner: s, onError: logError}, nil
}

// Scanner reads the tokens of a single sentence.
type Scanner struct {
	scanner *lexmachine.Scanner
	onError func(error)
}

var _ scanner.Tokenizer = (*Scanner)(nil)

// SetErrorHandler sets a handler for input which is not part of any token.
// A nil handler restores the default, which traces the error.
func (sc *Scanner) SetErrorHandler(h func(error)) {
	if h == nil {
		h = logError
	}
	sc.onError = h
}

func logError(e error) {
	tracer().Errorf("scanner error: %v", e)
}

// NextToken returns the next token of the sentence, or a token of type
// scanner.EOF. Characters which are not part of any token are reported to
// the error handler and skipped.
func (sc *Scanner) NextToken() chartparse.Token {
	tok, err, eof := sc.scanner.Next()
	for err != nil {
		sc.onError(err)
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			sc.scanner.TC = ui.FailTC
			if ui.FailTC <= ui.StartTC {
				sc.scanner.TC = ui.StartTC + 1
			}
		}
		tok, err, eof = sc.scanner.Next()
	}
	if eof {
		return scanner.MakeDefaultToken(scanner.EOF, "", chartparse.Span{0, 0})
	}
	token := tok.(*lexmachine.Token)
	tracer().Debugf("token %d %q at %d", token.Type, token.Lexeme, token.TC)
	return scanner.MakeDefaultToken(
		chartparse.TokType(token.Type),
		string(token.Lexeme),
		chartparse.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
	)
}
