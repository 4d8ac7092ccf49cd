/*
Package scanner defines an interface for tokenizers to be used with the
parsers of package cfg/earley.

Earley parsers in this module operate on words. A tokenizer splits input
text into words, numbers and punctuation, each of which will be matched
against the terminals of a grammar.

Two default tokenizer implementations are provided: (1) a thin wrapper over the
Go std lib 'text/scanner', and (2) an adapter for lexmachine, living in
sub-package `lexmach`.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/npillmayer/chartparse"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.scanner")
}

// Token types produced by the tokenizers of this package. EOF is identical
// to text/scanner.EOF.
const (
	EOF    = scanner.EOF
	Word   = scanner.Ident
	Number = scanner.Int
	Quoted = scanner.String
	Punct  = 0 // punctuation and other single characters
)

// Tokenizer is a scanner interface.
type Tokenizer interface {
	NextToken() chartparse.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with WordTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken rune        // last token this scanner has produced
	Error     func(error) // error handler
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// WordTokenizer creates a tokenizer for natural language text. Words are
// sequences of letters and digits, starting with a letter, and may contain
// hyphens and apostrophes ("Proper-Noun", "don't"). Numbers are unsigned
// integers or floats. Any other character, except white space, is returned as
// a single-character token of type Punct.
func WordTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	t.IsIdentRune = isWordRune
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func isWordRune(ch rune, i int) bool {
	if unicode.IsLetter(ch) {
		return true
	}
	return i > 0 && (unicode.IsDigit(ch) || ch == '-' || ch == '\'' || ch == '_')
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() chartparse.Token {
	t.lastToken = t.Scan()
	kind := t.lastToken
	switch kind {
	case scanner.EOF:
		tracer().Debugf("DefaultTokenizer reached end of input")
	case scanner.Float:
		kind = Number
	case scanner.String, scanner.RawString, scanner.Char:
		kind = Quoted
	case scanner.Ident, scanner.Int:
	default:
		kind = Punct
	}
	lexeme := t.TokenText()
	if kind == Quoted {
		lexeme = strings.Trim(lexeme, "\"`'")
	}
	return DefaultToken{
		kind:   chartparse.TokType(kind),
		lexeme: lexeme,
		span:   chartparse.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the
// word tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   chartparse.TokType
	lexeme string
	Val    interface{}
	span   chartparse.Span
}

// MakeDefaultToken creates a token from its components.
func MakeDefaultToken(typ chartparse.TokType, lexeme string, span chartparse.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

func (t DefaultToken) TokType() chartparse.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() chartparse.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q%s", t.lexeme, t.span)
}

// --- Scanner options for the word tokenizer --------------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// QuotedStrings lets the tokenizer recognize strings in double quotes,
// back-quotes or single quotes as a single token of type Quoted. The quotes are
// not part of the lexeme.
func QuotedStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		const m = scanner.ScanStrings | scanner.ScanRawStrings | scanner.ScanChars
		if b {
			t.Mode |= m
		} else {
			t.Mode &^= m
		}
	}
}

// --- Collecting tokens -----------------------------------------------------

// Collect reads all tokens from a tokenizer, up to EOF. The EOF token is not
// part of the result.
func Collect(t Tokenizer) []chartparse.Token {
	var tokens []chartparse.Token
	for token := t.NextToken(); token.TokType() != EOF; token = t.NextToken() {
		tokens = append(tokens, token)
	}
	return tokens
}

// Words reads all tokens from a tokenizer and returns their lexemes.
func Words(t Tokenizer) []string {
	tokens := Collect(t)
	words := make([]string, len(tokens))
	for i, token := range tokens {
		words[i] = token.Lexeme()
	}
	return words
}

// Split splits a sentence into words, using a word tokenizer.
//
//    Split("Book that flight!")  ⇒  [Book that flight !]
//
func Split(sentence string) []string {
	return Words(WordTokenizer("sentence", strings.NewReader(sentence)))
}
