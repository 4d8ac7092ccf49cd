package grammarfile

import (
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/chartparse/cfg"
	"golang.org/x/exp/ebnf"
)

// MaxRangeSize is the maximum number of characters a range "a" … "z" may span.
const MaxRangeSize = 128

// LoadEBNF reads a grammar in EBNF notation. Productions are turned into rules
// in the order of appearance; the first production defines the start symbol,
// unless overridden with option Start.
func LoadEBNF(r io.Reader, opts ...Option) (*cfg.Grammar, error) {
	l := newLoader("", opts)
	eg, err := ebnf.Parse(l.name, r)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: %w: %v", l.name, cfg.ErrMalformedGrammar, err)
	}
	productions := make([]*ebnf.Production, 0, len(eg))
	for _, p := range eg {
		productions = append(productions, p)
	}
	sort.Slice(productions, func(i, j int) bool {
		return productions[i].Name.Pos().Offset < productions[j].Name.Pos().Offset
	})
	x := &expander{helpers: make(map[string]int)}
	for _, p := range productions {
		x.production(p.Name.String, p.Expr)
	}
	if x.errs != nil {
		return nil, fmt.Errorf("grammar %s: %w", l.name, x.errs.ErrorOrNil())
	}
	start := l.start
	if start == "" && len(productions) > 0 {
		start = productions[0].Name.String
	}
	g, err := build(l.name, start, x.prods)
	if err != nil {
		return nil, err
	}
	return shared(g), nil
}

// expander translates EBNF expressions into plain productions.
type expander struct {
	prods   []production
	helpers map[string]int // number of helpers generated per production
	errs    *multierror.Error
}

func (x *expander) fail(pos fmt.Stringer, msg string, args ...interface{}) {
	err := fmt.Errorf("%w: %s: %s", cfg.ErrMalformedGrammar, pos, fmt.Sprintf(msg, args...))
	tracer().Errorf(err.Error())
	x.errs = multierror.Append(x.errs, err)
}

// production adds a rule for every alternative of expression e.
func (x *expander) production(lhs string, e ebnf.Expression) {
	if e == nil { // P = .
		x.prods = append(x.prods, production{lhs: lhs})
		return
	}
	if alt, ok := e.(ebnf.Alternative); ok {
		for _, a := range alt {
			x.prods = append(x.prods, production{lhs: lhs, rhs: x.sequence(lhs, a)})
		}
		return
	}
	x.prods = append(x.prods, production{lhs: lhs, rhs: x.sequence(lhs, e)})
}

func (x *expander) sequence(lhs string, e ebnf.Expression) []symref {
	if seq, ok := e.(ebnf.Sequence); ok {
		rhs := make([]symref, 0, len(seq))
		for _, item := range seq {
			rhs = append(rhs, x.symbol(lhs, item)...)
		}
		return rhs
	}
	return x.symbol(lhs, e)
}

// symbol translates a single item of a sequence. Compound items are replaced
// by a helper non-terminal.
func (x *expander) symbol(lhs string, e ebnf.Expression) []symref {
	switch e := e.(type) {
	case nil:
		return nil
	case *ebnf.Name:
		return []symref{{name: e.String}}
	case *ebnf.Token:
		return []symref{{name: e.String, terminal: true}}
	case *ebnf.Group:
		H := x.helper(lhs)
		x.production(H, e.Body)
		return []symref{{name: H}}
	case *ebnf.Option:
		H := x.helper(lhs)
		x.prods = append(x.prods, production{lhs: H})
		x.production(H, e.Body)
		return []symref{{name: H}}
	case *ebnf.Repetition:
		// H = ε | H body
		H := x.helper(lhs)
		x.prods = append(x.prods, production{lhs: H})
		rec := symref{name: H}
		if alt, ok := e.Body.(ebnf.Alternative); ok {
			for _, a := range alt {
				x.prods = append(x.prods, production{lhs: H, rhs: append([]symref{rec}, x.sequence(lhs, a)...)})
			}
		} else {
			x.prods = append(x.prods, production{lhs: H, rhs: append([]symref{rec}, x.sequence(lhs, e.Body)...)})
		}
		return []symref{rec}
	case *ebnf.Range:
		return x.charRange(lhs, e)
	case ebnf.Alternative, ebnf.Sequence:
		H := x.helper(lhs)
		x.production(H, e)
		return []symref{{name: H}}
	case *ebnf.Bad:
		x.fail(e.Pos(), "%s", e.Error)
	default:
		x.fail(e.Pos(), "unsupported expression %T", e)
	}
	return nil
}

// charRange expands "a" … "c" into H = "a" | "b" | "c".
func (x *expander) charRange(lhs string, r *ebnf.Range) []symref {
	from, n1 := utf8.DecodeRuneInString(r.Begin.String)
	to, n2 := utf8.DecodeRuneInString(r.End.String)
	if n1 != len(r.Begin.String) || n2 != len(r.End.String) {
		x.fail(r.Pos(), "range bounds must be single characters")
		return nil
	}
	if to < from || int(to-from) >= MaxRangeSize {
		x.fail(r.Pos(), "range %q … %q too large", from, to)
		return nil
	}
	H := x.helper(lhs)
	for c := from; c <= to; c++ {
		x.prods = append(x.prods, production{lhs: H, rhs: []symref{{name: string(c), terminal: true}}})
	}
	return []symref{{name: H}}
}

// helper creates the name of a new helper non-terminal for production lhs.
// Helper names contain a character not allowed in EBNF identifiers.
func (x *expander) helper(lhs string) string {
	x.helpers[lhs]++
	return fmt.Sprintf("%s#%d", lhs, x.helpers[lhs])
}
