package grammarfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/npillmayer/chartparse/cfg"
	"gopkg.in/yaml.v3"
)

// LoadDocument reads a grammar document in JSON or YAML format. Documents are
// decoded into YAML nodes rather than maps, as the order of rules matters.
func LoadDocument(r io.Reader, opts ...Option) (*cfg.Grammar, error) {
	l := newLoader("", opts)
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("cannot decode grammar document %s: %w", l.name, err)
		}
		tracer().Infof("grammar document %s is empty", l.name)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		doc = doc.Content[0]
	}
	d := &document{loader: l}
	if doc.Kind != 0 && doc.Kind != yaml.MappingNode {
		d.malformed(doc, "grammar document must be a mapping")
		return nil, fmt.Errorf("grammar %s: %w", l.name, d.errs.ErrorOrNil())
	}
	rules := doc
	if isStructured(doc) {
		rules = d.header(doc)
	}
	prods := d.rules(rules)
	if d.errs != nil {
		return nil, fmt.Errorf("grammar %s: %w", l.name, d.errs.ErrorOrNil())
	}
	g, err := build(l.name, d.start(), prods)
	if err != nil {
		return nil, err
	}
	return shared(g), nil
}

type document struct {
	*loader
	docStart  string
	terminals map[string]bool // nil if not declared
	errs      *multierror.Error
}

func (d *document) start() string {
	if d.loader.start != "" {
		return d.loader.start
	}
	return d.docStart
}

func (d *document) malformed(n *yaml.Node, msg string, args ...interface{}) error {
	err := fmt.Errorf("%w: line %d: %s", cfg.ErrMalformedGrammar, n.Line, fmt.Sprintf(msg, args...))
	d.errs = multierror.Append(d.errs, err)
	return err
}

// isStructured checks if a document has a 'rules' section. A non-terminal
// called 'rules' maps to a sequence instead.
func isStructured(doc *yaml.Node) bool {
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value == "rules" && doc.Content[i+1].Kind == yaml.MappingNode {
			return true
		}
	}
	return false
}

// header reads the header entries of a structured document and returns the
// rules section.
func (d *document) header(doc *yaml.Node) *yaml.Node {
	var rules *yaml.Node
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i], doc.Content[i+1]
		switch key.Value {
		case "name":
			if d.name == "" {
				d.name = val.Value
			}
		case "start":
			d.docStart = val.Value
		case "terminals":
			if val.Kind != yaml.SequenceNode {
				d.malformed(val, "terminals must be a list")
				continue
			}
			d.terminals = make(map[string]bool, len(val.Content))
			for _, t := range val.Content {
				d.terminals[t.Value] = true
			}
		case "rules":
			rules = val
		default:
			d.malformed(key, "unknown section %q", key.Value)
		}
	}
	return rules
}

// rules reads a mapping of non-terminals to alternatives. Without a start
// symbol given, S is the start symbol if it has rules, otherwise the first
// non-terminal is.
func (d *document) rules(doc *yaml.Node) []production {
	if doc == nil || len(doc.Content) == 0 {
		return nil
	}
	nonterms := make(map[string]bool, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i]
		if key.Kind != yaml.ScalarNode {
			d.malformed(key, "non-terminal must be a name")
			continue
		}
		if d.terminals[key.Value] {
			d.malformed(key, "terminal %q has rules", key.Value)
		}
		nonterms[key.Value] = true
	}
	if d.docStart == "" && nonterms[cfg.DefaultStartSymbol] {
		d.docStart = cfg.DefaultStartSymbol
	}
	var prods []production
	for i := 0; i+1 < len(doc.Content); i += 2 {
		lhs, alts := doc.Content[i].Value, doc.Content[i+1]
		if alts.Kind != yaml.SequenceNode {
			d.malformed(alts, "alternatives for %s must be a list", lhs)
			continue
		}
		if len(alts.Content) == 0 {
			d.malformed(alts, "non-terminal %s has no alternatives", lhs)
			continue
		}
		for _, alt := range alts.Content {
			p := production{lhs: lhs}
			switch alt.Kind {
			case yaml.ScalarNode: // shortcut for a single symbol
				p.rhs = append(p.rhs, d.symbol(alt.Value, nonterms))
			case yaml.SequenceNode:
				for _, A := range alt.Content {
					if A.Kind != yaml.ScalarNode {
						d.malformed(A, "symbol in rule for %s must be a name", lhs)
						continue
					}
					p.rhs = append(p.rhs, d.symbol(A.Value, nonterms))
				}
			default:
				d.malformed(alt, "alternative for %s must be a list of symbols", lhs)
				continue
			}
			prods = append(prods, p)
		}
	}
	return prods
}

// symbol decides whether a name is a terminal. Names which are neither keys
// nor declared terminals are passed on as non-terminals, which lets the
// grammar builder report them as unknown.
func (d *document) symbol(name string, nonterms map[string]bool) symref {
	if nonterms[name] {
		return symref{name: name}
	}
	if d.terminals == nil || d.terminals[name] {
		return symref{name: name, terminal: true}
	}
	return symref{name: name}
}
