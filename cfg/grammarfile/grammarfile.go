package grammarfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/npillmayer/chartparse/cfg"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.cfg")
}

// CacheSize is the number of loaded grammars kept in memory.
const CacheSize = 64

var grammars, _ = lru.New[string, *cfg.Grammar](CacheSize)

// Option configures the loading of a grammar.
type Option func(*loader)

type loader struct {
	name  string
	start string
}

// Start overrides the start symbol of a grammar document.
func Start(symbol string) Option {
	return func(l *loader) {
		l.start = symbol
	}
}

// Name sets the name of the grammar. Defaults to the base name of the file.
func Name(name string) Option {
	return func(l *loader) {
		l.name = name
	}
}

func newLoader(name string, opts []Option) *loader {
	l := &loader{name: name}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a grammar from a file. The format is determined from the file
// extension: ".json", ".yaml" and ".yml" denote grammar documents, ".ebnf"
// denotes EBNF.
func Load(path string, opts ...Option) (*cfg.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open grammar file: %w", err)
	}
	defer f.Close()
	ext := strings.ToLower(filepath.Ext(path))
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	opts = append([]Option{Name(name)}, opts...)
	switch ext {
	case ".json", ".yaml", ".yml":
		return LoadDocument(f, opts...)
	case ".ebnf":
		return LoadEBNF(f, opts...)
	}
	return nil, fmt.Errorf("unknown grammar file format %q", ext)
}

// shared returns the cached grammar equivalent to g, or g itself after adding
// it to the cache.
func shared(g *cfg.Grammar) *cfg.Grammar {
	fp := g.Fingerprint()
	if fp == "" {
		return g
	}
	if prev, ok, _ := grammars.PeekOrAdd(fp, g); ok {
		tracer().Debugf("grammar %s identical to cached grammar %s", g.Name, prev.Name)
		return prev
	}
	return g
}

// PurgeCache removes all grammars from the cache of loaded grammars.
func PurgeCache() {
	grammars.Purge()
}

// --- Intermediate rule representation --------------------------------------

type symref struct {
	name     string
	terminal bool
}

type production struct {
	lhs string
	rhs []symref
}

// build feeds productions into a grammar builder.
func build(name, start string, prods []production) (*cfg.Grammar, error) {
	if name == "" {
		name = "G"
	}
	b := cfg.NewGrammarBuilder(name)
	if start != "" {
		b.SetStart(start)
	}
	for _, p := range prods {
		rb := b.LHS(p.lhs)
		if len(p.rhs) == 0 {
			rb.Epsilon()
			continue
		}
		for _, A := range p.rhs {
			if A.terminal {
				rb.T(A.name)
			} else {
				rb.N(A.name)
			}
		}
		rb.End()
	}
	return b.Grammar()
}

// Read reads a grammar in a given format, which is one of "json", "yaml" or
// "ebnf".
func Read(r io.Reader, format string, opts ...Option) (*cfg.Grammar, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "json", "yaml", "yml":
		return LoadDocument(r, opts...)
	case "ebnf":
		return LoadEBNF(r, opts...)
	}
	return nil, fmt.Errorf("unknown grammar file format %q", format)
}
