/*
Command earley parses sentences with an Earley parser, given a grammar file.

	earley check -g grammar.yaml
	earley parse -g grammar.yaml "book that flight"
	earley parse -g grammar.ebnf --format dot "a banana factory" | dot -Tsvg
	earley repl  -g grammar.json

Grammar files are loaded by package cfg/grammarfile and may be JSON, YAML or
EBNF. The parse command prints the parse trees for a sentence, up to a
maximum number (flag --max), or alternatively the parse forest in GraphViz
format or the chart of the parser. The repl command starts an interactive
loop, where every line is parsed as a sentence; lines starting with a colon
are commands (":help" lists them).

Every flag may also be set by an environment variable with prefix EARLEY_
(e.g., EARLEY_GRAMMAR) or in a configuration file "earley.yaml", located in
the current directory or in $HOME/.config/earley.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.cli'
func tracer() tracing.Trace {
	return tracing.Select("chartparse.cli")
}
