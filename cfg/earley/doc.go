/*
Package earley implements an Earley chart parser.

Earley's algorithm fills a chart of item sets, one set for every input
position 0…n. An item represents a partial derivation hypothesis

    (NP → Det • Nominal, [0, 1])

read as: "starting at input position 0, a Det has been recognized up to position 1;
if a Nominal follows, we will have an NP". The parser applies three operations
to every item of a set, until no new item can be added:

    Predictor:  (A → α • B β, [i, k])   ⇒  (B → • γ, [k, k])        for every rule B → γ
    Scanner:    (A → α • B β, [i, k])   ⇒  (B → w •, [k, k+1])      if word w at k is a B
    Completer:  (B → γ •, [j, k])       ⇒  (A → α B • β, [i, k])    for every (A → α • B β, [i, j])

The Scanner applies to lexical categories (parts of speech), the Predictor to all
other non-terminals. Every item is stored only once per set; the completed items
which justify an advance are accumulated as backpointers on the resident item.
This way ambiguous derivations never create duplicate items, and the
backpointers form a graph from which a shared packed parse forest is extracted.

Usage

    parser := earley.NewParser(g, earley.GenerateTree(true))
    accept, err := parser.Parse([]string{"a", "banana", "factory"})
    ...
    forest := parser.ParseForest()

A parser and its chart belong to a single parse run; grammars and their lexicons
may be shared between parsers running concurrently.

For an overview of Earley-parsing refer to
"Speech and Language Processing" by Daniel Jurafsky & James H. Martin,
or to "Parsing Techniques" by Dick Grune and Ceriel J.H. Jacobs
(https://dickgrune.com/Books/PTAPG_2nd_Edition/).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package earley

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.cfg")
}
