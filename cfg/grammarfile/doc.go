/*
Package grammarfile loads context-free grammars from files.

Two kinds of grammar documents are understood. JSON and YAML documents (JSON
being a subset of YAML) map non-terminals to lists of alternatives:

    {
        "S":       [["NP"], ["VP"]],
        "NP":      [["Det", "Nominal"]],
        "Nominal": [["Noun"], ["Noun", "Nominal"]],
        "Det":     [["a"]],
        "Noun":    [["banana"], ["factory"]]
    }

Every key is a non-terminal; a symbol which is never used as a key is a
terminal. An empty alternative is an epsilon production, while a key with
an empty list of alternatives is an error. The order of rules is the order of
the document. The start symbol is S if it is a key, otherwise the first key.
The structured form allows to state more:

    name: bananas
    start: S
    terminals: [a, banana, factory]
    rules:
      S:    [[NP], [VP]]
      ...

With an explicit list of terminals, a symbol which is neither a key nor a
listed terminal is reported as an unknown non-terminal.

Files with extension ".ebnf" are read as EBNF, in the flavour of
golang.org/x/exp/ebnf:

    S       = NP | VP .
    Nominal = Noun { Noun } .
    Noun    = "banana" | "factory" .

Groups, options and repetitions are replaced by generated helper
non-terminals, and character ranges ("a" … "z") are expanded into
alternatives of single-character terminals.

Loaded grammars are kept in a cache, keyed by the fingerprint of the grammar.
Loading identical grammars twice will return the same *cfg.Grammar, thus
sharing the lexicon between all parsers using it.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package grammarfile
