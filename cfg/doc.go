/*
Package cfg implements context-free grammars for chart parsing.
It is mainly intended for parsing sentences of natural language, but may
be of use for other purposes, too.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Every symbol is
tagged explicitly: N() adds a non-terminal, T() adds a terminal. Grammars may
contain epsilon-productions.

Example:

    b := cfg.NewGrammarBuilder("G")
    b.LHS("S").N("NP").End()                   // S       ->  NP
    b.LHS("NP").N("Det").N("Nominal").End()    // NP      ->  Det Nominal
    b.LHS("Nominal").N("Noun").End()           // Nominal ->  Noun
    b.LHS("Nominal").N("Noun").N("Nominal").End()
    b.LHS("Det").T("a").End()                  // Det     ->  a
    b.LHS("Noun").T("banana").End()            // Noun    ->  banana
    b.LHS("Noun").T("factory").End()
    g, err := b.Grammar()

This results in the following grammar:

   g.Dump()

   0: [S'] ::= [S]
   1: [S] ::= [NP]
   2: [NP] ::= [Det Nominal]
   3: [Nominal] ::= [Noun]
   4: [Nominal] ::= [Noun Nominal]
   5: [Det] ::= [a]
   6: [Noun] ::= [banana]
   7: [Noun] ::= [factory]

Rule 0 is the seed rule, created by the builder. The start symbol is the
left hand side of the first rule, unless set otherwise with SetStart().

Validation

Grammars are validated eagerly and completely when calling Grammar(). All
problems found are reported together; they may be checked with errors.Is
against ErrUnknownNonterminal and ErrMalformedGrammar. A grammar which has
been built successfully will never fail during a parse.

Lexical Categories

A non-terminal whose alternatives are all made of exactly one terminal is a
lexical category (a part of speech, like 'Noun' above). The Lexicon of a
grammar maps words to their categories:

    lex := g.Lexicon()
    lex.CategoriesFor("Banana")   // => [Noun]
    lex.CategoriesFor("xyz")      // => [], unknown words are not an error

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cfg

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'chartparse.cfg'.
func tracer() tracing.Trace {
	return tracing.Select("chartparse.cfg")
}
