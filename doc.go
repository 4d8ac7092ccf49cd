/*
Package chartparse is a toolbox for chart parsing of context-free grammars.

It focusses on Earley-parsing of ambiguous grammars, as used for natural
language sentences, and on recovering all derivations of an input as a
shared packed parse forest. Package structure is as follows:

■ cfg: Package cfg implements context-free grammars, together with the lexical
index which maps words to their grammatical categories.

■ cfg/earley: Package earley implements the chart parser (Earley's algorithm).

■ cfg/sppf: Package sppf implements shared packed parse forests.

■ cfg/scanner: Package scanner splits free text into words; sub-package lexmach
does the same with a lexmachine DFA.

■ cfg/grammarfile: Package grammarfile loads grammars from JSON, YAML or EBNF documents.

■ cmd/earley: A command line tool to check grammars and to parse sentences,
either one at a time or interactively.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package chartparse
