/*
Package lexmach tokenizes sentences with a DFA generated by lexmachine
(github.com/timtadh/lexmachine).

A WordLexer splits a sentence into the tokens scanner.WordTokenizer produces:
words, numbers and punctuation marks, skipping white space. Its positions are
byte offsets into the sentence, and characters which belong to no token are
reported and skipped instead of ending the scan. The lexer is compiled once:

	wl, err := lexmach.NewWordLexer()
	sc, err := wl.Scanner("Book that flight!")
	accept, err := parser.ParseTokens(sc)

Options change what counts as a token. Punctuation replaces the set of
punctuation marks, and Pattern adds a token class:

	wl, err := lexmach.NewWordLexer(
		lexmach.Punctuation(".", ",", "--"),
		lexmach.Pattern(`@([a-z])+`, Handle),
	)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
