package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/npillmayer/chartparse/cfg"
)

func (a *app) newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Load and validate a grammar, then list its rules and lexicon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.grammar()
			if err != nil {
				return err
			}
			describe(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

// describe writes the rules of a grammar, followed by a table of its lexical
// categories.
func describe(w io.Writer, g *cfg.Grammar) {
	fmt.Fprintf(w, "grammar %s: %d rules, start symbol %s, fingerprint %s\n",
		g.Name, g.Size()-1, g.Start(), g.Fingerprint())
	fmt.Fprint(w, g.String())
	lex := g.Lexicon()
	words := make(map[*cfg.Symbol][]string)
	for _, word := range lex.Words() {
		for _, B := range lex.CategoriesFor(word) {
			words[B] = append(words[B], word)
		}
	}
	if len(words) == 0 {
		fmt.Fprintln(w, "grammar has no lexical categories")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Category", "Words"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	g.EachNonTerminal(func(name string, N *cfg.Symbol) interface{} {
		if lex.IsCategory(N) {
			table.Append([]string{name, strings.Join(words[N], " ")})
		}
		return nil
	})
	table.Render()
}
