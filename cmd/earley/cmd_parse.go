package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/chartparse/cfg"
	"github.com/npillmayer/chartparse/cfg/earley"
	"github.com/npillmayer/chartparse/cfg/sppf"
)

// Output formats for parse results.
const (
	formatTree     = "tree"     // parse trees, rendered by pterm
	formatBrackets = "brackets" // parse trees in bracket notation, one per line
	formatDot      = "dot"      // parse forest in GraphViz format
	formatChart    = "chart"    // the parser's chart
)

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse SENTENCE…",
		Short: "Parse a sentence and print the results",
		Long: `Parse a sentence and print the results. All arguments are joined to form
the sentence. Output is the list of parse trees, the parse forest in
GraphViz format, or the chart of the parser.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.grammar()
			if err != nil {
				return err
			}
			sentence := strings.Join(args, " ")
			p, accept, err := a.parse(g, sentence)
			if err != nil {
				return err
			}
			if err = a.report(cmd.OutOrStdout(), p, accept); err != nil {
				return fmt.Errorf("%q: %w", sentence, err)
			}
			return nil
		},
	}
	cmd.Flags().String("format", formatTree, "output format [tree|brackets|dot|chart]")
	cmd.Flags().Int("max", 10, "maximum number of parse trees to print, 0 for all")
	return cmd
}

// parse runs an Earley parser for a sentence.
func (a *app) parse(g *cfg.Grammar, sentence string) (*earley.Parser, bool, error) {
	tokenizer, err := a.tokenizer(sentence)
	if err != nil {
		return nil, false, err
	}
	p := earley.NewParser(g, earley.GenerateTree(true))
	accept, err := p.ParseTokens(tokenizer)
	tracer().Infof("input %q accepted = %v", sentence, accept)
	return p, accept, err
}

// report prints the result of a parse in the configured format. If the input
// has not been accepted, earley.ErrNoParse is returned. The chart is printed
// in any case.
func (a *app) report(w io.Writer, p *earley.Parser, accept bool) error {
	format := a.conf.GetString("format")
	if format == formatChart {
		p.Chart().WriteTable(w)
	}
	if !accept {
		return earley.ErrNoParse
	}
	forest, err := p.Forest()
	if err != nil {
		return err
	}
	switch format {
	case formatChart:
	case formatDot:
		return forest.ToGraphViz(w)
	case formatBrackets:
		for _, t := range forest.Derivations(a.conf.GetInt("max")) {
			fmt.Fprintln(w, t.String())
		}
	case formatTree, "":
		trees := forest.Derivations(a.conf.GetInt("max"))
		if forest.Ambiguous() {
			pterm.Info.Printf("sentence is ambiguous, showing %d parse trees\n", len(trees))
		}
		for _, t := range trees {
			if err := renderTree(t); err != nil {
				return err
			}
		}
	default:
		return errors.New("unknown output format " + format)
	}
	return nil
}

// renderTree prints a parse tree on the terminal.
func renderTree(t *sppf.Tree) error {
	root := pterm.NewTreeFromLeveledList(leveledTree(t, pterm.LeveledList{}, 0))
	return pterm.DefaultTree.WithRoot(root).Render()
}

func leveledTree(t *sppf.Tree, ll pterm.LeveledList, level int) pterm.LeveledList {
	text := t.Symbol.Name
	if t.Rule == nil {
		text = fmt.Sprintf("%q", t.Lexeme)
	} else if len(t.Children) == 0 {
		text += " ε"
	}
	ll = append(ll, pterm.LeveledListItem{Level: level, Text: text})
	for _, ch := range t.Children {
		ll = leveledTree(ch, ll, level+1)
	}
	return ll
}
