package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/npillmayer/chartparse/cfg"
	"github.com/npillmayer/chartparse/cfg/earley"
)

func (a *app) newReplCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactively parse sentences, one per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.grammar()
			if err != nil {
				return err
			}
			repl, err := readline.New("earley> ")
			if err != nil {
				return err
			}
			defer repl.Close()
			pterm.Info.Printf("Grammar %s loaded, quit with :quit or <ctrl>D\n", g.Name)
			intp := &Intp{app: a, grammar: g, out: cmd.OutOrStdout()}
			intp.REPL(repl)
			return nil
		},
	}
	cmd.Flags().String("format", formatTree, "output format [tree|brackets|dot|chart]")
	cmd.Flags().Int("max", 10, "maximum number of parse trees to print, 0 for all")
	return cmd
}

// Intp is our interpreter object. It remembers the last sentence parsed, so
// that its chart or forest may be inspected.
type Intp struct {
	app     *app
	grammar *cfg.Grammar
	parser  *earley.Parser
	accept  bool
	last    string
	out     io.Writer
}

// REPL starts interactive mode.
func (intp *Intp) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
		}
		if quit {
			break
		}
	}
	fmt.Fprintln(intp.out, "Good bye!")
}

var replHelp = `:chart    print the chart of the last sentence
:dot      print the parse forest of the last sentence in GraphViz format
:grammar  list the rules of the grammar
:help     show this message
:quit     leave the REPL
Any other input is parsed as a sentence.`

var errNothingParsed = errors.New("no sentence parsed yet")

// Eval evaluates a line of input. Lines starting with a colon are commands,
// every other line is parsed as a sentence.
func (intp *Intp) Eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return false, nil
	}
	if !strings.HasPrefix(line, ":") {
		p, accept, err := intp.app.parse(intp.grammar, line)
		if err != nil {
			return false, err
		}
		intp.parser, intp.accept, intp.last = p, accept, line
		if err = intp.app.report(intp.out, p, accept); err != nil {
			return false, fmt.Errorf("%q: %w", line, err)
		}
		return false, nil
	}
	switch cmd := strings.Fields(line)[0]; cmd {
	case ":q", ":quit", ":exit":
		return true, nil
	case ":help":
		fmt.Fprintln(intp.out, replHelp)
	case ":grammar":
		fmt.Fprint(intp.out, intp.grammar.String())
	case ":chart":
		if intp.parser == nil {
			return false, errNothingParsed
		}
		intp.parser.Chart().WriteTable(intp.out)
	case ":dot":
		if intp.parser == nil {
			return false, errNothingParsed
		}
		forest, err := intp.parser.Forest()
		if err != nil {
			return false, fmt.Errorf("%q: %w", intp.last, err)
		}
		return false, forest.ToGraphViz(intp.out)
	default:
		return false, fmt.Errorf("unknown command %s, try :help", cmd)
	}
	return false, nil
}
