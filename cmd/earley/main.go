package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/gconf"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/chartparse/cfg"
	"github.com/npillmayer/chartparse/cfg/grammarfile"
	"github.com/npillmayer/chartparse/cfg/scanner"
	"github.com/npillmayer/chartparse/cfg/scanner/lexmach"
)

func main() {
	initDisplay()
	if err := newRootCmd().Execute(); err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// app holds the configuration shared by all sub-commands.
type app struct {
	conf      *viper.Viper
	lexerOnce sync.Once
	lexer     *lexmach.WordLexer
	lexerErr  error
}

func newApp() *app {
	return &app{conf: viper.New()}
}

func newRootCmd() *cobra.Command {
	a := newApp()
	root := &cobra.Command{
		Use:           "earley",
		Short:         "Parse sentences with an Earley chart parser",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	pf := root.PersistentFlags()
	pf.StringP("grammar", "g", "", "grammar file (.json, .yaml, .yml or .ebnf)")
	pf.String("start", "", "start symbol, overriding the one of the grammar")
	pf.String("tokenizer", "text", "tokenizer for input sentences [text|lexmachine]")
	pf.String("trace", "Error", "trace level [Debug|Info|Error]")
	pf.String("config", "", "configuration file (default is earley.yaml)")
	root.AddCommand(a.newCheckCmd(), a.newParseCmd(), a.newReplCmd())
	return root
}

// setup reads the configuration and initializes tracing. Configuration
// values are taken from flags, EARLEY_* environment variables and the
// configuration file, in that order.
func (a *app) setup(cmd *cobra.Command) error {
	v := a.conf
	v.SetEnvPrefix("EARLEY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("earley")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/earley")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("cannot read configuration: %w", err)
		}
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	gconf.Initialize(&config{v: v})
	tracing.SetTraceSelector(tracing.SelectorForAdapter(func() tracing.Trace {
		return gtrace.SyntaxTracer
	}))
	tracer().SetTraceLevel(tracing.TraceLevelFromString(v.GetString("trace")))
	if used := v.ConfigFileUsed(); used != "" {
		tracer().Infof("configuration read from %s", used)
	}
	return nil
}

// grammar loads the grammar file given by flag, environment or configuration.
func (a *app) grammar() (*cfg.Grammar, error) {
	path := a.conf.GetString("grammar")
	if path == "" {
		return nil, errors.New("no grammar file given, please use flag --grammar")
	}
	var opts []grammarfile.Option
	if start := a.conf.GetString("start"); start != "" {
		opts = append(opts, grammarfile.Start(start))
	}
	g, err := grammarfile.Load(path, opts...)
	if err != nil {
		return nil, err
	}
	tracer().Infof("loaded grammar %s with %d rules", g.Name, g.Size())
	return g, nil
}

// tokenizer creates a tokenizer for a sentence.
func (a *app) tokenizer(sentence string) (scanner.Tokenizer, error) {
	switch name := a.conf.GetString("tokenizer"); name {
	case "", "text":
		return scanner.WordTokenizer("input", strings.NewReader(sentence)), nil
	case "lexmachine", "lexmach":
		a.lexerOnce.Do(func() {
			a.lexer, a.lexerErr = lexmach.NewWordLexer()
		})
		if a.lexerErr != nil {
			return nil, a.lexerErr
		}
		sc, err := a.lexer.Scanner(sentence)
		if err != nil {
			return nil, err
		}
		return sc, nil
	default:
		return nil, fmt.Errorf("unknown tokenizer %q", name)
	}
}

// --- Configuration adapter -------------------------------------------------

// config makes the viper configuration available to packages using
// schuko/gconf, e.g. for flag "panic-on-parser-stuck".
type config struct {
	v *viper.Viper
}

var _ schuko.Configuration = (*config)(nil)

var globalTracers = []string{
	"tracingequations", "tracinginterpreter", "tracingsyntax", "tracingcommands",
	"tracinggraphics", "tracingscripting", "tracingcore", "tracingengine",
}

func (c *config) InitDefaults() {
	c.v.SetDefault("tracing", "go")
	for _, key := range globalTracers {
		c.v.SetDefault(key, "Error")
	}
	c.v.SetDefault("panic-on-parser-stuck", false)
	c.v.SetDefault("format", "tree")
	c.v.SetDefault("max", 10)
}

func (c *config) IsSet(key string) bool       { return c.v.IsSet(key) }
func (c *config) GetString(key string) string { return c.v.GetString(key) }
func (c *config) GetInt(key string) int       { return c.v.GetInt(key) }
func (c *config) GetBool(key string) bool     { return c.v.GetBool(key) }
func (c *config) IsInteractive() bool         { return false }
