package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atinylittleshell/tabcomplete/internal/completion"
	"github.com/atinylittleshell/tabcomplete/internal/config"
	"github.com/atinylittleshell/tabcomplete/internal/core"
	"github.com/atinylittleshell/tabcomplete/internal/grammar"
	"github.com/atinylittleshell/tabcomplete/internal/render"
	"github.com/atinylittleshell/tabcomplete/internal/styles"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/expand"
)

var BUILD_VERSION = "dev"

// app carries what the subcommands share. Tests fill in logger, stdin and
// stdinIsTerminal to avoid touching the real process state.
type app struct {
	cfg             *config.Config
	logger          *zap.Logger
	grammarPath     string
	stdin           io.Reader
	stdinIsTerminal func() bool
}

func main() {
	a := &app{
		cfg:   config.FromEnviron(expand.ListEnviron(os.Environ()...)),
		stdin: os.Stdin,
		stdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}

	err := newRootCommand(a).Execute()
	if a.logger != nil {
		a.logger.Sync() // Flush any buffered log entries
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, styles.ERROR(err.Error()))
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "tabcomplete",
		Short:         "Shell tab completion for action/parameter command grammars",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.logger != nil {
				return nil
			}
			logger, err := initializeLogger(a.cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			a.logger.Debug("-------- new tabcomplete invocation --------", zap.Strings("args", os.Args))
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&a.grammarPath, "grammar", "g", "",
		fmt.Sprintf("grammar file to complete against (default $%s, then %s, then the built-in grammar)",
			config.EnvGrammar, "~/.tabcomplete/grammar.yaml"))

	root.AddCommand(
		newCompleteCommand(a),
		newDescribeCommand(a),
		newVersionCommand(),
	)

	return root
}

func newCompleteCommand(a *app) *cobra.Command {
	var (
		word      string
		position  int
		delimiter string
		quote     bool
	)

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Print the completions for a partially typed command line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if delimiter != "lines" && delimiter != "space" {
				return fmt.Errorf("invalid delimiter %q: must be \"lines\" or \"space\"", delimiter)
			}

			if !cmd.Flags().Changed("word") && !a.stdinIsTerminal() {
				line, err := readLine(a.stdin)
				if err != nil {
					return fmt.Errorf("failed to read command line from stdin: %w", err)
				}
				word = line
			}

			g, err := a.loadGrammar()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("position") {
				position = len([]rune(word))
			}

			completer := completion.NewCompleter(g, a.logger)
			completions := completer.GetCompletions(word, position)
			if quote {
				for i, c := range completions {
					completions[i] = completion.QuoteCandidate(c)
				}
			}

			return writeCompletions(cmd.OutOrStdout(), completions, delimiter)
		},
	}

	cmd.Flags().StringVarP(&word, "word", "w", "", "the command line to complete")
	cmd.Flags().IntVarP(&position, "position", "n", 0, "caret position in the command line (default: end of --word)")
	cmd.Flags().StringVar(&delimiter, "delimiter", "lines", `separate completions with "lines" or "space"`)
	cmd.Flags().BoolVar(&quote, "quote", false, "shell-quote completions that contain special characters")

	return cmd
}

func newDescribeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [action]",
		Short: "Describe the grammar, or one action of it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.loadGrammar()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				fmt.Fprint(cmd.OutOrStdout(), render.Grammar(g))
				return nil
			}

			action, ok := g.Action(args[0])
			if !ok {
				return unknownActionError(g, args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Action(g, action))
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), BUILD_VERSION)
			return nil
		},
	}
}

// loadGrammar picks the grammar in order of precedence: --grammar, the
// configured grammar file, the default grammar file if present, and finally
// the built-in grammar.
func (a *app) loadGrammar() (*grammar.Grammar, error) {
	path := a.grammarPath
	if path == "" {
		path = a.cfg.GrammarFile
	}
	if path == "" {
		defaultFile, err := core.GrammarFile()
		if err != nil {
			a.logger.Warn("no data directory, skipping default grammar file", zap.Error(err))
		} else if stat, err := os.Stat(defaultFile); err == nil && stat.Size() > 0 {
			path = defaultFile
		}
	}

	if path == "" {
		a.logger.Debug("using built-in grammar")
		return grammar.Default(), nil
	}

	g, err := grammar.LoadFile(path)
	if err != nil {
		a.logger.Error("failed to load grammar", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	a.logger.Debug("loaded grammar", zap.String("path", path), zap.Int("actions", len(g.Actions)))
	return g, nil
}

func unknownActionError(g *grammar.Grammar, name string) error {
	err := fmt.Errorf("unknown action %q", name)
	if matches := fuzzy.Find(name, g.ActionNames()); len(matches) > 0 {
		return fmt.Errorf("%w, did you mean %q?", err, matches[0].Str)
	}
	return err
}

func readLine(r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(content), "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func writeCompletions(w io.Writer, completions []string, delimiter string) error {
	if len(completions) == 0 {
		return nil
	}

	sep := "\n"
	if delimiter == "space" {
		sep = " "
	}
	_, err := fmt.Fprintln(w, strings.Join(completions, sep))
	return err
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel := cfg.ZapLevel()
	if BUILD_VERSION == "dev" {
		logLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logFile := cfg.LogFile
	if logFile == "" {
		defaultFile, err := core.LogFile()
		if err != nil {
			// Completion must keep working without a writable home directory.
			return zap.NewNop(), nil
		}
		logFile = defaultFile
	}

	if cfg.CleanLogFile {
		if err := os.Remove(logFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	// Stdout belongs to the shell reading completions, so logs only go to file.
	// Use `tail -f ~/.tabcomplete/tabcomplete.log` to monitor logs in real-time
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		logFile,
	}

	return loggerConfig.Build()
}
