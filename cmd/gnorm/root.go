package main

import (
	"fmt"
	"os"

	"github.com/dekarrin/gnorm/internal/config"
	"github.com/npillmayer/schuko/tracing"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// traceKeys are the tracers of every package that traces.
var traceKeys = []string{"gnorm.grammar", "gnorm.store", "gnorm.server", "gnorm.cli"}

func tracer() tracing.Trace {
	return tracing.Select("gnorm.cli")
}

var rootFlags = struct {
	config *string
	trace  *string
}{}

var rootCmd = &cobra.Command{
	Use:   "gnorm",
	Short: "Normalize grammars for recursive-descent parsing",
	Long: `gnorm rewrites context-free grammars so that they:
- have no left recursion.
- have no ε alternatives except where needed.
- optionally, can always be parsed without backtracking.
It also computes FIRST and FOLLOW sets and reports LL(1) conflicts.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default "+config.DefaultPath+" if present)")
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "", "trace level [Debug|Info|Error] (default from config)")

	initDisplay()
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, pterm.Error.Sprint(err.Error()))
		return err
	}
	return nil
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " INFO ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// loadConfig reads the config for a command and applies the root flags to it.
// The returned config has not yet been validated, as subcommands apply their
// own flags first.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*rootFlags.config)
	if err != nil {
		return cfg, err
	}

	if *rootFlags.trace != "" {
		cfg.Trace.Level = *rootFlags.trace
	}

	return cfg, nil
}

// applyConfig validates cfg and sets up tracing from it.
func applyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	level := tracing.TraceLevelFromString(cfg.Trace.Level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Debugf("trace level is %s", cfg.Trace.Level)

	return nil
}

// infof shows an informational message on stderr so it never mixes with
// output meant for files or pipes.
func infof(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, pterm.Info.Sprintf(format, a...))
}

// dbFlag adds the --db flag to fs. An empty value means the store from the
// config is used.
func dbFlag(fs *pflag.FlagSet, usage string) *string {
	return fs.String("db", "", usage+"; a connection string such as inmem or sqlite:./data")
}
