package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/gnorm"
	"github.com/spf13/cobra"
)

var shellFlags = struct {
	direct *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "shell [FILE]",
		Short: "Start an interactive grammar shell",
		Long: `shell reads grammar rules a line at a time and normalizes them on request.
Type HELP once in the shell for its commands, and QUIT to leave.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runShell,
	}
	shellFlags.direct = cmd.Flags().BoolP("direct", "d", false, "force reading directly from stdin instead of going through GNU readline where possible")
	rootCmd.AddCommand(cmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyConfig(cfg); err != nil {
		return err
	}

	opts := gnorm.Options{
		Grammar:  cfg.Options(),
		Width:    cfg.Output.Width,
		ShowSets: *cfg.Output.ShowSets,
	}
	if home, err := os.UserHomeDir(); err == nil {
		opts.HistoryFile = filepath.Join(home, ".gnorm_history")
	}

	eng, err := gnorm.New(nil, nil, opts, *shellFlags.direct)
	if err != nil {
		return fmt.Errorf("initializing shell: %w", err)
	}
	defer eng.Close()

	if len(args) > 0 {
		if err := eng.Load(args[0]); err != nil {
			return err
		}
	}

	return eng.RunUntilQuit()
}
