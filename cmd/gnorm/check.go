package main

import (
	"fmt"
	"strings"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/internal/report"
	"github.com/spf13/cobra"
)

var checkFlags = struct {
	strict *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "check [FILE...]",
		Short: "Show the conflicts of grammars as they are written",
		Long: `check finds every pair of alternatives of a rule that a parser could not
choose between without backtracking. With --strict, any overlap at all of
the terminals two alternatives can start with is a conflict (LL(1)).`,
		Example: `  gnorm check expr.txt`,
		RunE:    runCheck,
	}
	checkFlags.strict = cmd.Flags().Bool("strict", false, "report every LL(1) conflict, not just backtracking ones")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyConfig(cfg); err != nil {
		return err
	}

	srcs, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	var sb strings.Builder
	conflicted := 0
	for i, src := range srcs {
		g, err := grammar.Analyze(src.text)
		if err != nil {
			return fmt.Errorf("%s: %w", src.name, err)
		}

		var cs []grammar.Conflict
		if *checkFlags.strict {
			cs = grammar.LL1Conflicts(g.Rules())
		} else {
			cs = grammar.BacktrackConflicts(g.Rules())
		}
		if len(cs) > 0 {
			conflicted++
		}

		if i > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString("# " + src.name + "\n")
		sb.WriteString(report.Conflicts(cs, cfg.Output.Width))
		sb.WriteRune('\n')
	}

	fmt.Fprint(cmd.OutOrStdout(), sb.String())

	if conflicted > 0 {
		return fmt.Errorf("%d of %d grammar(s) have conflicts", conflicted, len(srcs))
	}
	return nil
}
