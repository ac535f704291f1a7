package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/gnorm/grammar"
	"github.com/dekarrin/gnorm/internal/config"
	"github.com/dekarrin/gnorm/internal/report"
	"github.com/dekarrin/gnorm/server/gnormsvc"
	"github.com/dekarrin/rezi"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var normalizeFlags = struct {
	backtracking *bool
	format       *string
	output       *string
	db           *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "normalize [FILE...]",
		Short: "Normalize grammars and print the results",
		Example: `  gnorm normalize expr.txt
  gnorm normalize -b -f table expr.txt stmt.txt
  cat expr.txt | gnorm normalize --db sqlite:./data`,
		RunE: runNormalize,
	}
	normalizeFlags.backtracking = cmd.Flags().BoolP("backtracking", "b", false, "also eliminate backtracking")
	normalizeFlags.format = cmd.Flags().StringP("format", "f", "", "output format [text|table|binary] (default from config)")
	normalizeFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	normalizeFlags.db = dbFlag(cmd.Flags(), "store results in the given DB (default from config)")
	rootCmd.AddCommand(cmd)
}

type normalized struct {
	g      grammar.Grammar
	cached bool
	id     string
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("backtracking") {
		cfg.Engine.EliminateBacktracking = *normalizeFlags.backtracking
	}
	if *normalizeFlags.format != "" {
		cfg.Output.Format = *normalizeFlags.format
	}
	if *normalizeFlags.db != "" {
		cfg.Store.DB = *normalizeFlags.db
	}
	if err := applyConfig(cfg); err != nil {
		return err
	}

	format := cfg.Format()
	if format == config.FormatBinary && len(args) > 1 {
		return fmt.Errorf("binary output holds only one grammar but %d files were given", len(args))
	}

	srcs, err := readSources(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	var svc *gnormsvc.Service
	if dbCfg := cfg.DB(); dbCfg.Enabled() {
		st, err := dbCfg.Open()
		if err != nil {
			return err
		}
		defer st.Close()
		svc = &gnormsvc.Service{DB: st}
	}

	opts := cfg.Options()
	results := make([]normalized, len(srcs))

	eg, ctx := errgroup.WithContext(cmd.Context())
	for i := range srcs {
		i := i
		eg.Go(func() error {
			src := srcs[i]
			tracer().Debugf("normalizing %s", src.name)

			if svc != nil {
				r, cached, err := svc.Normalize(ctx, src.text, opts)
				if err != nil {
					return fmt.Errorf("%s: %w", src.name, err)
				}
				results[i] = normalized{g: r.Grammar, cached: cached, id: r.ID.String()}
				return nil
			}

			g, err := grammar.Normalize(src.text, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", src.name, err)
			}
			results[i] = normalized{g: g}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i := range results {
		if results[i].cached {
			infof("%s: using stored result %s", srcs[i].name, results[i].id)
		} else if results[i].id != "" {
			infof("%s: stored as %s", srcs[i].name, results[i].id)
		}
	}

	var out io.Writer = cmd.OutOrStdout()
	if *normalizeFlags.output != "" {
		f, err := os.Create(*normalizeFlags.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if format == config.FormatBinary {
		_, err := out.Write(rezi.EncBinary(results[0].g))
		return err
	}

	var sb strings.Builder
	for i := range results {
		if len(results) > 1 {
			if i > 0 {
				sb.WriteRune('\n')
			}
			sb.WriteString("# " + srcs[i].name + "\n")
		}

		if format == config.FormatTable {
			sb.WriteString(report.Table(results[i].g, cfg.Output.Width, *cfg.Output.ShowSets))
		} else {
			sb.WriteString(report.Text(results[i].g))
		}
		sb.WriteRune('\n')
	}

	_, err = io.WriteString(out, sb.String())
	return err
}
