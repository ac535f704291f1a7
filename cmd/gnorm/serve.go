package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/dekarrin/gnorm/server"
	"github.com/spf13/cobra"
)

var serveFlags = struct {
	listen *string
	db     *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Start the HTTP REST server",
		Example: `  gnorm serve -l :8080 --db sqlite:./data`,
		Args:    cobra.NoArgs,
		RunE:    runServe,
	}
	serveFlags.listen = cmd.Flags().StringP("listen", "l", "", "address to listen on (default from config)")
	serveFlags.db = dbFlag(cmd.Flags(), "store results in the given DB (default in memory)")
	rootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if *serveFlags.listen != "" {
		cfg.Server.Listen = *serveFlags.listen
	}
	if *serveFlags.db != "" {
		cfg.Store.DB = *serveFlags.db
	}
	if err := applyConfig(cfg); err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	infof("Listening on %s", cfg.Server.Listen)
	return srv.ServeForever(ctx)
}
