package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oxygene76/celestial-lookup/pkg/lookup"
	"github.com/oxygene76/celestial-lookup/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve lookups over HTTP",
	Long: `Serve the lookup API:

  GET /healthz
  GET /api/bodies[?kind=moon]
  GET /api/bodies/:name
  GET /api/bodies/:name/quantities/:key
  GET /api/compare?bodies=Earth,Mars&quantity=mass
  GET /metrics`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func addServeFlags() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = config.Server.Addr
	}

	metrics, err := server.NewMetrics(nil)
	if err != nil {
		return err
	}
	pipeline, err := newPipeline(lookup.WithObserver(metrics))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(pipeline, metrics, logger.With("component", "server")).Run(ctx, addr)
}
