package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/breaktime/internal/platform/web"
	"github.com/vovakirdan/breaktime/internal/storage"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Serve the scoreboard over HTTP",
	Long: `Start a read-only HTTP server exposing scores and statistics as JSON.

Endpoints:
  GET /healthz
  GET /api/games
  GET /api/stats
  GET /api/games/{id}/scores?limit=10
  GET /api/games/{id}/stats

Examples:
  breaktime web
  breaktime web --http 127.0.0.1:9000 --db ./scores.db`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", web.DefaultAddr, "HTTP server address (host:port)")
}

func runWeb(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := web.NewServer(flagHTTPAddr, store, logger.WithPrefix("http"))
	fmt.Printf("Serving scores on http://%s\n", server.Addr())

	if err := server.ListenAndServe(ctx); err != nil {
		logger.Error("http server stopped", "err", err)
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
