package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/asisr38/scrapper/internal/analyze"
	"github.com/asisr38/scrapper/internal/dataset"
	"github.com/asisr38/scrapper/internal/logger"
	"github.com/asisr38/scrapper/internal/scraper"
	"github.com/asisr38/scrapper/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if servePort > 0 {
			cfg.HTTPPort = servePort
		}

		sources, err := cfg.Sources()
		if err != nil {
			return fmt.Errorf("datasets: %w", err)
		}
		adapter, budget, closeRemote, err := remote(ctx)
		if err != nil {
			return err
		}
		defer closeRemote()

		fetcher := scraper.NewFetcher(cfg.FetchTimeout, cfg.UserAgent)
		srv := server.New(server.Deps{
			Sources:        sources,
			Corpus:         dataset.NewLoader(cfg.FetchTimeout, 0),
			Classifier:     analyze.New(fetcher, adapter),
			Budget:         budget,
			RemoteProvider: adapter.Provider(),
			CacheTTL:       cfg.CacheTTL,
		})
		defer srv.Close()

		httpServer := &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:      srv.Router(),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: cfg.FetchTimeout + cfg.RemoteTimeout + 15*time.Second,
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

		errc := make(chan error, 1)
		go func() {
			logger.Info("starting HTTP server", "addr", httpServer.Addr, "remote_provider", adapter.Provider())
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
		}()

		select {
		case err := <-errc:
			return fmt.Errorf("http server: %w", err)
		case <-quit:
			logger.Info("received shutdown signal")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("error during shutdown", "error", err)
		}
		logger.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default HTTP_PORT)")
	rootCmd.AddCommand(serveCmd)
}
