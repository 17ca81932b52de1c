package main

//
//  @title           tradeledger API
//  @version         1.0
//  @description     Client, daily, management and anomaly reports over a trade ledger.
//  @termsOfService  https://github.com/guttosm/tradeledger
//  @contact.name    API Support
//  @contact.url     https://github.com/guttosm/tradeledger
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        reports
//  @tag.description Ledger reports computed from an uploaded file or the ingested ledger store
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/guttosm/tradeledger/docs" // swagger docs
	"github.com/guttosm/tradeledger/internal/logger"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 10 * time.Second

// startServer binds port and serves router in the background.
//
// Binding happens before returning, so a port already in use is reported to
// the caller instead of killing the process later. Port "0" picks a free
// port; the returned server's Addr holds the bound address.
func startServer(router http.Handler, port string) (*http.Server, error) {
	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, fmt.Errorf("listen on port %s: %w", port, err)
	}
	server := &http.Server{
		Addr:              ln.Addr().String(),
		Handler:           router,
		ReadTimeout:       60 * time.Second, // uploads can be large
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("addr", server.Addr).Msg("server starting")
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Error().Err(err).Msg("server stopped")
		}
	}()

	return server, nil
}

// gracefulShutdown blocks until ctx is cancelled or SIGINT/SIGTERM arrives,
// then drains server within shutdownTimeout and runs cleanup. cleanup runs
// even when draining fails.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) error {
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-sigCtx.Done()
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	cleanup()
	if err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	logger.L().Info().Msg("server exited gracefully")
	return nil
}

// runServer serves router on port until ctx ends or the process is
// signalled. cleanup releases what the router depends on and runs exactly once.
func runServer(ctx context.Context, router http.Handler, port string, cleanup func()) error {
	server, err := startServer(router, port)
	if err != nil {
		cleanup()
		return err
	}
	return gracefulShutdown(ctx, server, cleanup)
}

// main is the entry point of the tradeledger application.
//
// Commands:
//   - serve:   Starts the REST API exposing the ledger reports.
//   - ingest:  Lands every .csv/.xlsx ledger of a directory into the Postgres ledger store.
//   - migrate: Applies the database migrations.
//   - report:  Computes one report from a file or the ledger store and prints it as JSON.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.L().Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
