package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/guttosm/tradeledger/config"
	"github.com/guttosm/tradeledger/internal/app"
)

// apiRouter builds the production router with the ledger store disabled.
func apiRouter(t *testing.T) (http.Handler, func()) {
	t.Helper()
	old := config.AppConfig
	t.Cleanup(func() { config.AppConfig = old })
	config.AppConfig = config.Config{Server: config.ServerConfig{Port: "0", MaxUploadMB: 1}}

	router, cleanup, err := app.InitializeApp()
	if err != nil {
		t.Fatalf("InitializeApp: %v", err)
	}
	return router, cleanup
}

// localURL turns a wildcard listen address into a loopback URL.
func localURL(t *testing.T, addr, path string) string {
	t.Helper()
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("addr %q: %v", addr, err)
	}
	return "http://127.0.0.1:" + port + path
}

func TestStartServer_ServesAPIUntilShutdown(t *testing.T) {
	router, cleanup := apiRouter(t)
	var cleaned atomic.Int32

	srv, err := startServer(router, "0")
	if err != nil {
		t.Fatalf("startServer: %v", err)
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(localURL(t, srv.Addr, "/healthz"))
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("healthz status=%d request id=%q", resp.StatusCode, resp.Header.Get("X-Request-ID"))
	}

	// Without a ledger store, source=ledger is missing input.
	resp, err = client.Get(localURL(t, srv.Addr, "/api/v1/reports/full?source=ledger"))
	if err != nil {
		t.Fatalf("full report: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("full report status=%d", resp.StatusCode)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- gracefulShutdown(ctx, srv, func() {
			cleaned.Add(1)
			cleanup()
		})
	}()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("gracefulShutdown: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("shutdown did not finish")
	}
	if cleaned.Load() != 1 {
		t.Fatalf("cleanup ran %d times", cleaned.Load())
	}
	if _, err := client.Get(localURL(t, srv.Addr, "/healthz")); err == nil {
		t.Fatalf("server still answering after shutdown")
	}
}

func TestRunServer_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	_, port, _ := net.SplitHostPort(ln.Addr().String())

	router, cleanup := apiRouter(t)
	var cleaned atomic.Int32
	err = runServer(context.Background(), router, port, func() {
		cleaned.Add(1)
		cleanup()
	})
	if err == nil {
		t.Fatalf("expected bind error on busy port %s", port)
	}
	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		t.Fatalf("err=%v, want a wrapped *net.OpError", err)
	}
	if cleaned.Load() != 1 {
		t.Fatalf("cleanup ran %d times", cleaned.Load())
	}
}

func TestGracefulShutdown_SignalPath(t *testing.T) {
	srv, err := startServer(http.NotFoundHandler(), "0")
	if err != nil {
		t.Fatalf("startServer: %v", err)
	}

	cleaned := make(chan struct{})
	go func() {
		_ = gracefulShutdown(context.Background(), srv, func() { close(cleaned) })
	}()

	// Give the goroutine time to set up signal notifications
	time.Sleep(100 * time.Millisecond)

	p, _ := os.FindProcess(os.Getpid())
	_ = p.Signal(syscall.SIGTERM)

	select {
	case <-cleaned:
	case <-time.After(2 * time.Second):
		t.Fatalf("cleanup not called after SIGTERM")
	}
}
