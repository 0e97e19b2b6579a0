// Package healthcheck exposes a minimal liveness endpoint for container
// orchestrators. Disabled unless a listen address is configured.
package healthcheck

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// NormalizeListen turns a bare port ("8080") into a listen address (":8080").
func NormalizeListen(listen string) string {
	listen = strings.TrimSpace(listen)
	if listen == "" {
		return ""
	}
	if !strings.Contains(listen, ":") {
		return ":" + listen
	}
	return listen
}

// StartServer serves GET /healthz on addr until the server is shut down or
// ctx is cancelled.
func StartServer(ctx context.Context, logger *slog.Logger, addr, component string) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("health_server_listening", "addr", addr, "component", component)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Warn("health_server_error", "addr", addr, "error", err.Error())
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	return srv, nil
}
