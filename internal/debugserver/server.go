// Package debugserver exposes metrics and the last rendered graph over
// HTTP for local inspection.
package debugserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// GraphSource supplies the most recent PNG, or nil before the first render.
type GraphSource interface {
	LastPNG() []byte
}

// NewRouter wires the debug routes:
//
//	GET /metrics    Prometheus exposition
//	GET /graph.png  last rendered graph, 404 before the first render
//	GET /healthz    liveness
func NewRouter(src GraphSource) *mux.Router {
	router := mux.NewRouter()
	router.Use(logging)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/graph.png", func(w http.ResponseWriter, r *http.Request) {
		data := src.LastPNG()
		if data == nil {
			http.Error(w, "no graph rendered yet", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(data)
	}).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	}).Methods(http.MethodGet)

	return router
}

func logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("debug request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(start))
	})
}

type Server struct {
	srv *http.Server
	ln  net.Listener
}

// Start listens on addr and serves in the background.
func Start(addr string, src GraphSource) (*Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	s := &Server{
		srv: &http.Server{
			Handler:           NewRouter(src),
			ReadHeaderTimeout: 5 * time.Second,
		},
		ln: ln,
	}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("debug server stopped", "error", err)
		}
	}()
	slog.Info("debug server listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr is the bound address, useful when addr had port 0.
func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
