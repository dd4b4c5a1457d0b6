package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/epuerta/repopatch/internal/config"
	"github.com/epuerta/repopatch/internal/logging"
)

// Server is the HTTP boundary of the backend. It owns no request state:
// every handler builds its entities per request and discards them after the
// response is written.
type Server struct {
	cfg    *config.Config
	log    logging.Logger
	server *http.Server
}

// New creates a server from an explicit configuration value. A nil logger
// disables logging.
func New(cfg *config.Config, log logging.Logger) *Server {
	if log == nil {
		log = logging.NewNilLogger()
	}
	return &Server{cfg: cfg, log: log}
}

// Handler assembles the route table and middleware. It is exposed so tests
// can exercise the server without binding a socket.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/directory", s.handleDirectory)
	mux.HandleFunc("/api/file", s.handleFile)
	mux.HandleFunc("/api/files", s.handleFiles)
	mux.HandleFunc("/api/apply_patch", s.handleApplyPatch)
	mux.HandleFunc("/api/check_writable", s.handleCheckWritable)
	mux.HandleFunc("/api/connect", s.handleConnect)
	mux.HandleFunc("/", s.handleAsset)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "Accept", "ngrok-skip-browser-warning"},
		AllowCredentials: true,
		MaxAge:           3600,
	})

	return c.Handler(mux)
}

// Start runs the server until it is shut down or fails. Patch application
// has no timeout contract, so only header reads are bounded.
func (s *Server) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.cfg.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	var err error
	if s.cfg.UseHTTPS {
		s.log.Log("server: listening on https://%s", addr)
		err = s.server.ListenAndServeTLS(s.cfg.CertFile, s.cfg.KeyFile)
	} else {
		s.log.Log("server: listening on http://%s", addr)
		err = s.server.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, letting in-flight requests finish.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
