package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/NYTimes/gziphandler"
	"github.com/levenlabs/go-lflag"
	"github.com/rs/cors"

	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/engine"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/log"
	"github.com/Zhihong0321/Solar-Calculator-sub002/pkg/refdata"
)

// Server handles the HTTP API around the quotation engine. It orchestrates
// reference-data snapshots, the engine and per-session preview bookkeeping.
type Server struct {
	source   refdata.Source
	engine   *engine.Engine
	sessions *sessionStore

	listenAddr  string
	httpServer  *http.Server
	serverName  string
	corsOrigins []string
}

// Configured initializes the Server with dependencies.
// It uses lflag to register command-line flags for configuration.
func Configured(src refdata.Source) *Server {
	srv := &Server{
		source:     src,
		engine:     engine.NewEngine(),
		serverName: "solarquote",
	}
	revision := os.Getenv("K_REVISION")
	if revision != "" {
		srv.serverName = revision
	}

	// get the port from PORT when running in cloud run
	port := os.Getenv("PORT")
	if port == "" {
		// otherwise default to 8080
		port = "8080"
	}

	listenAddr := lflag.String("http-listen", ":"+port, "HTTP server listen address")
	corsOrigins := lflag.String("cors-origins", "", "comma-delimited list of origins allowed to call the API (e.g. the preview UI)")
	sessionTTL := lflag.Duration("session-ttl", time.Hour, "Duration an idle preview session keeps its baseline")

	lflag.Do(func() {
		srv.listenAddr = *listenAddr
		if *corsOrigins != "" {
			srv.corsOrigins = strings.Split(*corsOrigins, ",")
			for i, o := range srv.corsOrigins {
				srv.corsOrigins[i] = strings.TrimSpace(o)
			}
		}
		srv.sessions = newSessionStore(*sessionTTL)
	})

	return srv
}

func (s *Server) setupHandler() http.Handler {
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("POST /api/quote", s.handleQuote)
	apiMux.HandleFunc("POST /api/quote/preview", s.handleQuotePreview)
	apiMux.HandleFunc("GET /api/tariffs", s.handleListTariffs)
	apiMux.HandleFunc("GET /api/packages", s.handleListPackages)

	mux := http.NewServeMux()
	mux.Handle("/api/", apiMux)
	mux.HandleFunc("/healthz", s.handleHealthz)

	var handler http.Handler = mux
	if len(s.corsOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: s.corsOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler(handler)
	}
	return s.revisionMiddleware(gziphandler.GzipHandler(s.securityHeadersMiddleware(handler)))
}

// Run starts the HTTP server and blocks until the context is canceled or an
// error occurs. It also handles graceful shutdown when the context is done.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      s.setupHandler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	// use a channel to capture server errors
	errChan := make(chan error, 1)
	go func() {
		defer close(errChan)
		log.Ctx(ctx).InfoContext(ctx, "starting server", slog.String("addr", s.listenAddr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		// Context canceled, shut down gracefully
		log.Ctx(ctx).InfoContext(ctx, "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}

func writeJSONError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(struct {
		Error string `json:"error"`
	}{Error: msg}); err != nil {
		slog.Warn("failed to write error response", slog.Any("error", err))
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		panic(http.ErrAbortHandler)
	}
}

func (s *Server) securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Strict-Transport-Security: max-age=2 years
		w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")

		// Prevent MIME-sniffing
		w.Header().Set("X-Content-Type-Options", "nosniff")

		// Prevent clickjacking
		w.Header().Set("X-Frame-Options", "DENY")

		// Control referrer information
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

func (s *Server) revisionMiddleware(next http.Handler) http.Handler {
	if s.serverName == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Server", s.serverName)
		next.ServeHTTP(w, r)
	})
}
