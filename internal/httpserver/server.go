// internal/httpserver/server.go
//
// HTTP server wiring for the word-ladder engine.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     request logging).
//   - Public endpoints: "/", "/health".
//   - Ladder endpoints (require auth): mounted under /ladder.
//   - Mapping engine errors onto HTTP status codes.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - The JWT "id" claim is the principal that owns sessions.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordladder/internal/engine"
)

// Options configures a Server.
type Options struct {
	JWTSecret    string
	ClientOrigin string           // CORS origin; default http://localhost:5173
	CookieName   string           // auth cookie checked after the bearer header
	Now          func() time.Time // clock for daily selection
}

// Server bundles the router and the engine it serves.
type Server struct {
	r      *chi.Mux
	eng    *engine.Engine
	secret []byte
	cookie string
	now    func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(eng *engine.Engine, opts Options) *Server {
	s := &Server{
		r:      chi.NewRouter(),
		eng:    eng,
		secret: []byte(opts.JWTSecret),
		cookie: opts.CookieName,
		now:    opts.Now,
	}
	if s.cookie == "" {
		s.cookie = "ladder_token"
	}
	if s.now == nil {
		s.now = time.Now
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordladder","endpoints":["/health","POST /ladder/start","POST /ladder/daily","POST /ladder/move","POST /ladder/hint","GET /ladder/{id}/state","GET /ladder/{id}/completion","GET /ladder/cache/stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true, "ready": s.eng.Ready()})
	})

	s.r.Route("/ladder", func(r chi.Router) {
		r.Use(s.requireAuth())
		s.mountLadder(r)
		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})
	return s
}

// Start serves on addr until ctx is cancelled, then drains for up to five
// seconds.
func (s *Server) Start(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return hs.Shutdown(sctx)
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger writes method, path, status and latency through zerolog.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("req_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http")
	})
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeEngineError maps engine sentinels onto status codes. Anything
// unrecognised is logged and reported as a 500.
func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrNotFound):
		writeError(w, http.StatusNotFound, "session_not_found")
	case errors.Is(err, engine.ErrUnauthorized):
		writeError(w, http.StatusForbidden, "not_your_session")
	case errors.Is(err, engine.ErrAlreadyComplete):
		writeError(w, http.StatusConflict, "session_complete")
	case errors.Is(err, engine.ErrNotComplete):
		writeError(w, http.StatusConflict, "session_not_complete")
	case errors.Is(err, engine.ErrInvalidDifficulty):
		writeError(w, http.StatusBadRequest, "invalid_difficulty")
	case errors.Is(err, engine.ErrNoPairs):
		writeError(w, http.StatusServiceUnavailable, "no_puzzles")
	case errors.Is(err, engine.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "warming_up")
	default:
		log.Error().Err(err).Msg("ladder request failed")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}
