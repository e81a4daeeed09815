// Package httpserver publishes the shared dictionary over HTTP so browser
// clients and other installs can load the same word list.
package httpserver

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/verte-zerg/arupa/internal/dictionary"
)

// Defaults for the per-client limiter.
const (
	DefaultAddr  = "127.0.0.1:8787"
	DefaultRPS   = 5.0
	DefaultBurst = 10
)

const (
	handlerTimeout = 10 * time.Second
	limiterIdle    = 3 * time.Minute
)

// Options configures the server. TrustProxy enables X-Forwarded-For and
// X-Real-IP handling; leave it off unless a reverse proxy sets them.
type Options struct {
	RPS        float64
	Burst      int
	Origin     string
	TrustProxy bool
	Logger     zerolog.Logger
}

// Server serves a fixed dictionary.
type Server struct {
	r      *chi.Mux
	dict   dictionary.Dictionary
	data   []byte
	opts   Options
	logger zerolog.Logger

	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastSweep time.Time
	now       func() time.Time
}

type clientLimiter struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// New builds the router for dict.
func New(dict dictionary.Dictionary, opts Options) (*Server, error) {
	data, err := json.Marshal(dict)
	if err != nil {
		return nil, err
	}
	if opts.RPS <= 0 {
		opts.RPS = DefaultRPS
	}
	if opts.Burst <= 0 {
		opts.Burst = DefaultBurst
	}
	if opts.Origin == "" {
		opts.Origin = "*"
	}
	s := &Server{
		r:        chi.NewRouter(),
		dict:     dict,
		data:     data,
		opts:     opts,
		logger:   opts.Logger.With().Str("component", "httpserver").Logger(),
		limiters: map[string]*clientLimiter{},
		now:      time.Now,
	}

	s.r.Use(chimw.RequestID)
	if opts.TrustProxy {
		s.r.Use(chimw.RealIP)
	}
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(handlerTimeout))
	s.r.Use(s.logRequests)
	s.r.Use(jsonContentType)
	s.r.Use(s.cors)
	s.r.Use(s.rateLimit)

	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"arupa","endpoints":["/health","/dictionary.json","/words/{lang}"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/dictionary.json", s.handleDictionary)
	s.r.Get("/words/{lang}", s.handleWords)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})
	return s, nil
}

// Handler exposes the router.
func (s *Server) Handler() http.Handler { return s.r }

// HTTPServer wraps the router with conservative timeouts.
func (s *Server) HTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      handlerTimeout + 5*time.Second,
		IdleTimeout:       time.Minute,
	}
}

func (s *Server) handleDictionary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write(s.data)
}

func (s *Server) handleWords(w http.ResponseWriter, r *http.Request) {
	lang := strings.ToLower(chi.URLParam(r, "lang"))
	if lang != s.dict.SourceLang && lang != s.dict.TargetLang {
		writeError(w, http.StatusNotFound, "unknown_lang")
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"lang":  lang,
		"words": s.dict.Words(lang),
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", s.opts.Origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) limiter(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if now.Sub(s.lastSweep) >= limiterIdle {
		for k, cl := range s.limiters {
			if now.Sub(cl.lastSeen) >= limiterIdle {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}
	cl, ok := s.limiters[key]
	if !ok {
		cl = &clientLimiter{lim: rate.NewLimiter(rate.Limit(s.opts.RPS), s.opts.Burst)}
		s.limiters[key] = cl
	}
	cl.lastSeen = now
	return cl.lim
}

func (s *Server) clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter(clientKey(r)).Allow() {
			writeError(w, http.StatusTooManyRequests, "rate_limited")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientKey strips the port. RemoteAddr is the peer address unless
// TrustProxy let RealIP rewrite it.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info().
			Str("request_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
