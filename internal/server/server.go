package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/GrandChallenge_Go/internal/database"
	"github.com/osse101/GrandChallenge_Go/internal/handler"
	"github.com/osse101/GrandChallenge_Go/internal/logger"
	"github.com/osse101/GrandChallenge_Go/internal/metrics"
	"github.com/osse101/GrandChallenge_Go/internal/tournament"
)

// Options configures the HTTP surface
type Options struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	CORSOrigins    []string
}

type Server struct {
	httpServer        *http.Server
	dbPool            database.Pool
	tournamentService tournament.Service
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, tournamentService tournament.Service) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           NewRouter(opts, dbPool, tournamentService),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:            dbPool,
		tournamentService: tournamentService,
	}
}

// NewRouter builds the chi router with the full middleware stack.
// Middleware executes in the order it is registered, outermost first.
func NewRouter(opts Options, dbPool database.Pool, tournamentService tournament.Service) http.Handler {
	r := chi.NewRouter()
	detector := NewSuspiciousActivityDetector()

	r.Use(loggingMiddleware)
	r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	r.Use(SecurityHeadersMiddleware())
	if len(opts.CORSOrigins) > 0 {
		// preflight requests are answered here, before authentication
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type", HeaderAPIKey},
			ExposedHeaders: []string{HeaderRequestID},
			MaxAge:         CORSMaxAgeSeconds,
		}))
	}
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	tournamentHandler := handler.NewTournamentHandler(tournamentService)
	r.Route("/api/v1/tournaments", func(r chi.Router) {
		r.Post("/", tournamentHandler.HandleCreate)
		r.Get("/", tournamentHandler.HandleList)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", tournamentHandler.HandleDashboard)
			r.Get("/status", tournamentHandler.HandleStatus)
			r.Get("/rounds", tournamentHandler.HandleRounds)
			r.Get("/rounds/current", tournamentHandler.HandleCurrentRound)
			r.Post("/challenges/{challengeID}/result", tournamentHandler.HandleRecordResult)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/start", tournamentHandler.HandleStart)
				r.Post("/advance", tournamentHandler.HandleAdvance)
				r.Post("/close", tournamentHandler.HandleClose)
				r.Post("/reset", tournamentHandler.HandleReset)
			})
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
