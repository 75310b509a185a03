package router

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/vkportfolio/service-core-go/internal/auth"
	"github.com/vkportfolio/service-core-go/internal/techstack"
	tsrepo "github.com/vkportfolio/service-core-go/internal/techstack/repo"
	"github.com/vkportfolio/service-core-go/internal/user"
	userrepo "github.com/vkportfolio/service-core-go/internal/user/repo"
	"github.com/vkportfolio/service-core-go/pkg/utilities"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests using the provided
// sugared logger, tagging each request with a correlation ID.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := r.Header.Get("X-Request-Id")
			if reqID == "" {
				reqID = utilities.NewRequestID()
			}
			w.Header().Set("X-Request-Id", reqID)
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"request_id", reqID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// allowedOrigins builds the CORS whitelist: CLIENT_URL plus local dev
// origins. Trailing slashes are normalized away.
func allowedOrigins() map[string]bool {
	origins := map[string]bool{
		"http://localhost:3000": true,
		"http://localhost:5173": true,
	}
	if v := os.Getenv("CLIENT_URL"); v != "" {
		origins[strings.TrimRight(v, "/")] = true
	}
	return origins
}

// CORSMiddleware returns a middleware implementing the origin whitelist and
// preflight handling for browser clients.
func CORSMiddleware() func(http.Handler) http.Handler {
	origins := allowedOrigins()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimRight(r.Header.Get("Origin"), "/")
			if origin != "" && origins[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Vary", "Origin")
			}
			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RegisterRoutes mounts HTTP handlers using the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, db *mongo.Database, authCfg auth.Config) http.Handler {
	mux := http.NewServeMux()

	// health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	// auth routes
	userSvc := user.NewService(userrepo.NewUserRepo(db), nil)
	issuer := auth.NewIssuer(authCfg)
	verifier := auth.NewVerifier(authCfg)
	guard := auth.NewGuard(verifier, logger)
	authHandler := auth.NewHandler(issuer, verifier, userSvc, logger)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/refresh", authHandler.Refresh)
	mux.HandleFunc("GET /api/auth/me", guard.Require(authHandler.Me))
	mux.HandleFunc("POST /api/auth/logout", guard.Require(authHandler.Logout))

	// tech-stack routes: reads are public, mutations are admin-only
	tsHandler := techstack.NewHandler(techstack.NewService(tsrepo.NewRepo(db)), logger)
	mux.HandleFunc("GET /api/tech-stack", tsHandler.List)
	mux.HandleFunc("GET /api/tech-stack/{id}", tsHandler.Get)
	mux.HandleFunc("POST /api/tech-stack", guard.Require(tsHandler.Create, auth.RoleAdmin))
	mux.HandleFunc("PUT /api/tech-stack/{id}", guard.Require(tsHandler.Update, auth.RoleAdmin))
	mux.HandleFunc("DELETE /api/tech-stack/{id}", guard.Require(tsHandler.Delete, auth.RoleAdmin))

	// JSON 404 for everything else
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Route not found"})
	})

	// wrap with CORS, then security headers, then request logging
	handler := LoggingMiddleware(logger)(SecurityHeadersMiddleware()(CORSMiddleware()(mux)))
	return handler
}
