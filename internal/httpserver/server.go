package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/isha-gupta80/loomaproject2222/internal/config"
	"github.com/isha-gupta80/loomaproject2222/internal/directory"
	"github.com/isha-gupta80/loomaproject2222/internal/identity"
	"github.com/isha-gupta80/loomaproject2222/internal/importer"
	"github.com/isha-gupta80/loomaproject2222/internal/model"
	"github.com/isha-gupta80/loomaproject2222/internal/store"
)

var (
	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "looma_login_attempts_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	importRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "looma_import_rows_total",
		Help: "Bulk import rows by result.",
	}, []string{"result"})
)

type Server struct {
	cfg       config.Config
	store     *store.Store
	identity  *identity.Service
	directory *directory.Service
	importer  *importer.Pipeline
}

func NewServer(cfg config.Config, st *store.Store, id *identity.Service, dir *directory.Service, imp *importer.Pipeline) *Server {
	return &Server{cfg: cfg, store: st, identity: id, directory: dir, importer: imp}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", s.handleLogin)
	r.With(s.authMiddleware).Post("/auth/logout", s.handleLogout)
	r.With(s.authMiddleware).Get("/auth/me", s.handleMe)
	r.With(s.authMiddleware).Patch("/auth/password", s.handleChangePassword)

	r.Route("/schools", func(r chi.Router) {
		r.Use(s.authMiddleware)
		r.Get("/", s.handleListSchools)
		r.Get("/stats", s.handleSchoolStats)
		r.Get("/export", s.handleExportSchools)
		r.Get("/import/template", s.handleImportTemplate)
		r.With(s.requireStaff).Post("/", s.handleCreateSchool)
		r.With(s.requireStaff).Post("/import", s.handleImport)
		r.Get("/{schoolID}", s.handleGetSchool)
		r.With(s.requireStaff).Patch("/{schoolID}", s.handlePatchSchool)
		r.With(s.requireAdmin).Delete("/{schoolID}", s.handleDeleteSchool)
		r.With(s.requireStaff).Post("/{schoolID}/status", s.handleUpdateStatus)
		r.Get("/{schoolID}/qr-scans", s.handleListQRScans)
		r.Post("/{schoolID}/qr-scans", s.handleAddQRScan)
		r.Get("/{schoolID}/access-logs", s.handleListAccessLogs)
		r.Post("/{schoolID}/access-logs", s.handleAddAccessLog)
	})

	r.With(s.authMiddleware).Get("/qr-scans/recent", s.handleRecentQRScans)
	r.With(s.authMiddleware).Get("/access-logs/recent", s.handleRecentAccessLogs)

	r.Route("/users", func(r chi.Router) {
		r.Use(s.authMiddleware, s.requireAdmin)
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleCreateUser)
		r.Delete("/{userID}", s.handleDeleteUser)
		r.Patch("/{userID}/role", s.handleUpdateRole)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"store": map[string]bool{
			"live": s.store.IsLive(),
			"ok":   s.store.Ping(r.Context()),
		},
	})
}

// sessionToken extracts the caller's token, preferring the
// Authorization header over the session cookie.
func (s *Server) sessionToken(r *http.Request) string {
	if token := bearerToken(r.Header.Get("Authorization")); token != "" {
		return token
	}
	if cookie, err := r.Cookie(s.cfg.CookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := s.sessionToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing_token")
			return
		}

		user, err := s.identity.UserFromSession(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid_token")
			return
		}

		ctx := context.WithValue(r.Context(), userKey{}, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		if user.Role != model.RoleAdmin {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFromContext(r.Context())
		if user.Role != model.RoleAdmin && user.Role != model.RoleStaff {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userKey struct{}

func userFromContext(ctx context.Context) model.User {
	user, _ := ctx.Value(userKey{}).(model.User)
	return user
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func decodeJSON(r *http.Request, out interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
