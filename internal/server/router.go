// Package server wires the chi router: middleware chain, health endpoints and
// the guarded API routes for auth, connections, articles and profiles.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Blindworks/rhenanenmanager/auth"
	"github.com/Blindworks/rhenanenmanager/gate"
	"github.com/Blindworks/rhenanenmanager/httpx"
	"github.com/Blindworks/rhenanenmanager/internal/db"
	"github.com/Blindworks/rhenanenmanager/internal/handlers"
	"github.com/Blindworks/rhenanenmanager/internal/policy"
	"github.com/Blindworks/rhenanenmanager/internal/services"
)

// Options carries the dependencies the router needs.
type Options struct {
	DB                *gorm.DB
	Log               *zap.Logger
	Tokens            *auth.TokenProvider
	AuthorityCacheTTL time.Duration
}

// New builds the full application handler.
func New(opts Options) http.Handler {
	resolver := gate.NewCachedResolver(policy.NewDBAuthorityResolver(opts.DB), opts.AuthorityCacheTTL)
	g := gate.New(resolver)

	authH := handlers.NewAuthHandler(services.NewAuthService(opts.DB, opts.Tokens, opts.Log))
	connH := handlers.NewConnectionHandler(services.NewConnectionService(opts.DB, opts.Log))
	articleH := handlers.NewArticleHandler(services.NewArticleService(opts.DB, opts.Log))
	profileH := handlers.NewProfileHandler(services.NewProfileService(opts.DB, opts.Log))

	memberOrAdmin := g.RequireAny(gate.Authority(db.RoleAdmin), gate.Authority(db.RoleUser))
	adminOnly := g.RequireAny(gate.Authority(db.RoleAdmin))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(opts.Log))
	r.Use(opts.Tokens.Middleware)

	r.Get("/healthz", healthz(opts.DB))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authH.Login)
			r.Get("/health", authH.Health)
		})

		r.Route("/connections", func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Group(func(r chi.Router) {
				r.Use(memberOrAdmin)
				r.Get("/", connH.List)
				r.Post("/", connH.Create)
				r.Get("/exists", connH.Exists)
				r.Get("/types", connH.Types)
				r.Get("/type/{relationType}", connH.ByType)
				r.Get("/{id}", connH.Get)
				r.Put("/{id}", connH.Update)
				r.Get("/{id}/detail", connH.GetDetail)
				r.Get("/profile/{profileID}", connH.ForProfile)
				r.Get("/profile/{profileID}/detail", connH.DetailedForProfile)
				r.Get("/profile/{profileID}/from", connH.From)
				r.Get("/profile/{profileID}/to", connH.To)
				r.Get("/profile/{profileID}/active", connH.ActiveForProfile)
				r.Get("/profile/{profileID}/type/{relationType}/active", connH.ActiveByType)
			})

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Delete("/{id}", connH.Delete)
			})
		})

		r.Route("/articles", func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Get("/", articleH.List)
			r.Get("/categories", articleH.Categories)
			r.Get("/years", articleH.Years)
			r.Get("/year/{year}", articleH.ByYear)
			r.Get("/{id}", articleH.Get)

			r.Group(func(r chi.Router) {
				r.Use(g.RequireAny("article:write"))
				r.Post("/", articleH.Create)
				r.Put("/{id}", articleH.Update)
				r.Delete("/{id}", articleH.Delete)
			})
		})

		r.Route("/profiles", func(r chi.Router) {
			r.Use(auth.RequireAuth)

			r.Get("/", profileH.List)
			r.Get("/{id}", profileH.Get)

			r.Group(func(r chi.Router) {
				r.Use(g.RequireAny("profile:write"))
				r.Post("/", profileH.Create)
				r.Put("/{id}", profileH.Update)
			})

			r.Group(func(r chi.Router) {
				r.Use(adminOnly)
				r.Delete("/{id}", profileH.Delete)
			})
		})
	})

	return r
}

func healthz(conn *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := conn.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			httpx.JSONError(w, http.StatusServiceUnavailable, "database unreachable", nil)
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
