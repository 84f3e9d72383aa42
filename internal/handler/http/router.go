package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/heidekoenig/reservation-backend-go/internal/config"
	"github.com/heidekoenig/reservation-backend-go/internal/handler/http/middleware"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/jwt"
)

func NewRouter(
	appCfg config.AppConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	inviteHandler InviteHandler,
	reservationHandler ReservationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "reservation-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appCfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{appCfg.BaseURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		r.Route("/invites", func(r chi.Router) {
			// Public token pre-flight for the form page
			r.Get("/validate", inviteHandler.Validate)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Use(middleware.AdminOnly)

				r.Post("/", inviteHandler.Create)
				r.Get("/", inviteHandler.List)
				r.Delete("/", inviteHandler.BulkDelete)
				r.Post("/{id}/revoke", inviteHandler.Revoke)
				r.Post("/{id}/resend", inviteHandler.Resend)
			})
		})

		r.Route("/reservations", func(r chi.Router) {
			// Public guest intake
			r.Post("/", reservationHandler.Create)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))
				r.Use(middleware.AdminOnly)

				r.Get("/", reservationHandler.List)
				r.Get("/{id}", reservationHandler.GetByID)
				r.Patch("/{id}/status", reservationHandler.UpdateStatus)
			})
		})
	})
	return r
}
