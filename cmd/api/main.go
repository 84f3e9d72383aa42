package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/heidekoenig/reservation-backend-go/internal/config"
	appHTTP "github.com/heidekoenig/reservation-backend-go/internal/handler/http"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/database"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/email"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/jwt"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/ratelimit"
	"github.com/heidekoenig/reservation-backend-go/internal/pkg/token"
	"github.com/heidekoenig/reservation-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/heidekoenig/reservation-backend-go/internal/service/auth"
	inviteService "github.com/heidekoenig/reservation-backend-go/internal/service/invite"
	reservationService "github.com/heidekoenig/reservation-backend-go/internal/service/reservation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	inviteRepo := postgresql.NewInviteRepository(db)
	reservationRepo := postgresql.NewReservationRepository(db)
	mailLogRepo := postgresql.NewMailLogRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	tokenCodec, err := token.NewCodec(cfg.Invite.TokenSecret)
	if err != nil {
		log.Fatal("Failed to initialize token codec:", err)
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	limiter := ratelimit.NewLimiter(cfg.RateLimit.Window, cfg.RateLimit.Max)

	authService := serviceAuth.NewAuthService(userRepo, JWTService)
	inviteSvc := inviteService.NewInviteService(
		inviteRepo,
		mailLogRepo,
		emailService,
		tokenCodec,
		cfg.Invite,
		cfg.App.BaseURL,
	)
	reservationSvc := reservationService.NewReservationService(
		db,
		reservationRepo,
		inviteSvc,
		mailLogRepo,
		emailService,
		limiter,
		cfg.App,
	)

	authHandler := appHTTP.NewAuthHandler(JWTService, authService)
	inviteHandler := appHTTP.NewInviteHandler(inviteSvc)
	reservationHandler := appHTTP.NewReservationHandler(reservationSvc)

	router := appHTTP.NewRouter(
		cfg.App,
		JWTService,
		authHandler,
		inviteHandler,
		reservationHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
