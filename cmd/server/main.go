// @title Seminar Booking API
// @version 1.0
// @description Seminar and event registration service: seat statistics, registration eligibility, price resolution, and the registration pipeline.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"database/sql"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"seminarbooking/config"
	_ "seminarbooking/docs"
	"seminarbooking/internal/adapters/auth"
	"seminarbooking/internal/adapters/email"
	deliveryhttp "seminarbooking/internal/delivery/http"
	"seminarbooking/internal/delivery/http/controllers"
	"seminarbooking/internal/delivery/http/middleware"
	"seminarbooking/internal/repository/postgres"
	"seminarbooking/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	eventRepo := postgres.NewEventRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	issuer, verifier := auth.NewJWTSessionTokens(cfg.JWTSecret)
	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)
	sessions := auth.NewSessionResolver()

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	})
	if err != nil {
		log.Fatalf("create mailer: %v", err)
	}

	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)
	statistics := services.NewStatisticsService(registrationRepo)
	guard := services.NewRegistrationGuard(registrationRepo, statistics, sessions, time.Now)
	registration := services.NewRegistrationService(
		guard, registrationRepo, eventRepo, userRepo, emailService,
		cfg.RegistrationStoragePID, cfg.OrganizerEmail, time.Now,
	)
	oneTime := services.NewOneTimeAccountService(userRepo, hasher, issuer, time.Now)

	eventController := controllers.NewEventController(logger, eventRepo, guard, statistics, time.Now)
	registrationController := controllers.NewRegistrationController(logger, eventRepo, guard, registration)
	sessionController := controllers.NewSessionController(logger, oneTime)

	mux := deliveryhttp.NewRouter(logger, verifier, eventController, registrationController, sessionController)
	handler := middleware.LoggingMiddleware(logger, middleware.CORS(cfg.CORSAllowedOrigins, mux))

	addr := ":" + cfg.Port
	logger.Info("server listening", "addr", addr, "env", cfg.Environment)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
