package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"seminarbooking/internal/delivery/http/controllers"
	"seminarbooking/internal/delivery/http/middleware"
	"seminarbooking/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	sessionController *controllers.SessionController,
) *http.ServeMux {
	mux := http.NewServeMux()
	session := middleware.WithSession(verifier, logger)

	mux.HandleFunc("GET /events/{eventID}/availability", eventController.Availability)
	mux.HandleFunc("POST /events/{eventID}/registrations", session(registrationController.Register))
	mux.HandleFunc("POST /sessions/one-time", sessionController.CreateOneTimeSession)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
