package controllers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"seminarbooking/internal/delivery/http/helpers"
	"seminarbooking/internal/domain"
)

// SessionController issues one-time account sessions for guest registration.
type SessionController struct {
	Logger  *slog.Logger
	OneTime domain.OneTimeAccountService
}

func NewSessionController(logger *slog.Logger, oneTime domain.OneTimeAccountService) *SessionController {
	return &SessionController{Logger: logger, OneTime: oneTime}
}

// CreateOneTimeSessionRequest is the request body for POST /sessions/one-time.
type CreateOneTimeSessionRequest struct {
	Email string `json:"email"`
}

// OneTimeSessionResponse is the success payload for POST /sessions/one-time.
type OneTimeSessionResponse struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// CreateOneTimeSession godoc
// @Summary Create a one-time account session
// @Description Creates an anonymous guest account and returns a short-lived session token for it, so a visitor can register without a full account.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body controllers.CreateOneTimeSessionRequest true "Guest email (optional)"
// @Success 201 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /sessions/one-time [post]
func (c *SessionController) CreateOneTimeSession(w http.ResponseWriter, r *http.Request) {
	var req CreateOneTimeSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid request body")
			return
		}
	}

	user, token, err := c.OneTime.CreateOneTimeAccount(r.Context(), req.Email)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "create one-time account failed", "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, OneTimeSessionResponse{User: user, Token: token})
}
