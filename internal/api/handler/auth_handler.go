package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplemsg/message-api/internal/api/metrics"
	"github.com/simplemsg/message-api/internal/core/domain"
	"github.com/simplemsg/message-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type authRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login to an existing account
// @Description  Returns a bearer token to authenticate on the other endpoints.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /api/v1/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTooManyAttempts):
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.Response().Header().Set(echo.HeaderAuthorization, "Bearer "+token)
	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token})
}

// CreateAccount registers a new user account.
//
// @Summary      Create a new user account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authRequest  true  "Account credentials"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/auth [post]
func (h *AuthHandler) CreateAccount(c echo.Context) error {
	var req authRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}

	metrics.AccountsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}
