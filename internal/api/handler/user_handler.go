package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplemsg/message-api/internal/core/ports"
)

type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// CurrentUser returns the stored account of the authenticated caller.
//
// @Summary      Get the current user
// @Tags         user
// @Produce      json
// @Success      200   {object}  domain.User
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/me [get]
// @Security     bearerAuth
func (h *UserHandler) CurrentUser(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.authService.CurrentUser(c.Request().Context(), principal.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
