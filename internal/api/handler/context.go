package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/simplemsg/message-api/internal/api/middleware"
	"github.com/simplemsg/message-api/internal/auth"
)

// currentPrincipal extracts the Principal attached by the authentication
// gate. Handlers behind the authorization policy should always find one;
// its absence means the route was wired outside the policy by mistake, and
// we fail closed with a 401.
func currentPrincipal(c echo.Context) (auth.Principal, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return auth.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return p, nil
}
