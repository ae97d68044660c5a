package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/simplemsg/message-api/internal/api/metrics"
	"github.com/simplemsg/message-api/internal/auth"
)

// bearerPrefix is matched case-sensitively; anything else is no token.
const bearerPrefix = "Bearer "

const principalKey = "auth.principal"

// Authenticate extracts a bearer token and, when it verifies, attaches the
// resolved Principal to the request context. It never rejects: a missing,
// blank or invalid token just leaves the request unauthenticated, so public
// routes stay reachable even with a garbage Authorization header. The final
// accept/reject call belongs to Authorize.
func Authenticate(tokens *auth.TokenProvider) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := resolveToken(c.Request())
			if token == "" {
				return next(c)
			}

			claims, err := tokens.Decode(token)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			principal, err := auth.FromClaims(claims)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(principalKey, principal)
			return next(c)
		}
	}
}

// CurrentPrincipal returns the Principal attached by Authenticate, if any.
func CurrentPrincipal(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(principalKey).(auth.Principal)
	return p, ok
}

func resolveToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, bearerPrefix) {
		return header[len(bearerPrefix):]
	}
	return ""
}
