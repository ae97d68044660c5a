package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Rule marks a set of paths public. Rules are evaluated top-down and the
// first match wins; any path no rule matches requires an authenticated
// Principal.
type Rule struct {
	// Method restricts the rule to one HTTP method; empty matches all.
	Method string
	// Pattern is an exact path, or a prefix wildcard when it ends in "/**"
	// (which also matches the bare prefix itself).
	Pattern string
	Public  bool
}

func (r Rule) matches(method, path string) bool {
	if r.Method != "" && r.Method != method {
		return false
	}
	if prefix, ok := strings.CutSuffix(r.Pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}
	return path == r.Pattern
}

// Authorize renders the final allow/reject verdict for every request: public
// routes pass through, everything else needs the Principal attached by
// Authenticate. This is the only place a 401 is produced.
func Authorize(rules []Rule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			for _, r := range rules {
				if r.matches(req.Method, req.URL.Path) {
					if r.Public {
						return next(c)
					}
					break
				}
			}

			if _, ok := CurrentPrincipal(c); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}
