package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/simplemsg/message-api/internal/auth"
)

func testTokens() *auth.TokenProvider {
	return auth.NewTokenProvider("thisIsAVerySecureSecretKey", 15*time.Minute)
}

func runGate(t *testing.T, tokens *auth.TokenProvider, header string) (echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authenticate(tokens)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return c, called
}

func TestAuthenticate_ValidToken(t *testing.T) {
	tokens := testTokens()
	signed, err := tokens.Encode(auth.Principal{
		Name:        "alice",
		Authorities: []string{"ROLE_USER"},
	}, time.Now())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c, called := runGate(t, tokens, "Bearer "+signed)
	if !called {
		t.Fatalf("next not called")
	}
	p, ok := CurrentPrincipal(c)
	if !ok {
		t.Fatalf("expected principal attached")
	}
	if p.Name != "alice" || !p.HasAuthority("ROLE_USER") {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	c, called := runGate(t, testTokens(), "")
	if !called {
		t.Fatalf("request must continue without a token")
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("no principal must be attached")
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	c, called := runGate(t, testTokens(), "Bearer not-a-token")
	if !called {
		t.Fatalf("request must continue with a garbage token")
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("no principal must be attached")
	}
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	tokens := testTokens()
	signed, err := tokens.Encode(auth.Principal{Name: "alice"}, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c, called := runGate(t, tokens, "Bearer "+signed)
	if !called {
		t.Fatalf("request must continue with an expired token")
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("no principal must be attached")
	}
}

func TestAuthenticate_PrefixIsCaseSensitive(t *testing.T) {
	tokens := testTokens()
	signed, err := tokens.Encode(auth.Principal{Name: "alice"}, time.Now())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	c, called := runGate(t, tokens, "bearer "+signed)
	if !called {
		t.Fatalf("request must continue")
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("lowercase prefix must be treated as no token")
	}
}

func TestAuthenticate_BlankToken(t *testing.T) {
	c, called := runGate(t, testTokens(), "Bearer ")
	if !called {
		t.Fatalf("request must continue")
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("no principal must be attached")
	}
}
