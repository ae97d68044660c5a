package auth

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "thisIsAVerySecureSecretKey"

func TestTokenProvider_RoundTrip(t *testing.T) {
	tp := NewTokenProvider(testSecret, 15*time.Minute)

	cases := []struct {
		name  string
		roles []string
	}{
		{"no roles", nil},
		{"one role", []string{"ROLE_USER"}},
		{"two roles", []string{"ROLE_USER", "ROLE_ADMIN"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token, err := tp.Encode(Principal{Name: "TestUser", Authorities: tc.roles}, time.Now())
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			claims, err := tp.Decode(token)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			principal, err := FromClaims(claims)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if principal.Name != "TestUser" {
				t.Fatalf("expected identity TestUser, got %q", principal.Name)
			}
			if len(principal.Authorities) != len(tc.roles) {
				t.Fatalf("expected %d authorities, got %d", len(tc.roles), len(principal.Authorities))
			}
			for _, r := range tc.roles {
				if !principal.HasAuthority(r) {
					t.Fatalf("missing authority %s", r)
				}
			}
		})
	}
}

func TestTokenProvider_OmitsRolesClaimWhenEmpty(t *testing.T) {
	tp := NewTokenProvider(testSecret, 15*time.Minute)

	token, err := tp.Encode(Principal{Name: "TestUser"}, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	claims, err := tp.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if claims.Roles != "" {
		t.Fatalf("expected no roles claim, got %q", claims.Roles)
	}
}

func TestTokenProvider_Expiry(t *testing.T) {
	tp := NewTokenProvider(testSecret, 15*time.Minute)

	expired, err := tp.Encode(Principal{Name: "TestUser"}, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := tp.Decode(expired); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	if tp.Validate(expired) {
		t.Fatalf("expired token must not validate")
	}

	// Same subject, exp pushed into the future.
	fresh, err := tp.Encode(Principal{Name: "TestUser"}, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !tp.Validate(fresh) {
		t.Fatalf("fresh token must validate")
	}
}

func TestTokenProvider_ExpiresAfterIssuedAt(t *testing.T) {
	tp := NewTokenProvider(testSecret, 15*time.Minute)

	now := time.Now()
	token, err := tp.Encode(Principal{Name: "TestUser"}, now)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	claims, err := tp.Decode(token)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Fatalf("exp %v must be after iat %v", claims.ExpiresAt, claims.IssuedAt)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt.Time); got != 15*time.Minute {
		t.Fatalf("expected 15m validity, got %v", got)
	}
}

func TestTokenProvider_TamperedSignature(t *testing.T) {
	tp := NewTokenProvider(testSecret, 15*time.Minute)

	payloads := []Principal{
		{Name: "TestUser"},
		{Name: "TestUser", Authorities: []string{"ROLE_USER"}},
		{Name: "other", Authorities: []string{"ROLE_USER", "ROLE_ADMIN"}},
	}

	for _, p := range payloads {
		token, err := tp.Encode(p, time.Now())
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		parts := strings.Split(token, ".")
		if len(parts) != 3 {
			t.Fatalf("expected 3 segments, got %d", len(parts))
		}

		sig := []byte(parts[2])
		for i := range sig {
			flipped := make([]byte, len(sig))
			copy(flipped, sig)
			if flipped[i] == 'A' {
				flipped[i] = 'B'
			} else {
				flipped[i] = 'A'
			}
			tampered := parts[0] + "." + parts[1] + "." + string(flipped)
			if tampered == token {
				continue
			}
			if tp.Validate(tampered) {
				t.Fatalf("tampered signature byte %d validated", i)
			}
		}
	}
}

func TestTokenProvider_WrongKey(t *testing.T) {
	signer := NewTokenProvider(testSecret, 15*time.Minute)
	verifier := NewTokenProvider("aDifferentSecretEntirely", 15*time.Minute)

	token, err := signer.Encode(Principal{Name: "TestUser"}, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := verifier.Decode(token); err != ErrSignatureInvalid {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestTokenProvider_Malformed(t *testing.T) {
	tp := NewTokenProvider(testSecret, 15*time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b", "a.b.c.d", "%%%.%%%.%%%"} {
		if tp.Validate(token) {
			t.Fatalf("token %q must not validate", token)
		}
		if _, err := tp.Decode(token); err != ErrTokenMalformed {
			t.Fatalf("token %q: expected ErrTokenMalformed, got %v", token, err)
		}
	}
}

func TestTokenProvider_ValidateIsIdempotent(t *testing.T) {
	tp := NewTokenProvider(testSecret, 15*time.Minute)

	token, err := tp.Encode(Principal{Name: "TestUser"}, time.Now())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for i := 0; i < 5; i++ {
		if !tp.Validate(token) {
			t.Fatalf("validation %d flipped result", i)
		}
	}
}
