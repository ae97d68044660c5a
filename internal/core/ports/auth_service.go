package ports

import (
	"context"

	"github.com/simplemsg/message-api/internal/auth"
	"github.com/simplemsg/message-api/internal/core/domain"
)

// AuthService covers account creation, credential checking and token
// issuance.
type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	// Authenticate verifies a username/password pair. Unknown username,
	// wrong password and inactive account are indistinguishable to the
	// caller: all yield domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (auth.Principal, error)
	// Login authenticates and returns a signed bearer token.
	Login(ctx context.Context, username, password string) (string, error)
	CurrentUser(ctx context.Context, username string) (*domain.User, error)
}

// LoginLimiter throttles failed login attempts per username.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}
