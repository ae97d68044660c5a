package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/simplemsg/message-api/internal/auth"
	"github.com/simplemsg/message-api/internal/core/domain"
	"github.com/simplemsg/message-api/internal/core/ports"
)

// AuthService implements account creation, credential verification and
// token issuance. Every credential failure — unknown username, wrong
// password, inactive account — collapses to domain.ErrInvalidCredentials so
// responses never reveal which part was wrong.
type AuthService struct {
	users   ports.UserRepository
	tokens  *auth.TokenProvider
	limiter ports.LoginLimiter
	logger  zerolog.Logger
}

// NewAuthService builds an AuthService. limiter may be nil, in which case
// failed logins are not throttled.
func NewAuthService(users ports.UserRepository, tokens *auth.TokenProvider, limiter ports.LoginLimiter, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Roles:        []string{domain.RoleUser},
		Active:       true,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("account created")
	return created, nil
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (auth.Principal, error) {
	if username == "" || password == "" {
		return auth.Principal{}, domain.ErrInvalidCredentials
	}

	if blocked := s.throttled(ctx, username); blocked {
		return auth.Principal{}, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == domain.ErrUserNotFound {
			return auth.Principal{}, s.failed(ctx, username)
		}
		return auth.Principal{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return auth.Principal{}, s.failed(ctx, username)
	}

	if !user.Active {
		return auth.Principal{}, s.failed(ctx, username)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter reset failed")
		}
	}

	return auth.Principal{Name: user.Username, Authorities: user.Roles}, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	principal, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Encode(principal, time.Now().UTC())
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("username", principal.Name).Msg("login succeeded")
	return token, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, username string) (*domain.User, error) {
	return s.users.FindByUsername(ctx, username)
}

// throttled asks the limiter whether this username is blocked. Limiter
// outages never block logins; they are logged and ignored.
func (s *AuthService) throttled(ctx context.Context, username string) bool {
	if s.limiter == nil {
		return false
	}
	blocked, err := s.limiter.TooManyAttempts(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login limiter check failed")
		return false
	}
	return blocked
}

// failed records a failed attempt and returns the collapsed credential error.
func (s *AuthService) failed(ctx context.Context, username string) error {
	if s.limiter != nil {
		if err := s.limiter.RecordFailure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login limiter record failed")
		}
	}
	return domain.ErrInvalidCredentials
}
