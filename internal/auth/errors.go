package auth

import "errors"

// Token failures are distinguishable internally (logs, tests) but all
// degrade to an unauthenticated request at the authorization boundary.
var (
	ErrTokenMalformed   = errors.New("token is malformed")
	ErrSignatureInvalid = errors.New("token signature is invalid")
	ErrTokenExpired     = errors.New("token is expired")
	ErrMissingSubject   = errors.New("token has no subject claim")
)
