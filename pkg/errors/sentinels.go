package errors

import "errors"

// Internal sentinels, never rendered to API clients directly.
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrIdentityNotFound             = errors.New("identity not found in token claims")
	ErrDatabaseConnectionNil        = errors.New("database connection is nil")
)
