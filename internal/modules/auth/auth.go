package auth

import "errors"

// Service issues and verifies the bearer tokens presented to the API.
type Service interface {
	// Issue signs a token for subject valid for the configured lifetime.
	Issue(subject string) (string, error)
	// Verify checks signature and expiry and returns the token subject.
	Verify(token string) (string, error)
}

var (
	ErrMissingSecret = errors.New("jwt secret is required")
	ErrInvalidToken  = errors.New("invalid or expired token")
)
