// Package oauth verifies identity-provider ID tokens.
package oauth

import (
	"context"
	"errors"
)

var (
	ErrNotConfigured = errors.New("oauth verifier not configured")
	ErrInvalidToken  = errors.New("invalid id token")
)

// Claims are the identity fields taken from a verified ID token.
type Claims struct {
	Subject string
	Email   string
	Name    string
	Picture string
}

// Verifier checks an ID token's signature and audience.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Claims, error)
}
