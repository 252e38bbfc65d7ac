// Package identity validates bearer tokens issued by the external identity
// provider. The provider is authoritative: a token it accepts yields the
// caller's identity, anything else is rejected.
package identity

import (
	"context"
	"errors"
)

var (
	// ErrInvalidToken means the provider rejected the token
	ErrInvalidToken = errors.New("invalid token")

	// ErrProviderUnavailable means the provider could not be asked
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)

// Identity is the authenticated caller
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider turns a bearer token into an Identity
type Provider interface {
	Authenticate(ctx context.Context, token string) (*Identity, error)
}
