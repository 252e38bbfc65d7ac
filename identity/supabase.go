package identity

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

type supabaseUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SupabaseProvider asks the Supabase auth API who a token belongs to
type SupabaseProvider struct {
	client  *resty.Client
	anonKey string
}

// NewSupabaseProvider creates a provider for the project at baseURL
func NewSupabaseProvider(baseURL, anonKey string, timeout time.Duration) *SupabaseProvider {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &SupabaseProvider{client: client, anonKey: anonKey}
}

// Authenticate resolves token through GET /auth/v1/user
func (p *SupabaseProvider) Authenticate(ctx context.Context, token string) (*Identity, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("apikey", p.anonKey).
		SetAuthToken(token).
		SetResult(&supabaseUser{}).
		Get("/auth/v1/user")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	switch {
	case resp.StatusCode() >= 400 && resp.StatusCode() < 500 && resp.StatusCode() != http.StatusTooManyRequests:
		return nil, ErrInvalidToken
	case resp.StatusCode() != http.StatusOK:
		return nil, fmt.Errorf("%w: status %s", ErrProviderUnavailable, resp.Status())
	}

	user, ok := resp.Result().(*supabaseUser)
	if !ok || user.ID == "" {
		return nil, fmt.Errorf("%w: response has no user", ErrInvalidToken)
	}
	return &Identity{ID: user.ID, Email: user.Email}, nil
}
