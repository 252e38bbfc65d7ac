package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt"
)

// SupabaseAudience is the audience Supabase stamps on user access tokens
const SupabaseAudience = "authenticated"

// JWTProvider validates HS256 access tokens locally with the project's JWT secret
type JWTProvider struct {
	secret   []byte
	audience string
}

// NewJWTProvider creates a provider for tokens signed with secret. An empty
// audience skips the audience check.
func NewJWTProvider(secret, audience string) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), audience: audience}
}

// Authenticate parses and validates token
func (p *JWTProvider) Authenticate(_ context.Context, tokenString string) (*Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: unexpected claims", ErrInvalidToken)
	}
	if p.audience != "" && !claims.VerifyAudience(p.audience, true) {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	email, _ := claims["email"].(string)
	return &Identity{ID: sub, Email: email}, nil
}
