package identity

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":   "3f1c9a52-user",
		"email": "asha@example.com",
		"aud":   SupabaseAudience,
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
}

func TestJWTProviderAccepts(t *testing.T) {
	p := NewJWTProvider(jwtSecret, SupabaseAudience)

	id, err := p.Authenticate(context.Background(), sign(t, jwt.SigningMethodHS256, []byte(jwtSecret), validClaims()))
	require.NoError(t, err)
	assert.Equal(t, &Identity{ID: "3f1c9a52-user", Email: "asha@example.com"}, id)
}

func TestJWTProviderRejects(t *testing.T) {
	p := NewJWTProvider(jwtSecret, SupabaseAudience)

	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()
	wrongAud := validClaims()
	wrongAud["aud"] = "anon"
	noSub := validClaims()
	delete(noSub, "sub")

	tokens := map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": sign(t, jwt.SigningMethodHS256, []byte("other-secret"), validClaims()),
		"expired":      sign(t, jwt.SigningMethodHS256, []byte(jwtSecret), expired),
		"audience":     sign(t, jwt.SigningMethodHS256, []byte(jwtSecret), wrongAud),
		"no subject":   sign(t, jwt.SigningMethodHS256, []byte(jwtSecret), noSub),
		"alg none":     sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims()),
	}
	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			_, err := p.Authenticate(context.Background(), token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
