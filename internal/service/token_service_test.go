package service

import (
	"testing"
	"time"

	"inkwell/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &models.User{ID: 1, PublicID: "abc-123", Username: "alice"}

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sub, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", sub)
}

func TestTokenService_SubjectIsPublicID(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)
	user := &models.User{ID: 42, PublicID: "public-uuid", Username: "bob"}

	token, err := svc.Issue(user)
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "public-uuid", claims["sub"])
	assert.NotEqual(t, float64(42), claims["sub"])
	assert.Equal(t, tokenIssuer, claims["iss"])
	assert.Equal(t, tokenAudience, claims["aud"])
	assert.NotEmpty(t, claims["jti"])
}

func TestTokenService_VerifyMalformed(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"garbage", "not-a-token-at-all"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

func TestTokenService_VerifyExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)
	user := &models.User{PublicID: "expired-user"}

	token, err := svc.Issue(user)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_VerifyWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one", time.Hour)
	verifier := NewTokenService("secret-two", time.Hour)

	token, err := issuer.Issue(&models.User{PublicID: "someone"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_VerifyRejectsUnsignedToken(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "attacker",
		"iss": tokenIssuer,
		"aud": tokenAudience,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(tokenString)
	assert.Error(t, err)
}

func TestTokenService_VerifyWrongIssuerOrAudience(t *testing.T) {
	secret := "test-secret"
	svc := NewTokenService(secret, time.Hour)

	sign := func(claims jwt.MapClaims) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
		s, err := token.SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}

	now := time.Now()
	base := func() jwt.MapClaims {
		return jwt.MapClaims{
			"sub": "someone",
			"iss": tokenIssuer,
			"aud": tokenAudience,
			"exp": now.Add(time.Hour).Unix(),
			"iat": now.Unix(),
		}
	}

	wrongIssuer := base()
	wrongIssuer["iss"] = "someone-else"
	_, err := svc.Verify(sign(wrongIssuer))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	wrongAudience := base()
	wrongAudience["aud"] = "another-app"
	_, err = svc.Verify(sign(wrongAudience))
	assert.ErrorIs(t, err, ErrTokenInvalid)

	missingSubject := base()
	delete(missingSubject, "sub")
	_, err = svc.Verify(sign(missingSubject))
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
