package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken(TypeUser, 42, "admin@example.com", "system_admin")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.ID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "system_admin", claims.Role)
	assert.Equal(t, TypeUser, claims.Type)
	assert.NotEmpty(t, claims.RegisteredClaims.ID)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, time.Minute)
}

func TestStoreTokenHasNoRole(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateToken(TypeStore, 7, "store@example.com", "")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, TypeStore, claims.Type)
	assert.Empty(t, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateToken(TypeUser, 1, "a@b.co", "normal_user")
	require.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	secret := "test-secret"
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		ID:    1,
		Email: "a@b.co",
		Role:  "normal_user",
		Type:  TypeUser,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTService(secret).ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestValidateTokenRejectsMalformed(t *testing.T) {
	svc := NewJWTService("test-secret")

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ValidateToken(token)
		assert.Error(t, err, "token %q", token)
	}
}

func TestValidateTokenRejectsUnknownType(t *testing.T) {
	secret := "test-secret"
	odd := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		ID:    1,
		Email: "a@b.co",
		Type:  "robot",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	tokenString, err := odd.SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewJWTService(secret).ValidateToken(tokenString)
	assert.Error(t, err)
}
