package tokens

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	userID := uuid.NewString()
	exp := time.Now().Add(15 * time.Minute).UTC()

	token, err := NewAccessToken(secret, userID, "buyer@example.com", "Admin", exp)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.Subject)
	assert.Equal(t, "Admin", claims.Role)
	assert.Equal(t, "buyer@example.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewAccessToken([]byte("one"), "u", "e", "User", time.Now().Add(time.Minute))
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, []byte("two"))
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	token, err := NewAccessToken(secret, "u", "e", "User", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, secret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-refresh-secret")
	jti := uuid.NewString()
	exp := time.Now().Add(24 * time.Hour).UTC()

	token, err := NewRefreshToken(secret, "user-1", jti, exp)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, jti, claims.ID)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestRefreshToken_Garbage(t *testing.T) {
	t.Parallel()

	claims, err := RefreshClaimsFromToken("not-a-valid-jwt", []byte("secret"))
	require.Error(t, err)
	assert.Nil(t, claims)
}

func TestSha256Hex(t *testing.T) {
	t.Parallel()

	a := Sha256Hex("refresh-token")
	assert.Len(t, a, 64)
	assert.Equal(t, a, Sha256Hex("refresh-token"))
	assert.NotEqual(t, a, Sha256Hex("other"))
	assert.NotEqual(t, NewJTI(), NewJTI())
}

func TestCookies(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour)
	c := CreateCookie(AccessCookie, "v", "/", exp)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, "v", c.Value)

	d := DeleteCookie(RefreshCookie, "/")
	assert.Equal(t, -1, d.MaxAge)
	assert.Empty(t, d.Value)
}
