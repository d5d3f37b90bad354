package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("test-access-secret")
	refreshSecret = []byte("test-refresh-secret")
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	sub := uuid.NewString()
	exp := time.Now().Add(15 * time.Minute)

	tok, err := NewAccessToken(accessSecret, "admin", sub, exp)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(tok, accessSecret)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, sub, claims.Subject)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessToken_WrongSecretRejected(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken(accessSecret, "user", uuid.NewString(), time.Now().Add(time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, []byte("other"))
	require.Error(t, err)
}

func TestAccessToken_ExpiredReportsErrTokenExpired(t *testing.T) {
	t.Parallel()

	tok, err := NewAccessToken(accessSecret, "user", uuid.NewString(), time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, accessSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestAccessToken_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()

	claims := AccessClaims{Role: "admin", RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "x",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(accessSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(tok, accessSecret)
	require.Error(t, err)
}

func TestRefreshToken_CarriesJTIAndRole(t *testing.T) {
	t.Parallel()

	sub := uuid.NewString()
	tok, jti, err := NewRefreshToken(refreshSecret, "vendor", sub, time.Now().Add(time.Hour))
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := RefreshClaimsFromToken(tok, refreshSecret)
	require.NoError(t, err)
	assert.Equal(t, jti, claims.ID)
	assert.Equal(t, "vendor", claims.Role)
	assert.Equal(t, sub, claims.Subject)
}

func TestCookies(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(time.Hour)
	c := CreateCookie(AccessCookie, "v", "/", exp, true)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, "v", c.Value)

	d := DeleteCookie(AccessCookie, "/", false)
	assert.Equal(t, -1, d.MaxAge)
	assert.Empty(t, d.Value)
	assert.False(t, d.Secure)
}

func TestSha256Hex(t *testing.T) {
	t.Parallel()

	assert.Len(t, Sha256Hex("abc"), 64)
	assert.Equal(t, Sha256Hex("abc"), Sha256Hex("abc"))
	assert.NotEqual(t, Sha256Hex("abc"), Sha256Hex("abd"))
}
