package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testSecret  = []byte("test-jwt-secret")
	otherSecret = []byte("some-other-secret")
)

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(AccessTTL).UTC()
	token, err := SignAccessToken(42, "alice", "admin", exp, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestAccessToken_ValidJustBeforeExpiry(t *testing.T) {
	t.Parallel()

	// One second short of the 15 minute lifetime must still verify.
	exp := time.Now().Add(time.Second)
	token, err := SignAccessToken(1, "bob", "user", exp, testSecret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "bob", claims.Username)
}

func TestAccessToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, "bob", "user", time.Now().Add(-time.Second), testSecret)
	require.NoError(t, err)

	claims, err := AccessClaimsFromToken(token, testSecret)
	require.Error(t, err)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := SignAccessToken(1, "bob", "user", time.Now().Add(AccessTTL), testSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(token, otherSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessToken_Garbage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{name: "empty", token: "", want: ErrTokenMissing},
		{name: "not a jwt", token: "not-a-jwt", want: ErrTokenInvalid},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9", want: ErrTokenInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := AccessClaimsFromToken(tt.token, testSecret)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRefreshToken_RoundTripWithJTI(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(RefreshTTL).UTC()
	token, err := SignRefreshToken(7, "carol", "user", exp, testSecret)
	require.NoError(t, err)

	claims, err := RefreshClaimsFromToken(token, testSecret)
	require.NoError(t, err)

	assert.Equal(t, "carol", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.NotEmpty(t, claims.ID)
	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), userID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestRefreshToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := SignRefreshToken(7, "carol", "user", time.Now().Add(-time.Minute), testSecret)
	require.NoError(t, err)

	_, err = RefreshClaimsFromToken(token, testSecret)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshToken_NotValidAsAccessToken(t *testing.T) {
	t.Parallel()

	// Access and refresh tokens are signed with different secrets, so
	// presenting one in place of the other must fail verification.
	refresh, err := SignRefreshToken(7, "carol", "user", time.Now().Add(RefreshTTL), otherSecret)
	require.NoError(t, err)

	_, err = AccessClaimsFromToken(refresh, testSecret)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
