package security

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123"

func TestTokenManager_IssueAndParse(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, "backoffice")

	token, expires, err := m.Issue("u-1", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "backoffice", claims.Issuer)
}

func TestTokenManager_Parse(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, "backoffice")
	valid, _, err := m.Issue("u-1", "user")
	require.NoError(t, err)

	expired := NewTokenManager(testSecret, time.Minute, "backoffice")
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, err := expired.Issue("u-1", "user")
	require.NoError(t, err)

	otherKey, _, err := NewTokenManager("another-secret-value", time.Hour, "backoffice").Issue("u-1", "user")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: "u-1", Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{name: "valid", token: valid},
		{name: "expired", token: stale, wantErr: true},
		{name: "wrong key", token: otherKey, wantErr: true},
		{name: "unsigned", token: none, wantErr: true},
		{name: "tampered", token: valid[:strings.LastIndex(valid, ".")] + ".x", wantErr: true},
		{name: "garbage", token: "not-a-token", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Parse(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidToken)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	m := NewTokenManager(testSecret, 0, "")
	assert.Equal(t, time.Hour, m.ttl)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("rahasia123")
	require.NoError(t, err)
	assert.NotEqual(t, "rahasia123", hash)

	assert.NoError(t, h.Compare(hash, "rahasia123"))
	assert.ErrorIs(t, h.Compare(hash, "salah"), ErrPasswordMismatch)
	assert.Error(t, h.Compare("not-a-hash", "rahasia123"))
}

func TestNewPasswordHasher_CostOutOfRange(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(2).cost)
	assert.Equal(t, 12, NewPasswordHasher(12).cost)
}
