package auth

import (
	"testing"
	"time"

	"schoollink/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_Issue(t *testing.T) {
	secret := "test-secret"
	m := NewJWTManager(secret)

	token, err := m.Issue("u-3-7", "3학년 7반", []string{"teacher"}, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*sessionClaims)
	require.True(t, ok)
	assert.Equal(t, "u-3-7", claims.Subject)
	assert.Equal(t, "3학년 7반", claims.DisplayName)
	assert.Equal(t, []string{"teacher"}, claims.Roles)
	assert.Equal(t, tokenIssuer, claims.Issuer)
	_, err = uuid.Parse(claims.ID)
	assert.NoError(t, err, "jti should be a uuid")
}

func TestJWTManager_Verify(t *testing.T) {
	m := NewJWTManager("test-secret")
	good, err := m.Issue("u-1-1", "1학년 1반", nil, time.Hour)
	require.NoError(t, err)

	expired, err := m.Issue("u-1-1", "1학년 1반", nil, -time.Minute)
	require.NoError(t, err)

	foreign, err := NewJWTManager("other-secret").Issue("u-1-1", "", nil, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantUID string
		wantErr bool
	}{
		{"valid", good, "u-1-1", false},
		{"expired", expired, "", true},
		{"wrong secret", foreign, "", true},
		{"garbage", "not-a-token", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uid, err := m.Verify(tt.token)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUID, uid)
		})
	}
}
