package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/academictwin/internal/pkg/apperrors"
)

func newTestService(now time.Time) *JWTService {
	s := NewJWTService(JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour, TokenIssuer: "academictwin"})
	s.now = func() time.Time { return now }
	return s
}

func TestGenerateAndValidate(t *testing.T) {
	now := time.Now()
	s := newTestService(now)

	token, expiresAt, err := s.GenerateToken(42)
	require.NoError(t, err)
	assert.WithinDuration(t, now.Add(time.Hour), expiresAt, time.Second)

	claims, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.StudentID)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "academictwin", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateExpired(t *testing.T) {
	issued := time.Now().Add(-3 * time.Hour)
	token, _, err := newTestService(issued).GenerateToken(1)
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateWrongSecret(t *testing.T) {
	token, _, err := newTestService(time.Now()).GenerateToken(1)
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "another", AccessTokenExp: time.Hour, TokenIssuer: "academictwin"})
	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = other.ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestGenerateRejectsBadStudent(t *testing.T) {
	_, _, err := newTestService(time.Now()).GenerateToken(0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		err    bool
	}{
		{"Bearer a.b.c", "a.b.c", false},
		{"a.b.c", "a.b.c", false},
		{`"Bearer a.b.c"`, "a.b.c", false},
		{"Bearer nonsense", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		got, err := ExtractBearerToken(tt.header)
		if tt.err {
			assert.ErrorIs(t, err, ErrInvalidFormat, tt.header)
			continue
		}
		require.NoError(t, err, tt.header)
		assert.Equal(t, tt.want, got)
	}
}
