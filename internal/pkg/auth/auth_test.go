package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/edutrack/schoolms/internal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWT(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  exp,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "schoolms-test",
	})
}

func TestJWT_RoundTripCarriesRoleAndSchool(t *testing.T) {
	svc := newTestJWT(time.Hour)
	schoolID := int64(7)
	user := &models.User{ID: 42, Username: "STUTEST000125", SchoolID: &schoolID, IsStudent: true, IsGuardian: true}

	pair, err := svc.GenerateTokenPair(user)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, 3600, pair.ExpiresIn)

	claims, err := svc.ValidateAndExtractClaims(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "STUTEST000125", claims.Username)
	assert.Equal(t, models.RoleStudent, claims.Role)
	require.NotNil(t, claims.SchoolID)
	assert.Equal(t, int64(7), *claims.SchoolID)
}

func TestJWT_Expired(t *testing.T) {
	svc := newTestJWT(-time.Minute)
	pair, err := svc.GenerateTokenPair(&models.User{ID: 1, Username: "admin", IsAdmin: true})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWT_WrongSecret(t *testing.T) {
	pair, err := newTestJWT(time.Hour).GenerateTokenPair(&models.User{ID: 1, Username: "admin", IsAdmin: true})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "schoolms-test"})
	_, err = other.ValidateToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractBearerToken(t *testing.T) {
	tok, err := ExtractBearerToken("Bearer abc.def")
	require.NoError(t, err)
	assert.Equal(t, "abc.def", tok)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretPass")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cretPass"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

func TestGeneratePassword(t *testing.T) {
	pw, err := GeneratePassword(8)
	require.NoError(t, err)
	assert.Len(t, pw, 8)
	for _, r := range pw {
		assert.True(t, strings.ContainsRune(passwordAlphabet, r))
	}

	_, err = GeneratePassword(0)
	assert.Error(t, err)
}

func TestGeneratePIN(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pin, err := GeneratePIN()
		require.NoError(t, err)
		assert.Regexp(t, `^\d{12}$`, pin)
		seen[pin] = true
	}
	assert.Greater(t, len(seen), 1)
}
