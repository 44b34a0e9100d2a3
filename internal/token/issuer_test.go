package token_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/token"
)

func newIssuer() *token.Issuer {
	return token.NewIssuer("access-secret", "refresh-secret", 30*time.Minute, 24*time.Hour)
}

func TestIssuer_AccessTokenRoundTrip(t *testing.T) {
	issuer := newIssuer()
	userID := uuid.New()

	tokenString, err := issuer.IssueAccessToken(userID, domain.RoleWriter)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	claims, err := issuer.VerifyAccessToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleWriter, claims.Role)
}

func TestIssuer_RefreshTokenRoundTrip(t *testing.T) {
	issuer := newIssuer()
	userID := uuid.New()

	tokenString, err := issuer.IssueRefreshToken(userID, domain.RoleReader)
	require.NoError(t, err)

	claims, err := issuer.VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, domain.RoleReader, claims.Role)
}

func TestIssuer_TokenKindsAreNotInterchangeable(t *testing.T) {
	issuer := newIssuer()
	userID := uuid.New()

	accessToken, err := issuer.IssueAccessToken(userID, domain.RoleReader)
	require.NoError(t, err)
	refreshToken, err := issuer.IssueRefreshToken(userID, domain.RoleReader)
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(accessToken)
	assert.ErrorIs(t, err, token.ErrTokenInvalid)

	_, err = issuer.VerifyAccessToken(refreshToken)
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestIssuer_ExpiredToken(t *testing.T) {
	issuer := token.NewIssuer("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	userID := uuid.New()

	accessToken, err := issuer.IssueAccessToken(userID, domain.RoleReader)
	require.NoError(t, err)

	_, err = issuer.VerifyAccessToken(accessToken)
	assert.ErrorIs(t, err, token.ErrTokenExpired)

	refreshToken, err := issuer.IssueRefreshToken(userID, domain.RoleReader)
	require.NoError(t, err)

	_, err = issuer.VerifyRefreshToken(refreshToken)
	assert.ErrorIs(t, err, token.ErrTokenExpired)
}

func TestIssuer_WrongSecret(t *testing.T) {
	issuer := newIssuer()
	other := token.NewIssuer("other-access-secret", "other-refresh-secret", 30*time.Minute, 24*time.Hour)

	tokenString, err := issuer.IssueAccessToken(uuid.New(), domain.RoleAdmin)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(tokenString)
	assert.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestIssuer_MalformedTokens(t *testing.T) {
	issuer := newIssuer()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "garbage", token: "notavalidjwt"},
		{name: "wrong structure", token: "invalid.token.here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.VerifyAccessToken(tt.token)
			assert.ErrorIs(t, err, token.ErrTokenInvalid)
		})
	}
}
