package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims is the identity a verified token carries. The role is the role the
// user held at issuance time; callers that need the live role must re-read
// the user record.
type Claims struct {
	UserID uuid.UUID
	Role   domain.Role
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer mints and verifies access and refresh tokens. The two kinds are
// signed with independent secrets, so a refresh token never verifies as an
// access token or vice versa.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (i *Issuer) IssueAccessToken(userID uuid.UUID, role domain.Role) (string, error) {
	return i.sign(userID, role, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefreshToken(userID uuid.UUID, role domain.Role) (string, error) {
	return i.sign(userID, role, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, i.accessSecret)
}

func (i *Issuer) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, i.refreshSecret)
}

func (i *Issuer) sign(userID uuid.UUID, role domain.Role, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := tokenClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (i *Issuer) verify(tokenString string, secret []byte) (*Claims, error) {
	var claims tokenClaims
	parsed, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return &Claims{UserID: userID, Role: domain.Role(claims.Role)}, nil
}
