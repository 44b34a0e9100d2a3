package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sndarsmle/server-NEWSAPP/internal/config"
	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository"
	"github.com/sndarsmle/server-NEWSAPP/internal/token"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrUserExists          = errors.New("email or username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Issuer
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Issuer, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		cfg:      cfg,
	}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// Register creates a new account with the default reader role and returns an
// access token. No refresh token is minted until the first login.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.GetByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:             uuid.New(),
		Username:       input.Username,
		Email:          input.Email,
		PasswordHash:   string(hashedPassword),
		FullName:       input.FullName,
		ProfilePicture: s.cfg.DefaultProfilePictureURL,
		Role:           domain.RoleReader,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, AccessToken: accessToken}, nil
}

// Login verifies credentials, mints both tokens and stores the refresh token
// on the user row, replacing whatever value was there before.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokens.IssueRefreshToken(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, err
	}
	user.RefreshToken = &refreshToken

	return &AuthResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout clears the stored refresh token for whichever user holds the
// presented value. A token that matches no user is treated as already
// logged out.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	user, err := s.userRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.userRepo.UpdateRefreshToken(ctx, user.ID, nil)
}

// Refresh exchanges a valid refresh token for a fresh access token. The
// presented value must be byte-equal to the token stored on the user row and
// must carry a valid signature; the stored token is not rotated. The new
// access token embeds the user's current role, not the role at login time.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	user, err := s.userRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRefreshTokenInvalid
		}
		return "", err
	}

	if _, err := s.tokens.VerifyRefreshToken(refreshToken); err != nil {
		return "", ErrRefreshTokenInvalid
	}

	return s.tokens.IssueAccessToken(user.ID, user.Role)
}

// Authenticate verifies an access token and resolves the caller's current
// record. The role attached to the returned user comes from the store, not
// from the token claim, so role changes take effect on the next request.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccessToken(accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
