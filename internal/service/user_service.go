package service

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/sndarsmle/server-NEWSAPP/internal/config"
	"github.com/sndarsmle/server-NEWSAPP/internal/domain"
	"github.com/sndarsmle/server-NEWSAPP/internal/repository"
	"github.com/sndarsmle/server-NEWSAPP/internal/storage"
)

var (
	ErrNotAccountOwner = errors.New("not the account owner")
	ErrSelfDemotion    = errors.New("admins cannot demote themselves")
	ErrInvalidRole     = errors.New("invalid role")
)

type UserService struct {
	userRepo repository.UserRepository
	store    storage.ObjectStore
	cfg      *config.Config
}

func NewUserService(userRepo repository.UserRepository, store storage.ObjectStore, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		store:    store,
		cfg:      cfg,
	}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetAll(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.GetAll(ctx)
}

type EditUserInput struct {
	Username *string
	Email    *string
	FullName *string
	Password *string
	Picture  *ImageUpload
}

// Edit updates the caller's own profile. There is no admin bypass here: even
// an admin can only edit their own account.
func (s *UserService) Edit(ctx context.Context, targetID uuid.UUID, caller *domain.User, input EditUserInput) (*domain.User, error) {
	if caller.ID != targetID {
		return nil, ErrNotAccountOwner
	}

	user, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hashed)
	}

	if input.Picture != nil {
		if err := s.deletePicture(ctx, user.ProfilePicture); err != nil {
			return nil, err
		}
		key := storage.ProfilePictureKey(input.Picture.Filename)
		url, err := s.store.Upload(ctx, key, bytes.NewReader(input.Picture.Data),
			int64(len(input.Picture.Data)), input.Picture.ContentType)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = url
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes an account. The owner may delete their own account; an
// admin may delete anyone's. Article and comment rows cascade with the user.
func (s *UserService) Delete(ctx context.Context, targetID uuid.UUID, caller *domain.User) error {
	user, err := s.GetByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !caller.IsOwnerOrAdmin(user.ID) {
		return ErrNotAccountOwner
	}

	if err := s.deletePicture(ctx, user.ProfilePicture); err != nil {
		return err
	}

	return s.userRepo.Delete(ctx, user.ID)
}

// UpdateRole changes a user's role. The route restricts this to admins; on
// top of that, an admin may not demote themselves to a non-admin role, which
// protects against the last admin locking everyone out.
func (s *UserService) UpdateRole(ctx context.Context, targetID uuid.UUID, newRole domain.Role, caller *domain.User) (*domain.User, error) {
	if !newRole.Valid() {
		return nil, ErrInvalidRole
	}

	user, err := s.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if user.ID == caller.ID && newRole != domain.RoleAdmin {
		return nil, ErrSelfDemotion
	}

	if err := s.userRepo.UpdateRole(ctx, user.ID, newRole); err != nil {
		return nil, err
	}
	user.Role = newRole

	return user, nil
}

// deletePicture removes a stored profile picture blob. The configured
// default asset is shared across accounts and is never deleted.
func (s *UserService) deletePicture(ctx context.Context, pictureURL string) error {
	if pictureURL == "" || pictureURL == s.cfg.DefaultProfilePictureURL {
		return nil
	}
	key, ok := s.store.KeyFromURL(pictureURL)
	if !ok {
		return nil
	}
	return s.store.Delete(ctx, key)
}
