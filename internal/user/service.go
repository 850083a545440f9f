package user

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/foodrescue/backend/internal/auth"
	"github.com/foodrescue/backend/internal/models"
	"github.com/foodrescue/backend/internal/store"
)

// storeTimeout bounds every document/blob call made on behalf of one
// request.
const storeTimeout = 10 * time.Second

// Store defines the interface for user persistence.
type Store interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, email string) (*models.User, error)
	UpdateUserFields(ctx context.Context, email string, fields map[string]interface{}) error
	DeleteUser(ctx context.Context, email string) error
}

// FileStore defines the interface for image blob storage.
type FileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, key string) error
	KeyFromURL(url string) (string, bool)
}

// Service implements user account operations over the document store.
type Service struct {
	store Store
	files FileStore
}

func NewService(st Store, files FileStore) *Service {
	return &Service{store: st, files: files}
}

// Create registers a new user. The email is the document key; a second
// registration under the same email fails with ErrConflict.
func (s *Service) Create(ctx context.Context, name, email, password, phone string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.CreateUser(ctx, &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        phone,
	})
}

// Update shallow-merges the given fields into the user document. The
// caller has already stripped the key field and null values.
func (s *Service) Update(ctx context.Context, email string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	fields["updatedAt"] = time.Now()
	return s.store.UpdateUserFields(ctx, email, fields)
}

// Login verifies credentials and returns the stored record. The caller
// is responsible for serializing the redacted view.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	u, err := s.store.GetUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !auth.CheckPassword(password, u.PasswordHash) {
		return nil, fmt.Errorf("user %s: %w", email, models.ErrUnauthorized)
	}
	return u, nil
}

// Get returns the stored user record.
func (s *Service) Get(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.store.GetUser(ctx, email)
}

// Delete is idempotent; deleting a missing user succeeds. Rescues owned
// by the user are left in place.
func (s *Service) Delete(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.store.DeleteUser(ctx, email)
}

// ChangePassword verifies the old password before storing a fresh hash
// of the new one.
func (s *Service) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	u, err := s.store.GetUser(ctx, email)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(oldPassword, u.PasswordHash) {
		return fmt.Errorf("user %s: %w", email, models.ErrUnauthorized)
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.store.UpdateUserFields(ctx, email, map[string]interface{}{
		"passwordHash": hash,
		"updatedAt":    time.Now(),
	})
}

// UploadProfilePicture stores the image blob and points the user's
// image field at its public URL.
func (s *Service) UploadProfilePicture(ctx context.Context, email string, file io.Reader, size int64, filename, contentType string) (string, error) {
	if file == nil || filename == "" {
		return "", fmt.Errorf("no file selected for uploading: %w", models.ErrBadRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	key := store.NewObjectKey(store.ProfilePicturePrefix, filename)
	url, err := s.files.Upload(ctx, key, file, size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload profile picture: %w", err)
	}
	err = s.store.UpdateUserFields(ctx, email, map[string]interface{}{
		"image":     url,
		"updatedAt": time.Now(),
	})
	if err != nil {
		return "", err
	}
	return url, nil
}

// DeleteProfilePicture removes the stored blob and clears the image
// field. A user without an image reports ErrNotFound rather than
// succeeding as a no-op.
func (s *Service) DeleteProfilePicture(ctx context.Context, email string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	u, err := s.store.GetUser(ctx, email)
	if err != nil {
		return err
	}
	if u.Image == "" {
		return fmt.Errorf("profile image for %s: %w", email, models.ErrImageNotFound)
	}
	if key, ok := s.files.KeyFromURL(u.Image); ok {
		if err := s.files.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove profile picture: %w", err)
		}
	}
	return s.store.UpdateUserFields(ctx, email, map[string]interface{}{
		"image":     "",
		"updatedAt": time.Now(),
	})
}
