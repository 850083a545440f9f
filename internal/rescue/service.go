package rescue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/foodrescue/backend/internal/models"
	"github.com/foodrescue/backend/internal/store"
)

// storeTimeout bounds every document/blob call made on behalf of one
// request.
const storeTimeout = 10 * time.Second

// Store defines the interface for rescue persistence.
type Store interface {
	CreateRescue(ctx context.Context, r *models.Rescue) error
	GetRescue(ctx context.Context, id string) (*models.Rescue, error)
	ListRescues(ctx context.Context) ([]models.Rescue, error)
	ListRescuesByOwner(ctx context.Context, email string) ([]models.Rescue, error)
	UpdateRescueFields(ctx context.Context, id string, fields map[string]interface{}) error
	DeleteRescue(ctx context.Context, id string) error
}

// FileStore defines the interface for image blob storage.
type FileStore interface {
	Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error)
}

// Cache is the optional cache-aside layer for the listing queries.
type Cache interface {
	GetAll(ctx context.Context) ([]models.Rescue, bool)
	SetAll(ctx context.Context, rescues []models.Rescue)
	GetOwner(ctx context.Context, email string) ([]models.Rescue, bool)
	SetOwner(ctx context.Context, email string, rescues []models.Rescue)
	Invalidate(ctx context.Context, ownerEmail string)
}

// Service implements rescue posting operations over the document store.
type Service struct {
	store Store
	files FileStore
	cache Cache // may be nil
}

func NewService(st Store, files FileStore, cache Cache) *Service {
	return &Service{store: st, files: files, cache: cache}
}

// Create posts a new rescue. rescue_id is the caller-supplied document
// key; a duplicate fails with ErrConflict. A missing image gets the
// placeholder.
func (s *Service) Create(ctx context.Context, req *models.CreateRescueRequest) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	image := req.Image
	if image == "" {
		image = models.DefaultRescueImage
	}
	err := s.store.CreateRescue(ctx, &models.Rescue{
		RescueID: req.RescueID,
		Title:    req.Title,
		Desc:     req.Desc,
		Date:     req.Date,
		Email:    req.Email,
		Location: req.Location,
		Phone:    req.Phone,
		Image:    image,
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, req.Email)
	return nil
}

// List returns every rescue in store order.
func (s *Service) List(ctx context.Context) ([]models.Rescue, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if s.cache != nil {
		if rescues, ok := s.cache.GetAll(ctx); ok {
			return rescues, nil
		}
	}
	rescues, err := s.store.ListRescues(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetAll(ctx, rescues)
	}
	return rescues, nil
}

// Get returns one rescue by id.
func (s *Service) Get(ctx context.Context, id string) (*models.Rescue, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	return s.store.GetRescue(ctx, id)
}

// ListByOwner returns the rescues whose email field equals the
// argument. No matches is an empty list, not an error.
func (s *Service) ListByOwner(ctx context.Context, email string) ([]models.Rescue, error) {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if s.cache != nil {
		if rescues, ok := s.cache.GetOwner(ctx, email); ok {
			return rescues, nil
		}
	}
	rescues, err := s.store.ListRescuesByOwner(ctx, email)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetOwner(ctx, email, rescues)
	}
	return rescues, nil
}

// Update shallow-merges the given fields into the rescue document. The
// caller has already stripped the key field and null values.
func (s *Service) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	// Fetch first so invalidation hits the current owner's listing
	// even when the update reassigns the email field.
	current, err := s.store.GetRescue(ctx, id)
	if err != nil {
		return err
	}

	fields["updatedAt"] = time.Now()
	if err := s.store.UpdateRescueFields(ctx, id, fields); err != nil {
		return err
	}

	s.invalidate(ctx, current.Email)
	if newOwner, ok := fields["email"].(string); ok && newOwner != current.Email {
		s.invalidate(ctx, newOwner)
	}
	return nil
}

// Delete is idempotent; deleting a missing rescue succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	owner := ""
	if current, err := s.store.GetRescue(ctx, id); err == nil {
		owner = current.Email
	} else if !errors.Is(err, models.ErrNotFound) {
		return err
	}

	if err := s.store.DeleteRescue(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, owner)
	return nil
}

// UploadPicture stores the image blob and points the rescue's image
// field at its public URL.
func (s *Service) UploadPicture(ctx context.Context, id string, file io.Reader, size int64, filename, contentType string) (string, error) {
	if file == nil || filename == "" {
		return "", fmt.Errorf("no file selected for uploading: %w", models.ErrBadRequest)
	}

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	current, err := s.store.GetRescue(ctx, id)
	if err != nil {
		return "", err
	}

	key := store.NewObjectKey(store.RescuePicturePrefix, filename)
	url, err := s.files.Upload(ctx, key, file, size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload rescue picture: %w", err)
	}
	err = s.store.UpdateRescueFields(ctx, id, map[string]interface{}{
		"image":     url,
		"updatedAt": time.Now(),
	})
	if err != nil {
		return "", err
	}
	s.invalidate(ctx, current.Email)
	return url, nil
}

func (s *Service) invalidate(ctx context.Context, owner string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, owner)
	}
}
