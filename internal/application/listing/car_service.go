package listing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/carhive/backend/internal/domain/listing"
	"github.com/carhive/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// imageExtPattern matches the accepted image filename extensions
var imageExtPattern = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif)$`)

// CarServiceConfig holds tunables for the car service
type CarServiceConfig struct {
	// MaxImageSize is the per-file upload cap in bytes
	MaxImageSize int64
}

// DefaultCarServiceConfig returns the default configuration
func DefaultCarServiceConfig() CarServiceConfig {
	return CarServiceConfig{
		MaxImageSize: 5 << 20,
	}
}

// CarService implements the car listing use cases: owner-scoped CRUD,
// free-text search, and image uploads.
type CarService struct {
	carRepo listing.CarRepository
	images  ImageStore
	config  CarServiceConfig
	logger  *zap.Logger
}

// NewCarService creates a new CarService
func NewCarService(
	carRepo listing.CarRepository,
	images ImageStore,
	config CarServiceConfig,
	logger *zap.Logger,
) *CarService {
	if config.MaxImageSize <= 0 {
		config.MaxImageSize = DefaultCarServiceConfig().MaxImageSize
	}
	return &CarService{
		carRepo: carRepo,
		images:  images,
		config:  config,
		logger:  logger,
	}
}

// Create validates the payload, uploads any images, and persists a new
// car for the owner. Nothing is persisted if an upload fails.
func (s *CarService) Create(ctx context.Context, ownerID uuid.UUID, input CreateCarInput) (*CarDTO, error) {
	tags, source := listing.NormalizeTags(input.Tags)

	urls, err := s.uploadImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}

	car, err := listing.NewCar(ownerID, input.Title, input.Description, tags, urls)
	if err != nil {
		return nil, err
	}

	if err := s.carRepo.Create(ctx, car); err != nil {
		s.logger.Error("Failed to create car", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("Car created",
		zap.String("car_id", car.ID.String()),
		zap.String("owner_id", ownerID.String()),
		zap.String("tag_source", source.String()),
		zap.Int("images", len(urls)),
	)

	dto := NewCarDTO(car)
	return &dto, nil
}

// List returns every car of the owner matching the optional search
// term, newest first.
func (s *CarService) List(ctx context.Context, ownerID uuid.UUID, search string) ([]CarDTO, error) {
	filter := listing.NewListFilter(ownerID, search)

	cars, err := s.carRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list cars", zap.Error(err))
		return nil, shared.ErrInternal
	}

	return NewCarDTOs(cars), nil
}

// Get returns one car of the owner
func (s *CarService) Get(ctx context.Context, ownerID, carID uuid.UUID) (*CarDTO, error) {
	car, err := s.findOwned(ctx, carID, ownerID)
	if err != nil {
		return nil, err
	}

	dto := NewCarDTO(car)
	return &dto, nil
}

// Update applies a partial update to one car of the owner. Absent
// fields stay untouched; images replace only when new files were sent.
func (s *CarService) Update(ctx context.Context, ownerID, carID uuid.UUID, input UpdateCarInput) (*CarDTO, error) {
	car, err := s.findOwned(ctx, carID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if err := car.SetTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := car.SetDescription(*input.Description); err != nil {
			return nil, err
		}
	}
	if input.Tags.Present() {
		tags, _ := listing.NormalizeTags(input.Tags)
		car.SetTags(tags)
	}

	urls, err := s.uploadImages(ctx, input.Images)
	if err != nil {
		return nil, err
	}
	if len(urls) > 0 {
		car.ReplaceImages(urls)
	}

	if err := s.carRepo.Update(ctx, car); err != nil {
		if de, ok := err.(*shared.DomainError); ok {
			return nil, de
		}
		s.logger.Error("Failed to update car", zap.Error(err))
		return nil, shared.ErrInternal
	}

	s.logger.Info("Car updated",
		zap.String("car_id", car.ID.String()),
		zap.String("owner_id", ownerID.String()),
	)

	dto := NewCarDTO(car)
	return &dto, nil
}

// Delete removes one car of the owner. Deletion is terminal.
func (s *CarService) Delete(ctx context.Context, ownerID, carID uuid.UUID) error {
	if _, err := s.findOwned(ctx, carID, ownerID); err != nil {
		return err
	}

	if err := s.carRepo.Delete(ctx, carID, ownerID); err != nil {
		if de, ok := err.(*shared.DomainError); ok {
			return de
		}
		s.logger.Error("Failed to delete car", zap.Error(err))
		return shared.ErrInternal
	}

	s.logger.Info("Car deleted",
		zap.String("car_id", carID.String()),
		zap.String("owner_id", ownerID.String()),
	)
	return nil
}

// findOwned is the ownership guard: one lookup scoped to both ID and
// owner. A car that exists under another owner is reported exactly
// like a missing one.
func (s *CarService) findOwned(ctx context.Context, carID, ownerID uuid.UUID) (*listing.Car, error) {
	car, err := s.carRepo.FindByIDAndOwner(ctx, carID, ownerID)
	if err != nil {
		if de, ok := err.(*shared.DomainError); ok && de.Code == shared.ErrNotFound.Code {
			return nil, shared.ErrNotFound
		}
		s.logger.Error("Failed to look up car", zap.Error(err))
		return nil, shared.ErrInternal
	}
	return car, nil
}

// uploadImages validates and uploads all files of one request in
// parallel, preserving input order in the returned URLs. The first
// failure cancels the remaining uploads and aborts the request.
func (s *CarService) uploadImages(ctx context.Context, files []ImageUpload) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	for _, f := range files {
		if err := s.validateImage(f); err != nil {
			return nil, err
		}
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			body, err := f.Open()
			if err != nil {
				return shared.NewDomainError(shared.ErrUploadFailed.Code, "Failed to read uploaded file")
			}
			defer body.Close()

			url, err := s.images.Upload(gctx, s.objectKey(f.Filename), body, f.ContentType)
			if err != nil {
				s.logger.Error("Image upload failed",
					zap.String("filename", f.Filename),
					zap.Error(err),
				)
				return shared.ErrUploadFailed
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return urls, nil
}

// validateImage enforces the per-file upload contract: 5 MiB cap (by
// config), image filename extension, image content type.
func (s *CarService) validateImage(f ImageUpload) error {
	if f.Size > s.config.MaxImageSize {
		return shared.NewDomainError(shared.ErrUploadRejected.Code,
			fmt.Sprintf("File %q exceeds the %d MiB limit", f.Filename, s.config.MaxImageSize>>20))
	}
	if !imageExtPattern.MatchString(f.Filename) {
		return shared.NewDomainError(shared.ErrUploadRejected.Code,
			"Only .jpg, .jpeg, .png and .gif files are allowed")
	}
	if f.ContentType != "" && !strings.HasPrefix(f.ContentType, "image/") {
		return shared.NewDomainError(shared.ErrUploadRejected.Code,
			fmt.Sprintf("Content type %q is not an image", f.ContentType))
	}
	return nil
}

// objectKey builds a collision-resistant storage key that keeps the
// original extension.
func (s *CarService) objectKey(filename string) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("cars/%d-%s%s", time.Now().UnixMilli(), hex.EncodeToString(buf), ext)
}
