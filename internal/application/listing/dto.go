package listing

import (
	"io"
	"time"

	"github.com/carhive/backend/internal/domain/listing"
)

// ImageUpload is one file from a multipart request. Open returns a
// fresh reader for the file content; the service closes it.
type ImageUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// CreateCarInput contains the normalized-enough create payload. Tags
// keep their loose request shape; the service normalizes them.
type CreateCarInput struct {
	Title       string
	Description string
	Tags        listing.TagInput
	Images      []ImageUpload
}

// UpdateCarInput carries a partial update. Nil fields and absent tags
// leave the stored values untouched; images only replace when at least
// one file was sent.
type UpdateCarInput struct {
	Title       *string
	Description *string
	Tags        listing.TagInput
	Images      []ImageUpload
}

// CarDTO is the serializable view of a car listing
type CarDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCarDTO converts a domain car to its serializable view
func NewCarDTO(car *listing.Car) CarDTO {
	return CarDTO{
		ID:          car.ID.String(),
		Title:       car.Title,
		Description: car.Description,
		Tags:        car.Tags,
		Images:      car.Images,
		OwnerID:     car.OwnerID.String(),
		CreatedAt:   car.CreatedAt,
		UpdatedAt:   car.UpdatedAt,
	}
}

// NewCarDTOs converts a slice of domain cars
func NewCarDTOs(cars []*listing.Car) []CarDTO {
	out := make([]CarDTO, len(cars))
	for i, car := range cars {
		out[i] = NewCarDTO(car)
	}
	return out
}
