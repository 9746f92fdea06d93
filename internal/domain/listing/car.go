package listing

import (
	"strings"

	"github.com/carhive/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Car represents a car listing owned by exactly one user. The owner is
// set at creation and never changes; every read and mutation elsewhere
// in the system is scoped to it.
type Car struct {
	shared.BaseEntity
	Title       string
	Description string
	Tags        []string
	Images      []string
	OwnerID     uuid.UUID
}

// NewCar creates a car listing with an initial (possibly empty) image set
func NewCar(ownerID uuid.UUID, title, description string, tags, images []string) (*Car, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateDescription(description); err != nil {
		return nil, err
	}

	if tags == nil {
		tags = []string{}
	}
	if images == nil {
		images = []string{}
	}

	return &Car{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Description: description,
		Tags:        tags,
		Images:      images,
		OwnerID:     ownerID,
	}, nil
}

// SetTitle replaces the title
func (c *Car) SetTitle(title string) error {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}

	c.Title = title
	c.Touch()
	return nil
}

// SetDescription replaces the description
func (c *Car) SetDescription(description string) error {
	if err := validateDescription(description); err != nil {
		return err
	}

	c.Description = description
	c.Touch()
	return nil
}

// SetTags replaces the full tag sequence. Duplicates are allowed and
// order is kept as given.
func (c *Car) SetTags(tags []string) {
	if tags == nil {
		tags = []string{}
	}
	c.Tags = tags
	c.Touch()
}

// ReplaceImages swaps the image sequence for a new one. Callers decide
// whether an empty input means "keep existing"; this method always
// replaces.
func (c *Car) ReplaceImages(urls []string) {
	if urls == nil {
		urls = []string{}
	}
	c.Images = urls
	c.Touch()
}

func validateTitle(title string) error {
	if len(title) < 3 {
		return shared.NewDomainError("INVALID_TITLE", "Title must be at least 3 characters")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	return nil
}

func validateDescription(description string) error {
	if len(description) < 10 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description must be at least 10 characters")
	}
	if len(description) > 5000 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 5000 characters")
	}
	return nil
}
