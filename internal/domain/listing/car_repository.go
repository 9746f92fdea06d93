package listing

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// ListFilter narrows a car listing query. OwnerID is always enforced;
// Search is optional and already canonicalized by NewListFilter.
type ListFilter struct {
	OwnerID uuid.UUID
	Search  string
}

// NewListFilter builds a filter for one owner. The search term is
// trimmed first; a term that is empty after trimming means no search.
func NewListFilter(ownerID uuid.UUID, search string) ListFilter {
	return ListFilter{
		OwnerID: ownerID,
		Search:  strings.TrimSpace(search),
	}
}

// HasSearch reports whether a search term survives canonicalization
func (f ListFilter) HasSearch() bool {
	return f.Search != ""
}

// CarRepository defines the interface for car persistence. Every
// lookup and mutation is scoped to an owner; an ID that exists under a
// different owner behaves exactly like a missing ID.
type CarRepository interface {
	// Create persists a new car
	Create(ctx context.Context, car *Car) error

	// Update persists changes to an existing car, scoped to its owner
	Update(ctx context.Context, car *Car) error

	// Delete removes a car by ID and owner
	Delete(ctx context.Context, id, ownerID uuid.UUID) error

	// FindByIDAndOwner finds one car by ID and owner
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Car, error)

	// List returns all cars matching the filter, newest first
	List(ctx context.Context, filter ListFilter) ([]*Car, error)
}
