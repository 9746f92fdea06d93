package persistence

import (
	"context"
	"errors"

	"github.com/carhive/backend/internal/domain/listing"
	"github.com/carhive/backend/internal/domain/shared"
	"github.com/carhive/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCarRepository implements listing.CarRepository using GORM
type GormCarRepository struct {
	db *gorm.DB
}

// NewGormCarRepository creates a new GormCarRepository
func NewGormCarRepository(db *gorm.DB) *GormCarRepository {
	return &GormCarRepository{db: db}
}

// Create persists a new car
func (r *GormCarRepository) Create(ctx context.Context, car *listing.Car) error {
	var model models.CarModel
	model.FromDomain(car)
	return r.db.WithContext(ctx).Create(&model).Error
}

// Update persists changes to an existing car, scoped to its owner.
// The whole row is written; the service resolves which fields changed.
func (r *GormCarRepository) Update(ctx context.Context, car *listing.Car) error {
	var model models.CarModel
	model.FromDomain(car)

	result := r.db.WithContext(ctx).
		Model(&models.CarModel{}).
		Where("id = ? AND owner_id = ?", car.ID, car.OwnerID).
		Updates(map[string]any{
			"title":       model.Title,
			"description": model.Description,
			"tags":        model.Tags,
			"images":      model.Images,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a car by ID and owner
func (r *GormCarRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.CarModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByIDAndOwner finds one car by ID and owner. A car held by
// another owner is reported as not found.
func (r *GormCarRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*listing.Car, error) {
	var model models.CarModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns all cars of the owner, newest first. When the filter
// carries a search term it matches the title or description as a
// substring, or a tag element exactly.
func (r *GormCarRepository) List(ctx context.Context, filter listing.ListFilter) ([]*listing.Car, error) {
	query := r.db.WithContext(ctx).
		Model(&models.CarModel{}).
		Where("owner_id = ?", filter.OwnerID)

	if filter.HasSearch() {
		pattern := "%" + filter.Search + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR ? = ANY(tags)",
			pattern, pattern, filter.Search,
		)
	}

	var rows []models.CarModel
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	cars := make([]*listing.Car, len(rows))
	for i := range rows {
		cars[i] = rows[i].ToDomain()
	}
	return cars, nil
}
