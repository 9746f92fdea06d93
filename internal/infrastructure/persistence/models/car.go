package models

import (
	"github.com/carhive/backend/internal/domain/listing"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CarModel is the persistence model for the Car domain entity.
// Tags and Images are stored as native Postgres text arrays so that
// searches can match individual tag elements.
type CarModel struct {
	BaseModel
	Title       string         `gorm:"type:varchar(200);not null"`
	Description string         `gorm:"type:text;not null"`
	Tags        pq.StringArray `gorm:"type:text[];not null"`
	Images      pq.StringArray `gorm:"type:text[];not null"`
	OwnerID     uuid.UUID      `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (CarModel) TableName() string {
	return "cars"
}

// ToDomain converts the persistence model to a domain Car entity.
func (m *CarModel) ToDomain() *listing.Car {
	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)
	images := make([]string, len(m.Images))
	copy(images, m.Images)

	return &listing.Car{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
		Tags:        tags,
		Images:      images,
		OwnerID:     m.OwnerID,
	}
}

// FromDomain populates the persistence model from a domain Car entity.
func (m *CarModel) FromDomain(c *listing.Car) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Title = c.Title
	m.Description = c.Description
	m.Tags = pq.StringArray(c.Tags)
	m.Images = pq.StringArray(c.Images)
	m.OwnerID = c.OwnerID
}
