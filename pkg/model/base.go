package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the identifier and audit columns shared by every persisted
// entity: uuid primary key, creation metadata, optional update metadata and an
// optional soft-delete timestamp. Deletes are hard; deleted_date exists for
// schema compatibility only.
type Base struct {
	ID          string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	CreatedDate time.Time  `gorm:"column:created_date" json:"createdDate"`
	CreatedBy   string     `gorm:"column:created_by" json:"createdBy,omitempty"`
	UpdatedDate *time.Time `gorm:"column:updated_date" json:"updatedDate,omitempty"`
	UpdatedBy   string     `gorm:"column:updated_by" json:"updatedBy,omitempty"`
	DeletedDate *time.Time `gorm:"column:deleted_date" json:"-"`
}

// BeforeCreate assigns a generated uuid when the caller did not supply one.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// StampCreated records creation metadata.
func (b *Base) StampCreated(actor string, at time.Time) {
	b.CreatedBy = actor
	b.CreatedDate = at
}

// StampUpdated records update metadata.
func (b *Base) StampUpdated(actor string, at time.Time) {
	b.UpdatedBy = actor
	t := at
	b.UpdatedDate = &t
}
