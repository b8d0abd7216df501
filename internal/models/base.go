package models

import (
	"time"

	"github.com/Gangulr/finace/internal/uuid"

	"gorm.io/gorm"
)

// Base contains the identity and timestamp columns shared by every stored
// document. Ids are UUIDv7 strings in both the SQL and the MongoDB backends.
type Base struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" bson:"_id" json:"_id"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

// BeforeCreate hook generates a UUIDv7 for new rows
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.New()
	}
	return nil
}

// RecordID returns the document id.
func (b *Base) RecordID() string { return b.ID }

// AssignID sets the document id.
func (b *Base) AssignID(id string) { b.ID = id }

// Stamp sets CreatedAt on first write and UpdatedAt on every write. The gorm
// backend maintains these columns itself; document stores call Stamp.
func (b *Base) Stamp(now time.Time) {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

// Record is implemented by every owned document (Budget, Expense, Income).
type Record interface {
	RecordID() string
	AssignID(id string)
	Stamp(now time.Time)
	Owner() string
}
