package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a user-managed tag for stock items. Items reference it by
// name (free text), not by id — deleting a category blanks the field on
// the items that used it.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }
