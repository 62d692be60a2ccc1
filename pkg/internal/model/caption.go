package model

import (
	"time"
)

// FileMessage is a guest caption attached to one uploaded object. Rows are
// joined to blob objects by exact key match; there is no foreign key into the
// blob store, by design.
type FileMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// ObjectKey is the generated blob key, unique per upload.
	ObjectKey string `gorm:"size:512;uniqueIndex" json:"object_key"`
	Message   string `gorm:"type:text"            json:"message"`
	CreatedAt time.Time
}

// TableName keeps the table name used by earlier deployments.
func (FileMessage) TableName() string {
	return "file_messages"
}
