package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CareFile is the persisted metadata row for an uploaded document or media
// item. The extracted text itself lives in the in-process knowledge store;
// only an excerpt survives a restart.
type CareFile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index:idx_care_file_scope,priority:1" json:"user_id"`
	ElderID     *uuid.UUID     `gorm:"type:uuid;index:idx_care_file_scope,priority:2" json:"elder_id,omitempty"`
	Filename    string         `gorm:"column:filename;not null" json:"filename"`
	Category    string         `gorm:"column:category;not null" json:"category"`
	MimeType    string         `gorm:"column:mime_type" json:"mime_type"`
	StoragePath string         `gorm:"column:storage_path" json:"storage_path,omitempty"`
	TextExcerpt string         `gorm:"column:text_excerpt" json:"text_excerpt,omitempty"`
	Extra       datatypes.JSON `gorm:"column:extra" json:"extra,omitempty"`
	CreatedAt   time.Time      `gorm:"not null" json:"created_at"`
}

func (CareFile) TableName() string { return "care_files" }
