package types

import (
	"time"

	"github.com/google/uuid"
)

// CareMessage is one turn of the per-scope conversation log. Rows are
// append-only; they are removed only by bulk scope deletion.
type CareMessage struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_care_message_scope,priority:1" json:"user_id"`
	ElderID   *uuid.UUID `gorm:"type:uuid;index:idx_care_message_scope,priority:2" json:"elder_id,omitempty"`
	Role      string     `gorm:"column:role;not null" json:"role"`
	Content   string     `gorm:"column:content;not null" json:"content"`
	CreatedAt time.Time  `gorm:"not null;index" json:"created_at"`
}

func (CareMessage) TableName() string { return "care_messages" }
