package types

import (
	"time"

	"github.com/google/uuid"
)

type Younger struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Relationship string    `gorm:"column:relationship;not null" json:"relationship"`
	Name         string    `gorm:"column:name;not null" json:"name"`
	Age          int       `gorm:"column:age" json:"age"`
	Email        string    `gorm:"column:email" json:"email"`
	Phone        string    `gorm:"column:phone" json:"phone"`
	Address      string    `gorm:"column:address" json:"address"`
	Notes        string    `gorm:"column:notes" json:"notes"`
	LastUpdated  time.Time `gorm:"column:last_updated;not null" json:"lastUpdated"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (Younger) TableName() string { return "youngers" }
