package types

import (
	"time"

	"github.com/google/uuid"
)

type Reminder struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	ElderID        *uuid.UUID `gorm:"type:uuid;index" json:"elder_id,omitempty"`
	PatientName    string     `gorm:"column:patient_name;not null" json:"patient_name"`
	MedicationName string     `gorm:"column:medication_name;not null" json:"medication_name"`
	Dosage         string     `gorm:"column:dosage;not null" json:"dosage"`
	SendTime       time.Time  `gorm:"column:send_time;not null" json:"send_time"`
	PhoneNumber    string     `gorm:"column:phone_number;not null" json:"phone_number"`
	Frequency      string     `gorm:"column:frequency" json:"frequency,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
}

func (Reminder) TableName() string { return "reminders" }
