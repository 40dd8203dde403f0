package models

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	OrganizationID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FileName          string    `gorm:"type:varchar(255);not null"`
	OriginalFileName  string    `gorm:"type:varchar(255);not null"`
	Type              string    `gorm:"type:varchar(50);not null"`
	MimeType          string    `gorm:"type:varchar(100);not null"`
	FileSize          int64     `gorm:"not null"`
	StoragePath       string    `gorm:"type:text;not null"`
	IsVerified        bool      `gorm:"not null;default:false"`
	VerificationNotes *string   `gorm:"type:text"`
	VerifiedAt        *time.Time
	CreatedAt         time.Time
}
