package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name              string    `gorm:"type:varchar(255);not null"`
	ContactEmail      string    `gorm:"type:varchar(255);not null"`
	LegalBusinessName *string   `gorm:"type:varchar(255)"`
	TaxID             *string   `gorm:"type:varchar(20)"`
	KrsNumber         *string   `gorm:"type:varchar(20)"`
	BankAccount       *string   `gorm:"type:varchar(40)"`
	RemoteMerchantID  *string   `gorm:"type:varchar(64);uniqueIndex"`
	ApprovalState     string    `gorm:"type:varchar(32);not null;default:'pending'"`
	AdminNotes        *string   `gorm:"type:text"`
	Documents         []Document `gorm:"foreignKey:OrganizationID"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}
