package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// DocumentType represents the declared purpose of an uploaded KYC artifact
type DocumentType string

const (
	DocumentTypeCorporateRegistration DocumentType = "corporate_registration"
	DocumentTypeGovernmentID          DocumentType = "government_id"
	DocumentTypeBankStatement         DocumentType = "bank_statement"
	DocumentTypeOther                 DocumentType = "other"
)

// RequiredDocumentTypes is the minimum set the provider expects before an
// organization may be submitted for KYC review.
func RequiredDocumentTypes() []DocumentType {
	return []DocumentType{
		DocumentTypeCorporateRegistration,
		DocumentTypeGovernmentID,
		DocumentTypeBankStatement,
	}
}

// Document represents an uploaded KYC artifact. Records are immutable after
// creation except for the verification fields, and are never deleted so the
// audit trail survives.
type Document struct {
	ID                uuid.UUID    `json:"id"`
	OrganizationID    uuid.UUID    `json:"organizationId"`
	FileName          string       `json:"fileName"`
	OriginalFileName  string       `json:"originalFileName"`
	Type              DocumentType `json:"type"`
	MimeType          string       `json:"mimeType"`
	FileSize          int64        `json:"fileSize"`
	StoragePath       string       `json:"storagePath"`
	IsVerified        bool         `json:"isVerified"`
	VerificationNotes null.String  `json:"verificationNotes,omitempty"`
	VerifiedAt        null.Time    `json:"verifiedAt,omitempty"`
	CreatedAt         time.Time    `json:"createdAt"`
}

// MarkVerified records remote or manual acceptance of the document.
func (d *Document) MarkVerified(notes string, at time.Time) {
	d.IsVerified = true
	d.VerificationNotes.SetValid(notes)
	d.VerifiedAt.SetValid(at)
}

// IsValid reports whether the value is a known document type.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeCorporateRegistration, DocumentTypeGovernmentID,
		DocumentTypeBankStatement, DocumentTypeOther:
		return true
	}
	return false
}
