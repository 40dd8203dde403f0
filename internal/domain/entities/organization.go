package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	domainerrors "charity-pay.backend/internal/domain/errors"
)

// Organization represents a charity organization collecting donations.
// The merchant identity fields stay empty until onboarding starts and are
// immutable once the remote merchant has been created.
type Organization struct {
	ID                uuid.UUID     `json:"id"`
	UserID            uuid.UUID     `json:"userId"`
	Name              string        `json:"name"`
	ContactEmail      string        `json:"contactEmail"`
	LegalBusinessName null.String   `json:"legalBusinessName,omitempty"`
	TaxID             null.String   `json:"taxId,omitempty"`
	KrsNumber         null.String   `json:"krsNumber,omitempty"`
	BankAccount       null.String   `json:"bankAccount,omitempty"`
	RemoteMerchantID  null.String   `json:"remoteMerchantId,omitempty"`
	ApprovalState     ApprovalState `json:"approvalState"`
	AdminNotes        null.String   `json:"adminNotes,omitempty"`
	Documents         []*Document   `json:"documents,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
	DeletedAt         null.Time     `json:"-"`
}

// TransitionTo moves the organization to the target approval state, recording
// the reason in the audit notes. The transition is validated against the
// state machine first; on rejection nothing is mutated.
func (o *Organization) TransitionTo(target ApprovalState, note string) error {
	next, err := o.ApprovalState.Transition(target)
	if err != nil {
		return err
	}
	o.ApprovalState = next
	o.AdminNotes.SetValid(note)
	o.UpdatedAt = time.Now()
	return nil
}

// AttachRemoteMerchant records the provider-assigned merchant id. It may be
// set exactly once and is never cleared.
func (o *Organization) AttachRemoteMerchant(remoteID string) error {
	if o.RemoteMerchantID.Valid {
		if o.RemoteMerchantID.String == remoteID {
			return nil
		}
		return domainerrors.ErrMerchantAttached
	}
	o.RemoteMerchantID.SetValid(remoteID)
	o.UpdatedAt = time.Now()
	return nil
}

// HasMerchantDetails reports whether the fields required before merchant
// creation are all present.
func (o *Organization) HasMerchantDetails() bool {
	return o.LegalBusinessName.Valid && o.TaxID.Valid && o.BankAccount.Valid
}

// HasDocumentType reports whether at least one uploaded document declares
// the given type.
func (o *Organization) HasDocumentType(t DocumentType) bool {
	for _, d := range o.Documents {
		if d.Type == t {
			return true
		}
	}
	return false
}

// MissingDocumentTypes returns the required document types that have not been
// uploaded yet.
func (o *Organization) MissingDocumentTypes() []DocumentType {
	var missing []DocumentType
	for _, t := range RequiredDocumentTypes() {
		if !o.HasDocumentType(t) {
			missing = append(missing, t)
		}
	}
	return missing
}

// RegistrationInput represents input for starting merchant onboarding
type RegistrationInput struct {
	LegalBusinessName string `json:"legalBusinessName" binding:"required,min=2,max=255"`
	TaxID             string `json:"taxId" binding:"required"`
	KrsNumber         string `json:"krsNumber,omitempty"`
	BankAccount       string `json:"bankAccount" binding:"required"`
}

// DocumentUploadInput represents an uploaded KYC file. Content holds the
// already-read bytes; StoragePath is the opaque reference returned by the
// file-storage collaborator.
type DocumentUploadInput struct {
	FileName         string
	OriginalFileName string
	Type             DocumentType
	MimeType         string
	StoragePath      string
	Content          []byte
}

// OnboardingStatusResponse represents an onboarding state snapshot
type OnboardingStatusResponse struct {
	OrganizationID   uuid.UUID      `json:"organizationId"`
	ApprovalState    ApprovalState  `json:"approvalState"`
	RemoteMerchantID null.String    `json:"remoteMerchantId,omitempty"`
	AdminNotes       null.String    `json:"adminNotes,omitempty"`
	UploadedTypes    []DocumentType `json:"uploadedDocumentTypes"`
	MissingTypes     []DocumentType `json:"missingDocumentTypes"`
	Message          string         `json:"message"`
}
