package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
	"charity-pay.backend/internal/domain/gateway"
	"charity-pay.backend/internal/domain/repositories"
	"charity-pay.backend/pkg/logger"
)

// OnboardingUsecase drives an organization from registered to able to accept
// payments: merchant creation at the provider, KYC document uploads and
// submission for review.
type OnboardingUsecase struct {
	orgRepo repositories.OrganizationRepository
	docRepo repositories.DocumentRepository
	gateway gateway.Client
}

// NewOnboardingUsecase creates a new onboarding usecase
func NewOnboardingUsecase(
	orgRepo repositories.OrganizationRepository,
	docRepo repositories.DocumentRepository,
	gatewayClient gateway.Client,
) *OnboardingUsecase {
	return &OnboardingUsecase{
		orgRepo: orgRepo,
		docRepo: docRepo,
		gateway: gatewayClient,
	}
}

// InitiateRegistration validates and stores the merchant identity fields,
// creates the remote merchant and advances the organization to
// MerchantApproved. A failed creation attempt transitions the organization
// to Rejected with the reason recorded, then the failure is returned to the
// caller; the organization must not be left silently stuck in Pending.
func (u *OnboardingUsecase) InitiateRegistration(ctx context.Context, orgID uuid.UUID, input *entities.RegistrationInput) (*entities.OnboardingStatusResponse, error) {
	org, err := u.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if org.ApprovalState != entities.ApprovalStatePending {
		return nil, domainerrors.Conflict("merchant onboarding has already started")
	}

	if strings.TrimSpace(input.LegalBusinessName) == "" {
		return nil, domainerrors.BadRequest("legal business name is required")
	}
	if err := entities.ValidateTaxID(input.TaxID); err != nil {
		return nil, err
	}
	if err := entities.ValidateBankAccount(input.BankAccount); err != nil {
		return nil, err
	}

	org.LegalBusinessName.SetValid(strings.TrimSpace(input.LegalBusinessName))
	org.TaxID.SetValid(strings.TrimSpace(input.TaxID))
	org.BankAccount.SetValid(strings.ReplaceAll(strings.TrimSpace(input.BankAccount), " ", ""))
	if input.KrsNumber != "" {
		org.KrsNumber.SetValid(strings.TrimSpace(input.KrsNumber))
	}

	result, err := u.gateway.CreateMerchant(ctx, org)
	if err != nil {
		logger.Error(ctx, "Merchant creation failed",
			zap.String("organization_id", orgID.String()),
			zap.Error(err),
		)
		// Compensating rejection: surface the failed attempt as a
		// terminal, auditable outcome.
		if terr := org.TransitionTo(entities.ApprovalStateRejected, "merchant creation failed: "+err.Error()); terr != nil {
			logger.Error(ctx, "Failed to record rejection", zap.Error(terr))
		} else if perr := u.orgRepo.Update(ctx, org); perr != nil {
			logger.Error(ctx, "Failed to persist rejection", zap.Error(perr))
		}
		return nil, err
	}

	if err := org.AttachRemoteMerchant(result.RemoteMerchantID); err != nil {
		return nil, err
	}
	if err := org.TransitionTo(entities.ApprovalStateMerchantApproved, "remote merchant created: "+result.RemoteMerchantID); err != nil {
		return nil, err
	}
	if err := u.orgRepo.Update(ctx, org); err != nil {
		return nil, err
	}

	logger.Info(ctx, "Remote merchant created",
		zap.String("organization_id", orgID.String()),
		zap.String("remote_merchant_id", result.RemoteMerchantID),
	)
	return u.statusResponse(org), nil
}

// UploadKycDocument records an uploaded KYC file and submits it to the
// provider. The document is only persisted when the remote upload succeeds,
// so a failed call leaves no local state behind.
func (u *OnboardingUsecase) UploadKycDocument(ctx context.Context, orgID uuid.UUID, input *entities.DocumentUploadInput) (*entities.Document, error) {
	org, err := u.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if !org.RemoteMerchantID.Valid {
		return nil, domainerrors.BadRequest("merchant onboarding has not started")
	}
	if !input.Type.IsValid() {
		return nil, domainerrors.BadRequest("unknown document type")
	}

	doc := &entities.Document{
		ID:               uuid.New(),
		OrganizationID:   org.ID,
		FileName:         input.FileName,
		OriginalFileName: input.OriginalFileName,
		Type:             input.Type,
		MimeType:         input.MimeType,
		FileSize:         int64(len(input.Content)),
		StoragePath:      input.StoragePath,
	}

	result, err := u.gateway.UploadDocument(ctx, org.RemoteMerchantID.String, doc, input.Content)
	if err != nil {
		logger.Error(ctx, "Document upload failed",
			zap.String("organization_id", orgID.String()),
			zap.String("document_type", string(input.Type)),
			zap.Error(err),
		)
		return nil, err
	}

	if isAcceptedStatus(result.Status) {
		doc.MarkVerified("accepted by provider: "+result.RemoteDocumentID, timeNow())
	}

	if err := u.docRepo.Create(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// SubmitForApproval submits the organization for KYC review once all
// required document types are uploaded. A missing document is a legitimate
// negative result, not an error: the state is left untouched and false is
// returned.
func (u *OnboardingUsecase) SubmitForApproval(ctx context.Context, orgID uuid.UUID) (bool, error) {
	org, err := u.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return false, err
	}
	if org.ApprovalState != entities.ApprovalStatePending && org.ApprovalState != entities.ApprovalStateMerchantApproved {
		return false, &entities.TransitionError{From: org.ApprovalState, To: entities.ApprovalStateKycSubmitted}
	}
	if !org.HasMerchantDetails() {
		return false, domainerrors.BadRequest("merchant details must be set before submitting for review")
	}

	if missing := org.MissingDocumentTypes(); len(missing) > 0 {
		logger.Info(ctx, "Submission blocked by missing documents",
			zap.String("organization_id", orgID.String()),
			zap.Any("missing_types", missing),
		)
		return false, nil
	}

	if err := org.TransitionTo(entities.ApprovalStateKycSubmitted, "submitted for KYC review"); err != nil {
		return false, err
	}
	if err := u.orgRepo.Update(ctx, org); err != nil {
		return false, err
	}
	return true, nil
}

// GetOnboardingStatus returns a snapshot of the onboarding state.
func (u *OnboardingUsecase) GetOnboardingStatus(ctx context.Context, orgID uuid.UUID) (*entities.OnboardingStatusResponse, error) {
	org, err := u.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return u.statusResponse(org), nil
}

func (u *OnboardingUsecase) statusResponse(org *entities.Organization) *entities.OnboardingStatusResponse {
	uploaded := make([]entities.DocumentType, 0, len(org.Documents))
	seen := make(map[entities.DocumentType]bool)
	for _, d := range org.Documents {
		if !seen[d.Type] {
			seen[d.Type] = true
			uploaded = append(uploaded, d.Type)
		}
	}

	return &entities.OnboardingStatusResponse{
		OrganizationID:   org.ID,
		ApprovalState:    org.ApprovalState,
		RemoteMerchantID: org.RemoteMerchantID,
		AdminNotes:       org.AdminNotes,
		UploadedTypes:    uploaded,
		MissingTypes:     org.MissingDocumentTypes(),
		Message:          approvalStateMessage(org.ApprovalState),
	}
}

func approvalStateMessage(state entities.ApprovalState) string {
	switch state {
	case entities.ApprovalStatePending:
		return "Merchant onboarding has not been completed"
	case entities.ApprovalStateKycSubmitted:
		return "Your application is under KYC review"
	case entities.ApprovalStateMerchantApproved:
		return "Your merchant account is approved and awaiting activation"
	case entities.ApprovalStateActive:
		return "Your organization can accept donations"
	case entities.ApprovalStateRejected:
		return "Your merchant application was rejected"
	case entities.ApprovalStateSuspended:
		return "Your merchant account has been suspended"
	default:
		return ""
	}
}

func isAcceptedStatus(status string) bool {
	switch strings.ToUpper(status) {
	case "VERIFIED", "ACCEPTED", "APPROVED", "SUCCESS":
		return true
	}
	return false
}
