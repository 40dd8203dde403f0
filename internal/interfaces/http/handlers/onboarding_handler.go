package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"charity-pay.backend/internal/domain/entities"
	"charity-pay.backend/internal/interfaces/http/response"
)

// maxDocumentSize caps uploaded KYC files at 10 MiB
const maxDocumentSize = 10 << 20

// OnboardingService is the slice of the onboarding usecase the handler needs
type OnboardingService interface {
	InitiateRegistration(ctx context.Context, orgID uuid.UUID, input *entities.RegistrationInput) (*entities.OnboardingStatusResponse, error)
	UploadKycDocument(ctx context.Context, orgID uuid.UUID, input *entities.DocumentUploadInput) (*entities.Document, error)
	SubmitForApproval(ctx context.Context, orgID uuid.UUID) (bool, error)
	GetOnboardingStatus(ctx context.Context, orgID uuid.UUID) (*entities.OnboardingStatusResponse, error)
}

// OnboardingHandler handles merchant onboarding endpoints
type OnboardingHandler struct {
	onboardingUsecase OnboardingService
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingUsecase OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingUsecase: onboardingUsecase}
}

func orgIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "ERR_BAD_REQUEST", "invalid organization id")
		return uuid.Nil, false
	}
	return id, true
}

// InitiateRegistration submits the merchant identity fields and creates the
// remote merchant
// POST /api/v1/organizations/:id/onboarding/registration
func (h *OnboardingHandler) InitiateRegistration(c *gin.Context) {
	orgID, ok := orgIDParam(c)
	if !ok {
		return
	}

	var input entities.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "ERR_BAD_REQUEST", err.Error())
		return
	}

	status, err := h.onboardingUsecase.InitiateRegistration(c.Request.Context(), orgID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, status)
}

// UploadDocument accepts a KYC document as multipart form data
// POST /api/v1/organizations/:id/onboarding/documents
func (h *OnboardingHandler) UploadDocument(c *gin.Context) {
	orgID, ok := orgIDParam(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "ERR_BAD_REQUEST", "file is required")
		return
	}
	if fileHeader.Size > maxDocumentSize {
		response.ErrorWithStatus(c, http.StatusBadRequest, "ERR_BAD_REQUEST", "file too large")
		return
	}

	docType := entities.DocumentType(c.PostForm("type"))
	if !docType.IsValid() {
		response.ErrorWithStatus(c, http.StatusBadRequest, "ERR_BAD_REQUEST", "unknown document type")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, maxDocumentSize+1))
	if err != nil {
		response.Error(c, err)
		return
	}

	input := &entities.DocumentUploadInput{
		FileName:         uuid.New().String(),
		OriginalFileName: fileHeader.Filename,
		Type:             docType,
		MimeType:         fileHeader.Header.Get("Content-Type"),
		StoragePath:      c.PostForm("storagePath"),
		Content:          content,
	}

	doc, err := h.onboardingUsecase.UploadKycDocument(c.Request.Context(), orgID, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, doc)
}

// SubmitForApproval submits the organization for KYC review
// POST /api/v1/organizations/:id/onboarding/submit
func (h *OnboardingHandler) SubmitForApproval(c *gin.Context) {
	orgID, ok := orgIDParam(c)
	if !ok {
		return
	}

	submitted, err := h.onboardingUsecase.SubmitForApproval(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"submitted": submitted})
}

// GetStatus returns the onboarding state snapshot
// GET /api/v1/organizations/:id/onboarding/status
func (h *OnboardingHandler) GetStatus(c *gin.Context) {
	orgID, ok := orgIDParam(c)
	if !ok {
		return
	}

	status, err := h.onboardingUsecase.GetOnboardingStatus(c.Request.Context(), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, status)
}
