package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
)

func TestOrganizationRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createOrganizationTable(t, db)
	createDocumentTable(t, db)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	org := &entities.Organization{
		UserID:       uuid.New(),
		Name:         "Dobra Fundacja",
		ContactEmail: "kontakt@dobrafundacja.pl",
	}
	require.NoError(t, repo.Create(ctx, org))
	require.NotEqual(t, uuid.Nil, org.ID)
	require.Equal(t, entities.ApprovalStatePending, org.ApprovalState)

	byID, err := repo.GetByID(ctx, org.ID)
	require.NoError(t, err)
	require.Equal(t, org.ID, byID.ID)
	require.Equal(t, "Dobra Fundacja", byID.Name)
	require.Equal(t, entities.ApprovalStatePending, byID.ApprovalState)
	require.False(t, byID.RemoteMerchantID.Valid)

	byUser, err := repo.GetByUserID(ctx, org.UserID)
	require.NoError(t, err)
	require.Equal(t, org.ID, byUser.ID)
}

func TestOrganizationRepository_UpdateMerchantFields(t *testing.T) {
	db := newTestDB(t)
	createOrganizationTable(t, db)
	createDocumentTable(t, db)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	org := &entities.Organization{
		UserID:       uuid.New(),
		Name:         "Dobra Fundacja",
		ContactEmail: "kontakt@dobrafundacja.pl",
	}
	require.NoError(t, repo.Create(ctx, org))

	org.LegalBusinessName = null.StringFrom("Fundacja Dobra Sprawa")
	org.TaxID = null.StringFrom("1234567890")
	org.BankAccount = null.StringFrom("PL61109010140000071219812874")
	require.NoError(t, org.AttachRemoteMerchant("MCH-001"))
	require.NoError(t, org.TransitionTo(entities.ApprovalStateMerchantApproved, "remote merchant created"))
	require.NoError(t, repo.Update(ctx, org))

	got, err := repo.GetByRemoteMerchantID(ctx, "MCH-001")
	require.NoError(t, err)
	require.Equal(t, org.ID, got.ID)
	require.Equal(t, entities.ApprovalStateMerchantApproved, got.ApprovalState)
	require.Equal(t, "Fundacja Dobra Sprawa", got.LegalBusinessName.String)
	require.Equal(t, "remote merchant created", got.AdminNotes.String)
}

func TestOrganizationRepository_GetWithDocuments(t *testing.T) {
	db := newTestDB(t)
	createOrganizationTable(t, db)
	createDocumentTable(t, db)
	orgRepo := NewOrganizationRepository(db)
	docRepo := NewDocumentRepository(db)
	ctx := context.Background()

	org := &entities.Organization{
		UserID:       uuid.New(),
		Name:         "Dobra Fundacja",
		ContactEmail: "kontakt@dobrafundacja.pl",
	}
	require.NoError(t, orgRepo.Create(ctx, org))

	doc := &entities.Document{
		OrganizationID:   org.ID,
		FileName:         "f3a1.pdf",
		OriginalFileName: "statement.pdf",
		Type:             entities.DocumentTypeBankStatement,
		MimeType:         "application/pdf",
		FileSize:         1024,
		StoragePath:      "kyc/f3a1.pdf",
	}
	require.NoError(t, docRepo.Create(ctx, doc))

	got, err := orgRepo.GetByID(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, got.Documents, 1)
	require.Equal(t, entities.DocumentTypeBankStatement, got.Documents[0].Type)
	require.True(t, got.HasDocumentType(entities.DocumentTypeBankStatement))
}

func TestOrganizationRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createOrganizationTable(t, db)
	createDocumentTable(t, db)
	repo := NewOrganizationRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByUserID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByRemoteMerchantID(ctx, "MCH-404")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.Organization{
		ID:            uuid.New(),
		ApprovalState: entities.ApprovalStatePending,
		CreatedAt:     time.Now(),
	})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
