package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
	"charity-pay.backend/internal/infrastructure/models"
)

// OrganizationRepository implements organization data operations
type OrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new organization repository
func NewOrganizationRepository(db *gorm.DB) *OrganizationRepository {
	return &OrganizationRepository{db: db}
}

// Create creates a new organization
func (r *OrganizationRepository) Create(ctx context.Context, org *entities.Organization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	if org.ApprovalState == "" {
		org.ApprovalState = entities.ApprovalStatePending
	}
	org.CreatedAt = time.Now()
	org.UpdatedAt = org.CreatedAt

	m := organizationToModel(org)
	db := GetDB(ctx, r.db)
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets an organization by ID, documents included
func (r *OrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error) {
	return r.getOne(ctx, "id = ?", id.String())
}

// GetByUserID gets the organization owned by a user
func (r *OrganizationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Organization, error) {
	return r.getOne(ctx, "user_id = ?", userID.String())
}

// GetByRemoteMerchantID gets the organization holding the provider-assigned
// merchant id. Inside a lock context the row is read FOR UPDATE so webhook
// reconciliation is serialized per merchant.
func (r *OrganizationRepository) GetByRemoteMerchantID(ctx context.Context, remoteMerchantID string) (*entities.Organization, error) {
	return r.getOne(ctx, "remote_merchant_id = ?", remoteMerchantID)
}

func (r *OrganizationRepository) getOne(ctx context.Context, cond string, arg interface{}) (*entities.Organization, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)
	if wantsLock(ctx) {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var m models.Organization
	err := db.Preload("Documents").Where(cond, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return organizationToEntity(&m), nil
}

// Update persists the organization's merchant fields, approval state and
// audit notes. Documents are owned by DocumentRepository and not touched.
func (r *OrganizationRepository) Update(ctx context.Context, org *entities.Organization) error {
	org.UpdatedAt = time.Now()
	m := organizationToModel(org)

	db := GetDB(ctx, r.db)
	result := db.WithContext(ctx).Model(&models.Organization{}).
		Where("id = ?", m.ID.String()).
		Select("Name", "ContactEmail", "LegalBusinessName", "TaxID", "KrsNumber",
			"BankAccount", "RemoteMerchantID", "ApprovalState", "AdminNotes", "UpdatedAt").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func organizationToModel(org *entities.Organization) *models.Organization {
	m := &models.Organization{
		ID:            org.ID,
		UserID:        org.UserID,
		Name:          org.Name,
		ContactEmail:  org.ContactEmail,
		ApprovalState: string(org.ApprovalState),
		CreatedAt:     org.CreatedAt,
		UpdatedAt:     org.UpdatedAt,
	}
	m.LegalBusinessName = nullStringPtr(org.LegalBusinessName)
	m.TaxID = nullStringPtr(org.TaxID)
	m.KrsNumber = nullStringPtr(org.KrsNumber)
	m.BankAccount = nullStringPtr(org.BankAccount)
	m.RemoteMerchantID = nullStringPtr(org.RemoteMerchantID)
	m.AdminNotes = nullStringPtr(org.AdminNotes)
	return m
}

func organizationToEntity(m *models.Organization) *entities.Organization {
	org := &entities.Organization{
		ID:            m.ID,
		UserID:        m.UserID,
		Name:          m.Name,
		ContactEmail:  m.ContactEmail,
		ApprovalState: entities.ApprovalState(m.ApprovalState),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	setNullString(&org.LegalBusinessName, m.LegalBusinessName)
	setNullString(&org.TaxID, m.TaxID)
	setNullString(&org.KrsNumber, m.KrsNumber)
	setNullString(&org.BankAccount, m.BankAccount)
	setNullString(&org.RemoteMerchantID, m.RemoteMerchantID)
	setNullString(&org.AdminNotes, m.AdminNotes)
	for i := range m.Documents {
		org.Documents = append(org.Documents, documentToEntity(&m.Documents[i]))
	}
	return org
}
