package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"charity-pay.backend/internal/domain/entities"
	domainerrors "charity-pay.backend/internal/domain/errors"
	"charity-pay.backend/internal/infrastructure/models"
)

// DocumentRepository implements KYC document data operations
type DocumentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create creates a new document record
func (r *DocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	doc.CreatedAt = time.Now()

	db := GetDB(ctx, r.db)
	return db.WithContext(ctx).Create(documentToModel(doc)).Error
}

// GetByID gets a document by ID
func (r *DocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	var m models.Document
	err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id.String()).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return documentToEntity(&m), nil
}

// GetByOrganizationID lists an organization's documents, oldest first
func (r *DocumentRepository) GetByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*entities.Document, error) {
	var ms []models.Document
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("organization_id = ?", orgID.String()).
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	docs := make([]*entities.Document, 0, len(ms))
	for i := range ms {
		docs = append(docs, documentToEntity(&ms[i]))
	}
	return docs, nil
}

// Update persists the verification fields. Everything else on a document is
// immutable after creation.
func (r *DocumentRepository) Update(ctx context.Context, doc *entities.Document) error {
	m := documentToModel(doc)
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", m.ID.String()).
		Select("IsVerified", "VerificationNotes", "VerifiedAt").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func documentToModel(doc *entities.Document) *models.Document {
	m := &models.Document{
		ID:               doc.ID,
		OrganizationID:   doc.OrganizationID,
		FileName:         doc.FileName,
		OriginalFileName: doc.OriginalFileName,
		Type:             string(doc.Type),
		MimeType:         doc.MimeType,
		FileSize:         doc.FileSize,
		StoragePath:      doc.StoragePath,
		IsVerified:       doc.IsVerified,
		CreatedAt:        doc.CreatedAt,
	}
	m.VerificationNotes = nullStringPtr(doc.VerificationNotes)
	if doc.VerifiedAt.Valid {
		t := doc.VerifiedAt.Time
		m.VerifiedAt = &t
	}
	return m
}

func documentToEntity(m *models.Document) *entities.Document {
	doc := &entities.Document{
		ID:               m.ID,
		OrganizationID:   m.OrganizationID,
		FileName:         m.FileName,
		OriginalFileName: m.OriginalFileName,
		Type:             entities.DocumentType(m.Type),
		MimeType:         m.MimeType,
		FileSize:         m.FileSize,
		StoragePath:      m.StoragePath,
		IsVerified:       m.IsVerified,
		CreatedAt:        m.CreatedAt,
	}
	setNullString(&doc.VerificationNotes, m.VerificationNotes)
	if m.VerifiedAt != nil {
		doc.VerifiedAt.SetValid(*m.VerifiedAt)
	}
	return doc
}

func nullStringPtr(s null.String) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}

func setNullString(dst *null.String, src *string) {
	if src != nil {
		dst.SetValid(*src)
	}
}
