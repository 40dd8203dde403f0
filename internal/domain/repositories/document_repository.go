package repositories

import (
	"context"

	"github.com/google/uuid"

	"charity-pay.backend/internal/domain/entities"
)

// DocumentRepository defines KYC document data operations. Documents are
// never deleted; they form the onboarding audit trail.
type DocumentRepository interface {
	Create(ctx context.Context, doc *entities.Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error)
	GetByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*entities.Document, error)
	Update(ctx context.Context, doc *entities.Document) error
}
