package repositories

import (
	"context"

	"github.com/google/uuid"

	"charity-pay.backend/internal/domain/entities"
)

// OrganizationRepository defines organization data operations
type OrganizationRepository interface {
	Create(ctx context.Context, org *entities.Organization) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Organization, error)
	// GetByRemoteMerchantID loads the organization owning the given
	// provider-assigned merchant id. Under a lock context (see
	// UnitOfWork.WithLock) the row is locked for update so concurrent
	// webhook deliveries for the same merchant are serialized.
	GetByRemoteMerchantID(ctx context.Context, remoteMerchantID string) (*entities.Organization, error)
	Update(ctx context.Context, org *entities.Organization) error
}
