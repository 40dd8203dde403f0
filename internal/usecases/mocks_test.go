package usecases_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"charity-pay.backend/internal/domain/entities"
	"charity-pay.backend/internal/domain/gateway"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

func (m *MockUnitOfWork) WithLock(ctx context.Context) context.Context {
	args := m.Called(ctx)
	return args.Get(0).(context.Context)
}

// Mock OrganizationRepository
type MockOrganizationRepository struct {
	mock.Mock
}

func (m *MockOrganizationRepository) Create(ctx context.Context, org *entities.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Organization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) GetByRemoteMerchantID(ctx context.Context, remoteMerchantID string) (*entities.Organization, error) {
	args := m.Called(ctx, remoteMerchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) Update(ctx context.Context, org *entities.Organization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

// Mock DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) Create(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockDocumentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) GetByOrganizationID(ctx context.Context, orgID uuid.UUID) ([]*entities.Document, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Document), args.Error(1)
}

func (m *MockDocumentRepository) Update(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// Mock gateway.Client
type MockGatewayClient struct {
	mock.Mock
}

func (m *MockGatewayClient) CreateMerchant(ctx context.Context, org *entities.Organization) (*gateway.CreateMerchantResult, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.CreateMerchantResult), args.Error(1)
}

func (m *MockGatewayClient) UploadDocument(ctx context.Context, remoteMerchantID string, doc *entities.Document, fileBytes []byte) (*gateway.UploadDocumentResult, error) {
	args := m.Called(ctx, remoteMerchantID, doc, fileBytes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.UploadDocumentResult), args.Error(1)
}

func (m *MockGatewayClient) GetMerchantStatus(ctx context.Context, remoteMerchantID string) (*gateway.MerchantStatusResult, error) {
	args := m.Called(ctx, remoteMerchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.MerchantStatusResult), args.Error(1)
}

func (m *MockGatewayClient) VerifyWebhookSignature(rawPayload []byte, signature string) bool {
	args := m.Called(rawPayload, signature)
	return args.Bool(0)
}

func (m *MockGatewayClient) ParseWebhookEvent(rawPayload []byte) (*gateway.WebhookEvent, error) {
	args := m.Called(rawPayload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.WebhookEvent), args.Error(1)
}
