package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
)

// MockMarketplaceAPI is a mock of ports.MarketplaceAPI.
type MockMarketplaceAPI struct {
	mock.Mock
}

func (m *MockMarketplaceAPI) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockMarketplaceAPI) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	args := m.Called(ctx, reg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuthResult), args.Error(1)
}

func (m *MockMarketplaceAPI) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockMarketplaceAPI) Estimate(ctx context.Context, req domain.CalculationRequest) (*domain.Estimate, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Estimate), args.Error(1)
}

func (m *MockMarketplaceAPI) ListCatalog(ctx context.Context, q ports.CatalogQuery) ([]domain.Model3D, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Model3D), args.Error(1)
}

func (m *MockMarketplaceAPI) GetModel(ctx context.Context, id string) (*domain.ModelDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ModelDetails), args.Error(1)
}

func (m *MockMarketplaceAPI) UploadModel(ctx context.Context, token string, meta domain.ModelMetadata, file ports.UploadFile) (*domain.UploadResult, error) {
	args := m.Called(ctx, token, meta, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UploadResult), args.Error(1)
}

func (m *MockMarketplaceAPI) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *MockMarketplaceAPI) CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (*domain.OrderResult, error) {
	args := m.Called(ctx, token, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OrderResult), args.Error(1)
}

func (m *MockMarketplaceAPI) IsAvailable(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// MockSessionStore is a mock of ports.SessionStore.
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Load(ctx context.Context) (*domain.Session, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockSessionStore) Save(ctx context.Context, s *domain.Session) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
