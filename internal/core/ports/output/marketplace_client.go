package ports

import (
	"context"
	"io"

	"printshop/internal/core/domain"
)

// ============================================================================
// Catalog Query Types
// ============================================================================

// CatalogQuery is one page request against the catalog endpoint.
type CatalogQuery struct {
	Skip     int
	Limit    int
	Category domain.Category // sent only when Concrete()
	Search   string          // sent only when non-empty
}

// UploadFile is the file part of a model upload.
type UploadFile struct {
	Name    string    // original file name, extension decides the format
	Size    int64     // bytes, used for validation before sending
	Content io.Reader // streamed into the multipart body
}

// ============================================================================
// Marketplace API
// ============================================================================

// MarketplaceAPI is the contract of the remote marketplace backend.
// Authenticated calls take the bearer token explicitly so that callers pass a
// snapshot read when the request is built.
type MarketplaceAPI interface {
	// Auth
	Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error)
	Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error)
	GetProfile(ctx context.Context, token string) (*domain.User, error)

	// Calculator
	Estimate(ctx context.Context, req domain.CalculationRequest) (*domain.Estimate, error)

	// Catalog and models
	ListCatalog(ctx context.Context, q CatalogQuery) ([]domain.Model3D, error)
	GetModel(ctx context.Context, id string) (*domain.ModelDetails, error)
	UploadModel(ctx context.Context, token string, meta domain.ModelMetadata, file UploadFile) (*domain.UploadResult, error)

	// Orders
	MyOrders(ctx context.Context, token string) ([]domain.Order, error)
	CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (*domain.OrderResult, error)

	// Health check
	IsAvailable(ctx context.Context) bool
}
