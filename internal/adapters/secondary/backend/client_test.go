package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/config"
	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
	"printshop/internal/testutil/fakebackend"
)

func setupClient(t *testing.T) (*fakebackend.Backend, ports.MarketplaceAPI) {
	t.Helper()
	fake := fakebackend.New()
	srv := fake.Start()
	t.Cleanup(srv.Close)
	return fake, NewClient(&config.BackendConfig{URL: srv.URL, Timeout: 5 * time.Second})
}

func stubClient(t *testing.T, handler http.HandlerFunc) ports.MarketplaceAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(&config.BackendConfig{URL: srv.URL, Timeout: 5 * time.Second})
}

// ============================================================================
// Auth Tests
// ============================================================================

func TestClient_RegisterLoginProfile(t *testing.T) {
	ctx := context.Background()
	_, client := setupClient(t)

	reg, err := client.Register(ctx, domain.Registration{
		Name: "Anna", Email: "anna@example.com", Password: "secret1", Provider: "email",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, 100, reg.User.Points)

	login, err := client.Login(ctx, domain.Credentials{Email: "anna@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", login.Message)

	user, err := client.GetProfile(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.Name)
	require.NotNil(t, user.CreatedAt)
	assert.False(t, user.CreatedAt.IsZero())
}

func TestClient_LoginInvalidCredentials(t *testing.T) {
	_, client := setupClient(t)

	_, err := client.Login(context.Background(), domain.Credentials{Email: "nobody@example.com", Password: "x"})

	var srvErr *domain.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusUnauthorized, srvErr.StatusCode)
	assert.Equal(t, "Invalid credentials", srvErr.Detail.Message())
}

func TestClient_ProfileRevokedToken(t *testing.T) {
	fake, client := setupClient(t)
	token := fake.AddUser("Anna", "anna@example.com", "secret1")
	fake.RevokeTokens()

	_, err := client.GetProfile(context.Background(), token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ============================================================================
// Catalog Tests
// ============================================================================

func TestClient_ListCatalog_QueryParameters(t *testing.T) {
	ctx := context.Background()
	fake, client := setupClient(t)
	fake.AddModel("Robot", "Игрушки")
	fake.AddModel("Vase", "Декор")
	fake.AddModel("Robot arm", "Инструменты")

	models, err := client.ListCatalog(ctx, ports.CatalogQuery{Skip: 0, Limit: 20})
	require.NoError(t, err)
	require.Len(t, models, 3)
	assert.Equal(t, "Robot arm", models[0].Name)

	models, err = client.ListCatalog(ctx, ports.CatalogQuery{Skip: 0, Limit: 20, Category: domain.CategoryDecor})
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "Vase", models[0].Name)

	models, err = client.ListCatalog(ctx, ports.CatalogQuery{Skip: 0, Limit: 20, Search: "robot"})
	require.NoError(t, err)
	assert.Len(t, models, 2)

	queries := fake.CatalogQueries()
	require.Len(t, queries, 3)

	first, err := url.ParseQuery(queries[0])
	require.NoError(t, err)
	assert.Equal(t, "0", first.Get("skip"))
	assert.Equal(t, "20", first.Get("limit"))
	assert.False(t, first.Has("category"))
	assert.False(t, first.Has("search"))

	second, err := url.ParseQuery(queries[1])
	require.NoError(t, err)
	assert.Equal(t, "Декор", second.Get("category"))

	third, err := url.ParseQuery(queries[2])
	require.NoError(t, err)
	assert.Equal(t, "robot", third.Get("search"))
	assert.False(t, third.Has("category"))
}

func TestClient_ListCatalog_Paging(t *testing.T) {
	ctx := context.Background()
	fake, client := setupClient(t)
	for i := 0; i < 25; i++ {
		fake.AddModel("Model", "Другое")
	}

	page1, err := client.ListCatalog(ctx, ports.CatalogQuery{Skip: 0, Limit: 20})
	require.NoError(t, err)
	page2, err := client.ListCatalog(ctx, ports.CatalogQuery{Skip: 20, Limit: 20})
	require.NoError(t, err)

	assert.Len(t, page1, 20)
	assert.Len(t, page2, 5)
	assert.NotEqual(t, page1[0].ID, page2[0].ID)
}

func TestClient_ListCatalog_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "models not an array", body: `{"models": "oops"}`},
		{name: "models missing", body: `{"items": []}`},
		{name: "models null", body: `{"models": null}`},
		{name: "not an object", body: `[1, 2, 3]`},
		{name: "not json", body: `<html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.ListCatalog(context.Background(), ports.CatalogQuery{Limit: 20})

			assert.ErrorIs(t, err, domain.ErrMalformedResponse)
			assert.Equal(t, domain.NetworkProblemMessage, domain.DisplayMessage(err, "catalog failed"))
		})
	}
}

func TestClient_ListCatalog_FakeBackendMalformed(t *testing.T) {
	fake, client := setupClient(t)
	fake.SetMalformedCatalog(true)

	_, err := client.ListCatalog(context.Background(), ports.CatalogQuery{Limit: 20})

	assert.ErrorIs(t, err, domain.ErrMalformedResponse)
}

// ============================================================================
// Model / Upload Tests
// ============================================================================

func TestClient_GetModel_NotFound(t *testing.T) {
	_, client := setupClient(t)

	_, err := client.GetModel(context.Background(), "missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Model not found", domain.DisplayMessage(err, ""))
}

func TestClient_UploadAndFetchModel(t *testing.T) {
	ctx := context.Background()
	fake, client := setupClient(t)
	token := fake.AddUser("Anna", "anna@example.com", "secret1")

	price := 150.0
	res, err := client.UploadModel(ctx, token, domain.ModelMetadata{
		Name:               "Gear",
		Description:        "Spur gear",
		Category:           domain.CategoryTools,
		MaterialType:       domain.MaterialPETG,
		EstimatedPrintTime: 3.5,
		Price:              &price,
		IsPublic:           true,
	}, ports.UploadFile{Name: "/home/anna/gear.STL", Size: 10, Content: strings.NewReader("solid gear")})
	require.NoError(t, err)
	assert.Equal(t, 50, res.PointsEarned)
	assert.NotEmpty(t, res.ModelID)

	details, err := client.GetModel(ctx, res.ModelID)
	require.NoError(t, err)
	assert.Equal(t, "Gear", details.Name)
	assert.Equal(t, domain.CategoryTools, details.Category)
	assert.Equal(t, 3.5, details.EstimatedPrintTime)
	require.NotNil(t, details.Price)
	assert.Equal(t, 150.0, *details.Price)
	assert.Equal(t, "stl", details.FileFormat)

	data, err := details.File()
	require.NoError(t, err)
	assert.Equal(t, "solid gear", string(data))
}

func TestClient_UploadWithoutPrice(t *testing.T) {
	ctx := context.Background()
	fake, client := setupClient(t)
	token := fake.AddUser("Anna", "anna@example.com", "secret1")

	res, err := client.UploadModel(ctx, token, domain.ModelMetadata{
		Name: "Free", Description: "d", Category: domain.CategoryOther,
		MaterialType: domain.MaterialPLA, EstimatedPrintTime: 1, IsPublic: true,
	}, ports.UploadFile{Name: "free.obj", Content: strings.NewReader("o free")})
	require.NoError(t, err)

	details, err := client.GetModel(ctx, res.ModelID)
	require.NoError(t, err)
	assert.Nil(t, details.Price)
}

// ============================================================================
// Calculator / Orders Tests
// ============================================================================

func TestClient_Estimate(t *testing.T) {
	_, client := setupClient(t)

	est, err := client.Estimate(context.Background(), domain.CalculationRequest{
		MaterialType:           domain.MaterialPLA,
		PrintTimeHours:         2,
		ElectricityCostPerHour: 5,
		ModelComplexity:        domain.ComplexityMedium,
		InfillPercentage:       20,
		LayerHeight:            0.2,
	})
	require.NoError(t, err)

	assert.Equal(t, 10.0, est.Breakdown.ElectricityCost)
	assert.Equal(t, 1.5, est.Breakdown.ComplexityMultiplier)
	assert.Greater(t, est.TotalCostRub, 0.0)
	assert.Equal(t, 2.0, est.EstimatedCompletion.Hours)
}

func TestClient_Estimate_ValidationListDetail(t *testing.T) {
	_, client := setupClient(t)

	_, err := client.Estimate(context.Background(), domain.CalculationRequest{MaterialType: "Gold"})

	var srvErr *domain.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusUnprocessableEntity, srvErr.StatusCode)
	assert.Equal(t, domain.DetailValidationList, srvErr.Detail.Kind)
	assert.Equal(t, "unsupported material", domain.DisplayMessage(err, "estimate failed"))
}

func TestClient_Orders(t *testing.T) {
	ctx := context.Background()
	fake, client := setupClient(t)
	token := fake.AddUser("Anna", "anna@example.com", "secret1")
	modelID := fake.AddModel("Gear", "Инструменты")

	orders, err := client.MyOrders(ctx, token)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	res, err := client.CreateOrder(ctx, token, domain.OrderRequest{
		ModelID:         modelID,
		Calculation:     domain.CalculationRequest{MaterialType: domain.MaterialPLA, PrintTimeHours: 2},
		TotalPrice:      1500,
		DeliveryAddress: "Moscow",
		Phone:           "+7 900",
	})
	require.NoError(t, err)
	assert.Equal(t, 15, res.PointsEarned)
	assert.Equal(t, domain.OrderStatusPending, res.Status)

	orders, err = client.MyOrders(ctx, token)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Gear", orders[0].ModelName)
	assert.Equal(t, domain.PaymentStatusPending, orders[0].PaymentStatus)
	require.NotNil(t, orders[0].EstimatedCompletion)
	assert.Equal(t, 26*time.Hour, orders[0].EstimatedCompletion.Sub(orders[0].CreatedAt.Time))
}

// ============================================================================
// Transport Tests
// ============================================================================

func TestClient_SendsRequestIDAndHeaders(t *testing.T) {
	var got http.Header
	client := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"orders": []}`))
	})

	_, err := client.MyOrders(context.Background(), "tok")
	require.NoError(t, err)

	_, err = uuid.Parse(got.Get("X-Request-ID"))
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok", got.Get("Authorization"))
	assert.Equal(t, "application/json", got.Get("Accept"))
}

func TestClient_NoAuthorizationWithoutToken(t *testing.T) {
	var got http.Header
	client := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"models": []}`))
	})

	_, err := client.ListCatalog(context.Background(), ports.CatalogQuery{Limit: 20})
	require.NoError(t, err)
	assert.Empty(t, got.Get("Authorization"))
}

func TestClient_EveryRequestGetsDistinctRequestID(t *testing.T) {
	ctx := context.Background()
	fake, client := setupClient(t)

	_, _ = client.ListCatalog(ctx, ports.CatalogQuery{Limit: 20})
	_, _ = client.ListCatalog(ctx, ports.CatalogQuery{Limit: 20})

	ids := fake.RequestIDs()
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(&config.BackendConfig{URL: srv.URL, Timeout: time.Second})

	_, err := client.ListCatalog(context.Background(), ports.CatalogQuery{Limit: 20})

	assert.ErrorIs(t, err, domain.ErrNetwork)
	assert.Equal(t, domain.NetworkProblemMessage, domain.DisplayMessage(err, "catalog failed"))
	assert.False(t, client.IsAvailable(context.Background()))
}

func TestClient_ServerErrorWithoutJSONBody(t *testing.T) {
	client := stubClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("bad gateway"))
	})

	_, err := client.GetModel(context.Background(), "m-1")

	var srvErr *domain.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusBadGateway, srvErr.StatusCode)
	assert.Equal(t, "model failed", domain.DisplayMessage(err, "model failed"))
}

func TestClient_FailStatus(t *testing.T) {
	fake, client := setupClient(t)
	fake.SetFailStatus(http.StatusServiceUnavailable)

	_, err := client.ListCatalog(context.Background(), ports.CatalogQuery{Limit: 20})

	var srvErr *domain.ServerError
	require.ErrorAs(t, err, &srvErr)
	assert.Equal(t, http.StatusServiceUnavailable, srvErr.StatusCode)
	assert.True(t, client.IsAvailable(context.Background()))
}
