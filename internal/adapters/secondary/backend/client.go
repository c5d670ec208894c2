package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"printshop/internal/config"
	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
)

// Error bodies larger than this are not worth decoding.
const maxErrorBody = 64 << 10

type client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates the HTTP adapter for the marketplace backend.
func NewClient(cfg *config.BackendConfig) ports.MarketplaceAPI {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		client: &http.Client{
			Timeout:   timeout,
			Transport: &requestIDTransport{next: http.DefaultTransport},
		},
	}
}

func (c *client) IsAvailable(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// ============================================================================
// Auth
// ============================================================================

func (c *client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", creds, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) Register(ctx context.Context, reg domain.Registration) (*domain.AuthResult, error) {
	var res domain.AuthResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", reg, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *client) GetProfile(ctx context.Context, token string) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/api/user/profile", token, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ============================================================================
// Calculator
// ============================================================================

func (c *client) Estimate(ctx context.Context, req domain.CalculationRequest) (*domain.Estimate, error) {
	var est domain.Estimate
	if err := c.doJSON(ctx, http.MethodPost, "/api/calculator/estimate", "", req, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

// ============================================================================
// Catalog and models
// ============================================================================

func (c *client) ListCatalog(ctx context.Context, q ports.CatalogQuery) ([]domain.Model3D, error) {
	params := url.Values{}
	params.Set("skip", strconv.Itoa(q.Skip))
	params.Set("limit", strconv.Itoa(q.Limit))
	if q.Category.Concrete() {
		params.Set("category", string(q.Category))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}

	body, err := c.do(ctx, http.MethodGet, "/api/models/catalog?"+params.Encode(), "", nil, "")
	if err != nil {
		return nil, err
	}
	return decodeCatalog(body)
}

// decodeCatalog requires an object whose "models" field is an array. Other
// fields (total, page, per_page) are informational.
func decodeCatalog(body []byte) ([]domain.Model3D, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, malformed(fmt.Errorf("catalog body: %w", err))
	}
	raw, ok := envelope["models"]
	if !ok {
		return nil, malformed(errors.New("catalog body has no models field"))
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, malformed(errors.New("catalog models is not an array"))
	}

	var models []domain.Model3D
	if err := json.Unmarshal(raw, &models); err != nil {
		return nil, malformed(fmt.Errorf("catalog models: %w", err))
	}
	if models == nil {
		models = []domain.Model3D{}
	}
	return models, nil
}

func (c *client) GetModel(ctx context.Context, id string) (*domain.ModelDetails, error) {
	var details domain.ModelDetails
	if err := c.doJSON(ctx, http.MethodGet, "/api/models/"+url.PathEscape(id), "", nil, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *client) UploadModel(ctx context.Context, token string, meta domain.ModelMetadata, file ports.UploadFile) (*domain.UploadResult, error) {
	body, contentType := newUploadBody(meta, file)
	defer body.Close()

	raw, err := c.do(ctx, http.MethodPost, "/api/models/upload", token, body, contentType)
	if err != nil {
		return nil, err
	}
	var res domain.UploadResult
	if err := decodeObject(raw, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ============================================================================
// Orders
// ============================================================================

type ordersResponse struct {
	Orders []domain.Order `json:"orders"`
}

func (c *client) MyOrders(ctx context.Context, token string) ([]domain.Order, error) {
	var res ordersResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/orders/my", token, nil, &res); err != nil {
		return nil, err
	}
	if res.Orders == nil {
		return []domain.Order{}, nil
	}
	return res.Orders, nil
}

func (c *client) CreateOrder(ctx context.Context, token string, req domain.OrderRequest) (*domain.OrderResult, error) {
	var res domain.OrderResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/orders/create", token, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// ============================================================================
// Request plumbing
// ============================================================================

// doJSON sends in (when non-nil) as a JSON body and decodes the response
// object into out.
func (c *client) doJSON(ctx context.Context, method, path, token string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
		contentType = "application/json"
	}

	raw, err := c.do(ctx, method, path, token, body, contentType)
	if err != nil {
		return err
	}
	return decodeObject(raw, out)
}

// do performs the request and returns the body of a 2xx response. Non-2xx
// responses become *domain.ServerError; transport failures wrap
// domain.ErrNetwork.
func (c *client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"method":      method,
			"path":        req.URL.Path,
			"error_class": "network",
		}).Warn("backend unreachable")
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, decodeServerError(resp)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrNetwork, err)
	}
	return raw, nil
}

type errorResponse struct {
	Detail domain.ErrorDetail `json:"detail"`
}

func decodeServerError(resp *http.Response) error {
	srvErr := &domain.ServerError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err == nil && len(raw) > 0 {
		var payload errorResponse
		if json.Unmarshal(raw, &payload) == nil {
			srvErr.Detail = payload.Detail
		}
	}
	return srvErr
}

// decodeObject decodes a JSON object into out. Anything else, including a
// bare null, is a malformed response.
func decodeObject(raw []byte, out interface{}) error {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return malformed(errors.New("response body is not a JSON object"))
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return malformed(err)
	}
	return nil
}

func malformed(err error) error {
	log.WithError(err).WithField("error_class", "malformed_response").Warn("undecodable backend response")
	return fmt.Errorf("%w: %w", domain.ErrMalformedResponse, err)
}
