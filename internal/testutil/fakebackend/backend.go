// Package fakebackend is an in-memory marketplace backend for tests. It
// serves the same routes and payload shapes as the real server.
package fakebackend

import (
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type user struct {
	ID          string
	Name        string
	Email       string
	Password    string
	Points      int
	OrdersCount int
	ModelsCount int
	CreatedAt   time.Time
}

type model struct {
	ID                 string
	Name               string
	Description        string
	Category           string
	MaterialType       string
	EstimatedPrintTime float64
	Price              *float64
	IsPublic           bool
	OwnerName          string
	FileData           string
	FileFormat         string
	Likes              int
	Downloads          int
	CreatedAt          time.Time
}

type order struct {
	ID                  string
	UserID              string
	ModelName           string
	TotalPrice          float64
	Status              string
	PaymentStatus       string
	CreatedAt           time.Time
	EstimatedCompletion time.Time
}

// Backend holds the fake server state. The failure toggles exercise client
// error paths.
type Backend struct {
	mu     sync.Mutex
	users  map[string]*user // by id
	tokens map[string]string
	models []*model
	orders []*order
	clock  time.Time

	malformedCatalog bool
	failStatus       int

	requestIDs []string
	queries    []string
}

func New() *Backend {
	return &Backend{
		users:  make(map[string]*user),
		tokens: make(map[string]string),
		clock:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Start serves the backend on a local listener. Close the returned server
// when done.
func (b *Backend) Start() *httptest.Server {
	return httptest.NewServer(b.Router())
}

func (b *Backend) Router() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(b.recordRequest())

	api := r.Group("/api")
	api.GET("/health", b.health)
	api.Use(b.failure())
	api.POST("/auth/register", b.register)
	api.POST("/auth/login", b.login)
	api.GET("/user/profile", b.requireToken(), b.profile)
	api.POST("/calculator/estimate", b.estimate)
	api.GET("/models/catalog", b.catalog)
	api.GET("/models/:id", b.modelDetails)
	api.POST("/models/upload", b.requireToken(), b.upload)
	api.POST("/orders/create", b.requireToken(), b.createOrder)
	api.GET("/orders/my", b.requireToken(), b.myOrders)
	return r
}

// AddUser registers a user directly and returns a valid token for it.
func (b *Backend) AddUser(name, email, password string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	u := b.newUserLocked(name, email, password)
	return b.issueTokenLocked(u)
}

// AddModel inserts a public model owned by "seed" and returns its id.
func (b *Backend) AddModel(name, category string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := &model{
		ID:                 uuid.New().String(),
		Name:               name,
		Description:        name + " description",
		Category:           category,
		MaterialType:       "PLA",
		EstimatedPrintTime: 2,
		IsPublic:           true,
		OwnerName:          "seed",
		FileFormat:         "stl",
		CreatedAt:          b.tickLocked(),
	}
	b.models = append(b.models, m)
	return m.ID
}

// SetMalformedCatalog makes the catalog endpoint answer {"models": "oops"}.
func (b *Backend) SetMalformedCatalog(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.malformedCatalog = on
}

// SetFailStatus makes every API route except health answer with status.
// Zero restores normal behavior.
func (b *Backend) SetFailStatus(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failStatus = status
}

// RevokeTokens invalidates every issued token.
func (b *Backend) RevokeTokens() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens = make(map[string]string)
}

// RequestIDs returns the X-Request-ID header of every request received.
func (b *Backend) RequestIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requestIDs...)
}

// CatalogQueries returns the raw query strings sent to the catalog endpoint.
func (b *Backend) CatalogQueries() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.queries...)
}

func (b *Backend) newUserLocked(name, email, password string) *user {
	u := &user{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Password:  password,
		Points:    100,
		CreatedAt: b.tickLocked(),
	}
	b.users[u.ID] = u
	return u
}

func (b *Backend) issueTokenLocked(u *user) string {
	token := uuid.New().String()
	b.tokens[token] = u.ID
	return token
}

func (b *Backend) userByEmailLocked(email string) *user {
	for _, u := range b.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// tickLocked returns strictly increasing creation times so ordering is stable.
func (b *Backend) tickLocked() time.Time {
	b.clock = b.clock.Add(time.Second)
	return b.clock
}
