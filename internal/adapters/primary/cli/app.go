package cli

import (
	"context"
	"database/sql"

	"printshop/internal/adapters/secondary/backend"
	"printshop/internal/adapters/secondary/sqlite"
	"printshop/internal/config"
	"printshop/internal/core/ports/output"
	"printshop/internal/core/services"
)

// App holds the services one command invocation works with.
type App struct {
	API        ports.MarketplaceAPI
	Auth       *services.AuthService
	Calculator *services.CalculatorService
	Catalog    *services.CatalogPager
	Models     *services.ModelService
	Uploads    *services.UploadService
	Orders     *services.OrderService

	db *sql.DB
}

// NewApp wires the backend client and the session store into the services.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := sqlite.Open(ctx, cfg.Session.DBPath)
	if err != nil {
		return nil, err
	}

	api := backend.NewClient(&cfg.Backend)
	auth := services.NewAuthService(api, sqlite.NewSessionStore(db))

	return &App{
		API:        api,
		Auth:       auth,
		Calculator: services.NewCalculatorService(api),
		Catalog:    services.NewCatalogPager(api),
		Models:     services.NewModelService(api),
		Uploads:    services.NewUploadService(api, auth),
		Orders:     services.NewOrderService(api, auth),
		db:         db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
