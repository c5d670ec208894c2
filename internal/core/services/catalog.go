package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
)

// PageSize is the fixed number of catalog entries requested per fetch.
const PageSize = 20

type PagerStatus string

const (
	PagerIdle           PagerStatus = "idle"
	PagerLoadingInitial PagerStatus = "loading_initial"
	PagerLoadingMore    PagerStatus = "loading_more"
	PagerRefreshing     PagerStatus = "refreshing"
	PagerError          PagerStatus = "error"
)

func (s PagerStatus) Loading() bool {
	return s == PagerLoadingInitial || s == PagerLoadingMore || s == PagerRefreshing
}

// Skip returns the offset of a 1-based page.
func Skip(page, pageSize int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * pageSize
}

// CatalogState is a copy of the pager state for rendering.
type CatalogState struct {
	Status     PagerStatus
	Search     string
	Category   domain.Category
	Page       int
	HasMore    bool
	Refreshing bool
	Models     []domain.Model3D
}

// filterSnapshot identifies the filters a fetch was issued under. epoch
// increases on every filter change, so A -> B -> A still invalidates the first
// fetch for A.
type filterSnapshot struct {
	search   string
	category domain.Category
	epoch    uint64
}

type fetchKind int

const (
	fetchInitial fetchKind = iota
	fetchMore
	fetchRefresh
)

// CatalogPager owns the fetch/merge/reset cycle of the catalog list.
// It is safe for concurrent use; network calls run outside the lock.
type CatalogPager struct {
	api ports.MarketplaceAPI

	mu      sync.Mutex
	status  PagerStatus
	filter  filterSnapshot
	page    int
	hasMore bool
	models  []domain.Model3D
}

func NewCatalogPager(api ports.MarketplaceAPI) *CatalogPager {
	return &CatalogPager{
		api:     api,
		status:  PagerIdle,
		page:    1,
		hasMore: true,
	}
}

// Load performs the initial fetch for the current filters.
func (p *CatalogPager) Load(ctx context.Context) error {
	p.mu.Lock()
	snap := p.filter
	p.mu.Unlock()
	return p.fetch(ctx, fetchInitial, snap)
}

// SetSearch changes the search text and reloads from the first page.
// Setting the current value again does nothing.
func (p *CatalogPager) SetSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)

	p.mu.Lock()
	if query == p.filter.search {
		p.mu.Unlock()
		return nil
	}
	p.filter = filterSnapshot{search: query, category: p.filter.category, epoch: p.filter.epoch + 1}
	p.resetPaging()
	snap := p.filter
	p.mu.Unlock()

	return p.fetch(ctx, fetchInitial, snap)
}

// SetCategory changes the category filter and reloads from the first page.
// The empty string and the legacy "all categories" label clear the filter.
func (p *CatalogPager) SetCategory(ctx context.Context, category string) error {
	c, err := domain.ParseCategory(category)
	if err != nil {
		return err
	}

	p.mu.Lock()
	if c == p.filter.category {
		p.mu.Unlock()
		return nil
	}
	p.filter = filterSnapshot{search: p.filter.search, category: c, epoch: p.filter.epoch + 1}
	p.resetPaging()
	snap := p.filter
	p.mu.Unlock()

	return p.fetch(ctx, fetchInitial, snap)
}

// LoadMore appends the next page. It is a no-op while another fetch is in
// flight or when the last batch was short.
func (p *CatalogPager) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	snap := p.filter
	p.mu.Unlock()
	return p.fetch(ctx, fetchMore, snap)
}

// Refresh reloads the first page for the current filters. It is a no-op while
// another fetch is in flight.
func (p *CatalogPager) Refresh(ctx context.Context) error {
	p.mu.Lock()
	snap := p.filter
	p.mu.Unlock()
	return p.fetch(ctx, fetchRefresh, snap)
}

// resetPaging points the cursor at the first page of new filters. The shown
// models stay until a fetch for those filters succeeds. Callers hold p.mu.
func (p *CatalogPager) resetPaging() {
	p.page = 1
	p.hasMore = true
}

func (p *CatalogPager) Snapshot() CatalogState {
	p.mu.Lock()
	defer p.mu.Unlock()

	models := make([]domain.Model3D, len(p.models))
	copy(models, p.models)

	return CatalogState{
		Status:     p.status,
		Search:     p.filter.search,
		Category:   p.filter.category,
		Page:       p.page,
		HasMore:    p.hasMore,
		Refreshing: p.status == PagerRefreshing,
		Models:     models,
	}
}

func (p *CatalogPager) fetch(ctx context.Context, kind fetchKind, snap filterSnapshot) error {
	p.mu.Lock()
	if snap != p.filter {
		// Filters moved on between reading the snapshot and getting here.
		p.mu.Unlock()
		return nil
	}

	switch kind {
	case fetchMore:
		if p.status.Loading() || !p.hasMore {
			p.mu.Unlock()
			return nil
		}
		p.status = PagerLoadingMore
	case fetchRefresh:
		if p.status.Loading() {
			p.mu.Unlock()
			return nil
		}
		p.status = PagerRefreshing
	default:
		// An initial load supersedes whatever is in flight; older responses
		// are dropped by the snapshot check below.
		p.filter.epoch++
		snap = p.filter
		p.status = PagerLoadingInitial
	}

	q := ports.CatalogQuery{
		Skip:     0,
		Limit:    PageSize,
		Category: snap.category,
		Search:   snap.search,
	}
	if kind == fetchMore {
		q.Skip = Skip(p.page, PageSize)
	}
	p.mu.Unlock()

	batch, err := p.api.ListCatalog(ctx, q)
	if err == nil && len(batch) > PageSize {
		err = fmt.Errorf("%w: got %d models for limit %d", domain.ErrProtocolViolation, len(batch), PageSize)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Only the fetch issued under the current filters may touch the state;
	// every reset bumps the epoch, so at most one such fetch is in flight.
	if snap != p.filter {
		log.WithFields(log.Fields{
			"search":   snap.search,
			"category": snap.category,
			"skip":     q.Skip,
		}).Debug("discarding catalog response for outdated filters")
		return domain.ErrStaleResponse
	}

	if err != nil {
		p.status = PagerError
		log.WithError(err).WithFields(log.Fields{
			"skip":  q.Skip,
			"limit": q.Limit,
		}).Warn("catalog fetch failed")
		return fmt.Errorf("load catalog: %w", err)
	}

	// page 1 means nothing has been loaded for the current filters yet, so the
	// batch replaces whatever is still shown from the previous ones.
	if kind == fetchMore && p.page > 1 {
		p.models = append(p.models, batch...)
		p.page++
	} else {
		p.models = append([]domain.Model3D(nil), batch...)
		p.page = 2
	}
	p.hasMore = len(batch) == PageSize
	p.status = PagerIdle
	return nil
}
