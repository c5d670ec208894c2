package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
)

// ModelService serves the model detail screen. Likes are kept locally; the
// backend has no like endpoint.
type ModelService struct {
	api ports.MarketplaceAPI

	mu    sync.Mutex
	liked map[string]bool
}

func NewModelService(api ports.MarketplaceAPI) *ModelService {
	return &ModelService{api: api, liked: make(map[string]bool)}
}

func (s *ModelService) Details(ctx context.Context, id string) (*domain.ModelDetails, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("model details: %w", domain.ErrNotFound)
	}
	details, err := s.api.GetModel(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("model details %s: %w", id, err)
	}
	return details, nil
}

// ToggleLike flips the local like flag and returns the new value.
func (s *ModelService) ToggleLike(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.liked[id] {
		delete(s.liked, id)
		return false
	}
	s.liked[id] = true
	return true
}

func (s *ModelService) Liked(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[id]
}
