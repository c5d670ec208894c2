package services

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
	"printshop/internal/core/validation"
)

type CalculatorService struct {
	api ports.MarketplaceAPI
}

func NewCalculatorService(api ports.MarketplaceAPI) *CalculatorService {
	return &CalculatorService{api: api}
}

// Estimate validates the raw form and asks the backend for a cost estimate.
// Nothing is sent when validation fails.
func (s *CalculatorService) Estimate(ctx context.Context, form validation.CalculatorForm) (*domain.Estimate, error) {
	req, err := validation.ValidateCalculatorInput(form)
	if err != nil {
		return nil, err
	}

	est, err := s.api.Estimate(ctx, req)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"material_type": req.MaterialType,
			"complexity":    req.ModelComplexity,
		}).Warn("cost estimate failed")
		return nil, fmt.Errorf("estimate: %w", err)
	}
	return est, nil
}
