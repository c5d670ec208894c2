package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"printshop/internal/core/domain"
	"printshop/internal/core/validation"
	"printshop/internal/testutil"
)

func TestCalculatorService_Estimate_DefaultForm(t *testing.T) {
	ctx := context.Background()
	api := new(testutil.MockMarketplaceAPI)

	expectedReq := domain.CalculationRequest{
		MaterialType:           domain.MaterialPLA,
		PrintTimeHours:         2,
		ElectricityCostPerHour: 5,
		ModelComplexity:        domain.ComplexityMedium,
		InfillPercentage:       20,
		LayerHeight:            0.2,
	}
	est := &domain.Estimate{
		TotalCostRub: 182.5,
		Breakdown:    domain.CostBreakdown{ElectricityCost: 10, MaterialCost: 120, ServiceFee: 52.5},
	}
	api.On("Estimate", ctx, expectedReq).Return(est, nil).Once()

	svc := NewCalculatorService(api)
	got, err := svc.Estimate(ctx, validation.DefaultCalculatorForm())

	require.NoError(t, err)
	assert.Equal(t, 182.5, got.TotalCostRub)
	api.AssertExpectations(t)
}

func TestCalculatorService_Estimate_InvalidInputSendsNothing(t *testing.T) {
	api := new(testutil.MockMarketplaceAPI)
	svc := NewCalculatorService(api)

	form := validation.DefaultCalculatorForm()
	form.PrintTimeHours = "0"

	_, err := svc.Estimate(context.Background(), form)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, validation.MsgPrintTime, domain.DisplayMessage(err, ""))
	api.AssertNotCalled(t, "Estimate", mock.Anything, mock.Anything)
}

func TestCalculatorService_Estimate_BackendError(t *testing.T) {
	ctx := context.Background()
	api := new(testutil.MockMarketplaceAPI)
	api.On("Estimate", ctx, mock.Anything).Return(nil, &domain.ServerError{
		StatusCode: 422,
		Detail: domain.ErrorDetail{Kind: domain.DetailValidationList, Issues: []domain.ValidationIssue{
			{Msg: "value is not a valid enumeration member"},
		}},
	}).Once()

	svc := NewCalculatorService(api)
	_, err := svc.Estimate(ctx, validation.DefaultCalculatorForm())

	assert.Equal(t, "value is not a valid enumeration member", domain.DisplayMessage(err, "estimate failed"))
}
