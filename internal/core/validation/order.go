package validation

import (
	"strings"

	"printshop/internal/core/domain"
)

type OrderForm struct {
	ModelID         string
	Calculation     CalculatorForm
	TotalPrice      string
	DeliveryAddress string
	Phone           string
}

// ValidateOrderForm checks the order fields first and the embedded
// calculation last.
func ValidateOrderForm(form OrderForm) (domain.OrderRequest, error) {
	if blank(form.ModelID) {
		return domain.OrderRequest{}, fail("model_id", MsgModelID)
	}
	if blank(form.DeliveryAddress) {
		return domain.OrderRequest{}, fail("delivery_address", MsgDeliveryAddress)
	}
	if blank(form.Phone) {
		return domain.OrderRequest{}, fail("phone", MsgPhone)
	}
	total, ok := parseDecimal(form.TotalPrice)
	if !ok || total <= 0 {
		return domain.OrderRequest{}, fail("total_price", MsgTotalPrice)
	}

	calc, err := ValidateCalculatorInput(form.Calculation)
	if err != nil {
		return domain.OrderRequest{}, err
	}

	return domain.OrderRequest{
		ModelID:         strings.TrimSpace(form.ModelID),
		Calculation:     calc,
		TotalPrice:      total,
		DeliveryAddress: strings.TrimSpace(form.DeliveryAddress),
		Phone:           strings.TrimSpace(form.Phone),
	}, nil
}
