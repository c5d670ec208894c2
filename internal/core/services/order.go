package services

import (
	"context"

	log "github.com/sirupsen/logrus"

	"printshop/internal/core/domain"
	"printshop/internal/core/ports/output"
	"printshop/internal/core/validation"
)

type OrderService struct {
	api  ports.MarketplaceAPI
	auth *AuthService
}

func NewOrderService(api ports.MarketplaceAPI, auth *AuthService) *OrderService {
	return &OrderService{api: api, auth: auth}
}

// MyOrders lists the signed-in user's orders. A rejected token ends the
// session.
func (s *OrderService) MyOrders(ctx context.Context) ([]domain.Order, error) {
	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	orders, err := s.api.MyOrders(ctx, token)
	if err != nil {
		return nil, s.auth.handleAuthError(ctx, "orders", token, err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) PlaceOrder(ctx context.Context, form validation.OrderForm) (*domain.OrderResult, error) {
	req, err := validation.ValidateOrderForm(form)
	if err != nil {
		return nil, err
	}

	token, err := s.auth.Token(ctx)
	if err != nil {
		return nil, err
	}

	res, err := s.api.CreateOrder(ctx, token, req)
	if err != nil {
		return nil, s.auth.handleAuthError(ctx, "place order", token, err)
	}

	log.WithFields(log.Fields{
		"order_id":    res.OrderID,
		"model_id":    req.ModelID,
		"total_price": req.TotalPrice,
	}).Info("order placed")
	return res, nil
}
