package domain

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPrinting  OrderStatus = "printing"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type Order struct {
	ID                  string        `json:"id"`
	ModelName           string        `json:"model_name"`
	TotalPrice          float64       `json:"total_price"`
	Status              OrderStatus   `json:"status"`
	PaymentStatus       PaymentStatus `json:"payment_status"`
	CreatedAt           Timestamp     `json:"created_at"`
	EstimatedCompletion *Timestamp    `json:"estimated_completion,omitempty"`
}

type OrderRequest struct {
	ModelID         string             `json:"model_id"`
	Calculation     CalculationRequest `json:"calculation"`
	TotalPrice      float64            `json:"total_price"`
	DeliveryAddress string             `json:"delivery_address"`
	Phone           string             `json:"phone"`
}

type OrderResult struct {
	Message      string      `json:"message"`
	OrderID      string      `json:"order_id"`
	PointsEarned int         `json:"points_earned"`
	Status       OrderStatus `json:"status"`
}
