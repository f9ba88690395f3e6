package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	MethodOnline   = "online"
	MethodInPerson = "in_person"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCanceled   = "canceled"
)

func ValidMethod(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case MethodOnline, MethodInPerson:
		return true
	default:
		return false
	}
}

func ValidStatus(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	default:
		return false
	}
}

// Order is a customer order. The expected_to_deliver_at >= ordered_at
// rule is enforced both in the service and by a database check
// constraint.
type Order struct {
	ID                  int64      `json:"id" gorm:"primaryKey"`
	OrderMethod         string     `json:"order_method" gorm:"type:varchar(20);not null"`
	OrderStatus         string     `json:"order_status" gorm:"column:status;type:varchar(20);not null"`
	CustomerID          int64      `json:"customer_id" gorm:"column:customers_id;not null"`
	OrderedAt           time.Time  `json:"ordered_at" gorm:"not null"`
	ExpectedToDeliverAt time.Time  `json:"expected_to_deliver_at" gorm:"not null"`
	CreatedAt           time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt           time.Time  `json:"updated_at" gorm:"not null"`
	DeletedAt           *time.Time `json:"-" gorm:"index"`
}

func (Order) TableName() string { return "orders" }

// OrderProduct is one priced line item. Identity is the composite
// (order, product) pair; the line set is replaced wholesale on update.
type OrderProduct struct {
	OrderID   int64           `json:"order_id" gorm:"column:orders_id;primaryKey"`
	ProductID int64           `json:"product_id" gorm:"column:products_id;primaryKey"`
	Amount    int64           `json:"amount" gorm:"not null"`
	SalePrice decimal.Decimal `json:"sale_price" gorm:"type:decimal(10,2);not null"`
}

func (OrderProduct) TableName() string { return "orders_products" }

type OrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Amount    int64           `json:"amount"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

type CreateOrderRequest struct {
	OrderMethod         string             `json:"order_method"`
	OrderStatus         string             `json:"order_status"`
	CustomerID          string             `json:"customer_id"`
	OrderedAt           time.Time          `json:"ordered_at"`
	ExpectedToDeliverAt time.Time          `json:"expected_to_deliver_at"`
	Products            []OrderLineRequest `json:"products"`
}

// UpdateOrderRequest replaces the header fields and the whole line set.
type UpdateOrderRequest struct {
	OrderMethod         string             `json:"order_method"`
	OrderStatus         string             `json:"order_status"`
	CustomerID          string             `json:"customer_id"`
	OrderedAt           time.Time          `json:"ordered_at"`
	ExpectedToDeliverAt time.Time          `json:"expected_to_deliver_at"`
	Products            []OrderLineRequest `json:"products"`
}

type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	Amount    int64           `json:"amount"`
	SalePrice decimal.Decimal `json:"sale_price"`
}

type OrderResponse struct {
	ID                  string              `json:"id"`
	OrderMethod         string              `json:"order_method"`
	OrderStatus         string              `json:"order_status"`
	CustomerID          string              `json:"customer_id"`
	OrderedAt           time.Time           `json:"ordered_at"`
	ExpectedToDeliverAt time.Time           `json:"expected_to_deliver_at"`
	Products            []OrderLineResponse `json:"products"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

func ToResponse(o *Order, lines []OrderProduct) OrderResponse {
	out := make([]OrderLineResponse, 0, len(lines))
	for _, line := range lines {
		out = append(out, OrderLineResponse{
			ProductID: strconv.FormatInt(line.ProductID, 10),
			Amount:    line.Amount,
			SalePrice: line.SalePrice,
		})
	}
	return OrderResponse{
		ID:                  strconv.FormatInt(o.ID, 10),
		OrderMethod:         o.OrderMethod,
		OrderStatus:         o.OrderStatus,
		CustomerID:          strconv.FormatInt(o.CustomerID, 10),
		OrderedAt:           o.OrderedAt,
		ExpectedToDeliverAt: o.ExpectedToDeliverAt,
		Products:            out,
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
	}
}
