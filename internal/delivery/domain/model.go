package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCanceled   = "canceled"
)

func ValidStatus(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCanceled:
		return true
	default:
		return false
	}
}

// Delivery links an order to a source warehouse, a fulfilling company
// and an owned destination address.
type Delivery struct {
	ID                   int64           `json:"id" gorm:"primaryKey"`
	OrderID              int64           `json:"order_id" gorm:"column:orders_id;not null"`
	CompanyID            int64           `json:"company_id" gorm:"column:companies_id;not null"`
	SourceWarehouseID    int64           `json:"source_warehouse_id" gorm:"column:warehouses_source_id;not null"`
	DestinationAddressID int64           `json:"destination_address_id" gorm:"column:addresses_destination_id;not null"`
	Price                decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Status               string          `json:"status" gorm:"type:varchar(20);not null"`
	CreatedAt            time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt            time.Time       `json:"updated_at" gorm:"not null"`
	DeletedAt            *time.Time      `json:"-" gorm:"index"`
}

func (Delivery) TableName() string { return "deliveries" }

type CreateDeliveryRequest struct {
	OrderID            string                       `json:"order_id"`
	CompanyID          string                       `json:"company_id"`
	SourceWarehouseID  string                       `json:"source_warehouse_id"`
	Price              decimal.Decimal              `json:"price"`
	Status             string                       `json:"status"`
	DestinationAddress addressdomain.AddressRequest `json:"destination_address"`
}

type DeliveryResponse struct {
	ID                 string                        `json:"id"`
	OrderID            string                        `json:"order_id"`
	CompanyID          string                        `json:"company_id"`
	SourceWarehouseID  string                        `json:"source_warehouse_id"`
	Price              decimal.Decimal               `json:"price"`
	Status             string                        `json:"status"`
	DestinationAddress addressdomain.AddressResponse `json:"destination_address"`
	CreatedAt          time.Time                     `json:"created_at"`
	UpdatedAt          time.Time                     `json:"updated_at"`
}

func ToResponse(d *Delivery, destination *addressdomain.Address) DeliveryResponse {
	return DeliveryResponse{
		ID:                 strconv.FormatInt(d.ID, 10),
		OrderID:            strconv.FormatInt(d.OrderID, 10),
		CompanyID:          strconv.FormatInt(d.CompanyID, 10),
		SourceWarehouseID:  strconv.FormatInt(d.SourceWarehouseID, 10),
		Price:              d.Price,
		Status:             d.Status,
		DestinationAddress: addressdomain.ToResponse(destination),
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
