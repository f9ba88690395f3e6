package domain

import (
	"strconv"
	"time"
)

// ProductStock ties a product to a warehouse with a quantity and a
// human-readable code. At most one live row exists per (product,
// warehouse) pair and codes are globally unique; the database constraints
// are authoritative, service pre-checks are early exits.
type ProductStock struct {
	ID          int64      `json:"id" gorm:"primaryKey"`
	Code        string     `json:"code" gorm:"type:varchar(50);not null;uniqueIndex"`
	Amount      int64      `json:"amount" gorm:"not null"`
	ProductID   int64      `json:"product_id" gorm:"column:products_id;not null;uniqueIndex:idx_product_warehouse"`
	WarehouseID int64      `json:"warehouse_id" gorm:"column:warehouses_id;not null;uniqueIndex:idx_product_warehouse"`
	CreatedAt   time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"not null"`
	DeletedAt   *time.Time `json:"-" gorm:"index"`
}

func (ProductStock) TableName() string { return "product_stocks" }

type CreateStockRequest struct {
	Code        string `json:"code"`
	Amount      int64  `json:"amount"`
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
}

type UpdateStockRequest struct {
	Code        string `json:"code"`
	Amount      int64  `json:"amount"`
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
}

type StockResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Amount      int64     `json:"amount"`
	ProductID   string    `json:"product_id"`
	WarehouseID string    `json:"warehouse_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToResponse(s *ProductStock) StockResponse {
	return StockResponse{
		ID:          strconv.FormatInt(s.ID, 10),
		Code:        s.Code,
		Amount:      s.Amount,
		ProductID:   strconv.FormatInt(s.ProductID, 10),
		WarehouseID: strconv.FormatInt(s.WarehouseID, 10),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
