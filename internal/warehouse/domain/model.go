package domain

import (
	"strconv"
	"time"

	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
)

// Warehouse is a physical stock location. It owns its address row: the
// address is created before the warehouse and soft-deleted after it, in
// application code.
type Warehouse struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"type:varchar(100);not null"`
	AddressID int64      `json:"address_id" gorm:"column:addresses_id;not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}

func (Warehouse) TableName() string { return "warehouses" }

type CreateWarehouseRequest struct {
	Name    string                       `json:"name"`
	Address addressdomain.AddressRequest `json:"address"`
}

// UpdateWarehouseRequest fully replaces name and address contents; the
// address row keeps its identity.
type UpdateWarehouseRequest struct {
	Name    string                       `json:"name"`
	Address addressdomain.AddressRequest `json:"address"`
}

type WarehouseResponse struct {
	ID        string                        `json:"id"`
	Name      string                        `json:"name"`
	Address   addressdomain.AddressResponse `json:"address"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

func ToResponse(w *Warehouse, address *addressdomain.Address) WarehouseResponse {
	return WarehouseResponse{
		ID:        strconv.FormatInt(w.ID, 10),
		Name:      w.Name,
		Address:   addressdomain.ToResponse(address),
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}
