package domain

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
)

// Customer is the sales-side party placing orders. It owns its address.
type Customer struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	CreditLimit decimal.Decimal `json:"credit_limit" gorm:"type:decimal(10,2);not null"`
	AddressID   int64           `json:"address_id" gorm:"column:addresses_id;not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"not null"`
	DeletedAt   *time.Time      `json:"-" gorm:"index"`
}

func (Customer) TableName() string { return "customers" }

type CreateCustomerRequest struct {
	Name        string                       `json:"name"`
	CreditLimit decimal.Decimal              `json:"credit_limit"`
	Address     addressdomain.AddressRequest `json:"address"`
}

type UpdateCustomerRequest struct {
	Name        string                       `json:"name"`
	CreditLimit decimal.Decimal              `json:"credit_limit"`
	Address     addressdomain.AddressRequest `json:"address"`
}

type CustomerResponse struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	CreditLimit decimal.Decimal               `json:"credit_limit"`
	Address     addressdomain.AddressResponse `json:"address"`
	CreatedAt   time.Time                     `json:"created_at"`
	UpdatedAt   time.Time                     `json:"updated_at"`
}

func ToResponse(c *Customer, address *addressdomain.Address) CustomerResponse {
	return CustomerResponse{
		ID:          strconv.FormatInt(c.ID, 10),
		Name:        c.Name,
		CreditLimit: c.CreditLimit,
		Address:     addressdomain.ToResponse(address),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
