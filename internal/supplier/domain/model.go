package domain

import (
	"strconv"
	"strings"
	"time"

	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
)

// Supplier types discriminate the tagged union: a natural person carries
// a CPF, a legal entity carries a CNPJ, never both.
const (
	TypeNaturalPerson = "NATURAL_PERSON"
	TypeLegalEntity   = "LEGAL_ENTITY"
)

func ValidType(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case TypeNaturalPerson, TypeLegalEntity:
		return true
	default:
		return false
	}
}

// Supplier persists both variants in one table with nullable
// type-specific columns, dispatched by SupplierType.
type Supplier struct {
	ID           int64      `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name" gorm:"type:varchar(100);not null"`
	SupplierType string     `json:"supplier_type" gorm:"type:varchar(20);not null"`
	CPF          *string    `json:"cpf,omitempty" gorm:"type:varchar(11);uniqueIndex"`
	CNPJ         *string    `json:"cnpj,omitempty" gorm:"type:varchar(14);uniqueIndex"`
	AddressID    int64      `json:"address_id" gorm:"column:addresses_id;not null"`
	CreatedAt    time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"not null"`
	DeletedAt    *time.Time `json:"-" gorm:"index"`
}

func (Supplier) TableName() string { return "suppliers" }

type CreateSupplierRequest struct {
	Name         string                       `json:"name"`
	SupplierType string                       `json:"supplier_type"`
	CPF          string                       `json:"cpf"`
	CNPJ         string                       `json:"cnpj"`
	Address      addressdomain.AddressRequest `json:"address"`
}

// UpdateSupplierRequest fully replaces the supplier. Every field is
// required again; the address row keeps its identity.
type UpdateSupplierRequest struct {
	Name         string                       `json:"name"`
	SupplierType string                       `json:"supplier_type"`
	CPF          string                       `json:"cpf"`
	CNPJ         string                       `json:"cnpj"`
	Address      addressdomain.AddressRequest `json:"address"`
}

type SupplierResponse struct {
	ID           string                        `json:"id"`
	Name         string                        `json:"name"`
	SupplierType string                        `json:"supplier_type"`
	CPF          string                        `json:"cpf,omitempty"`
	CNPJ         string                        `json:"cnpj,omitempty"`
	Address      addressdomain.AddressResponse `json:"address"`
	CreatedAt    time.Time                     `json:"created_at"`
	UpdatedAt    time.Time                     `json:"updated_at"`
}

func ToResponse(s *Supplier, address *addressdomain.Address) SupplierResponse {
	resp := SupplierResponse{
		ID:           strconv.FormatInt(s.ID, 10),
		Name:         s.Name,
		SupplierType: s.SupplierType,
		Address:      addressdomain.ToResponse(address),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
	if s.CPF != nil {
		resp.CPF = *s.CPF
	}
	if s.CNPJ != nil {
		resp.CNPJ = *s.CNPJ
	}
	return resp
}
