package domain

import (
	"strconv"
	"time"

	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	"gorm.io/datatypes"
)

// Company is a delivering carrier. Phone and email lists keep their
// request order and are stored as JSON columns.
type Company struct {
	ID        int64                       `json:"id" gorm:"primaryKey"`
	LegalName string                      `json:"legal_name" gorm:"type:varchar(100);not null"`
	TradeName string                      `json:"trade_name" gorm:"type:varchar(100);not null"`
	CNPJ      string                      `json:"cnpj" gorm:"type:varchar(14);not null;uniqueIndex"`
	Phones    datatypes.JSONSlice[string] `json:"phones"`
	Emails    datatypes.JSONSlice[string] `json:"emails"`
	AddressID int64                       `json:"address_id" gorm:"column:addresses_id;not null"`
	CreatedAt time.Time                   `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time                   `json:"updated_at" gorm:"not null"`
	DeletedAt *time.Time                  `json:"-" gorm:"index"`
}

func (Company) TableName() string { return "companies" }

type CreateCompanyRequest struct {
	LegalName string                       `json:"legal_name"`
	TradeName string                       `json:"trade_name"`
	CNPJ      string                       `json:"cnpj"`
	Phones    []string                     `json:"phones"`
	Emails    []string                     `json:"emails"`
	Address   addressdomain.AddressRequest `json:"address"`
}

type UpdateCompanyRequest struct {
	LegalName string                       `json:"legal_name"`
	TradeName string                       `json:"trade_name"`
	CNPJ      string                       `json:"cnpj"`
	Phones    []string                     `json:"phones"`
	Emails    []string                     `json:"emails"`
	Address   addressdomain.AddressRequest `json:"address"`
}

type CompanyResponse struct {
	ID        string                        `json:"id"`
	LegalName string                        `json:"legal_name"`
	TradeName string                        `json:"trade_name"`
	CNPJ      string                        `json:"cnpj"`
	Phones    []string                      `json:"phones"`
	Emails    []string                      `json:"emails"`
	Address   addressdomain.AddressResponse `json:"address"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
}

func ToResponse(c *Company, address *addressdomain.Address) CompanyResponse {
	return CompanyResponse{
		ID:        strconv.FormatInt(c.ID, 10),
		LegalName: c.LegalName,
		TradeName: c.TradeName,
		CNPJ:      c.CNPJ,
		Phones:    c.Phones,
		Emails:    c.Emails,
		Address:   addressdomain.ToResponse(address),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
