package domain

import (
	"strconv"
	"time"
)

// Address is a value entity owned exclusively by its parent aggregate
// (supplier, customer, company, warehouse or delivery destination). The
// owner creates the row before itself and deletes it after itself;
// there is no ORM-level cascade.
type Address struct {
	ID        int64      `json:"id" gorm:"primaryKey"`
	Country   string     `json:"country" gorm:"type:varchar(50)"`
	State     string     `json:"state" gorm:"type:varchar(50)"`
	City      string     `json:"city" gorm:"type:varchar(50)"`
	Street    string     `json:"street" gorm:"type:varchar(100)"`
	Number    string     `json:"number" gorm:"type:varchar(10)"`
	ZipCode   string     `json:"zip_code" gorm:"column:zip_code;type:varchar(15)"`
	CreatedAt time.Time  `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"not null"`
	DeletedAt *time.Time `json:"-" gorm:"index"`
}

func (Address) TableName() string { return "addresses" }

// AddressRequest is the embedded address payload used by every owning
// aggregate's create/update requests.
type AddressRequest struct {
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Number  string `json:"number"`
	ZipCode string `json:"zip_code"`
}

// AddressResponse is the embedded address payload in responses.
type AddressResponse struct {
	ID      string `json:"id"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Street  string `json:"street"`
	Number  string `json:"number"`
	ZipCode string `json:"zip_code"`
}

// New builds an Address from a request payload.
func New(id int64, req AddressRequest, now time.Time) *Address {
	return &Address{
		ID:        id,
		Country:   req.Country,
		State:     req.State,
		City:      req.City,
		Street:    req.Street,
		Number:    req.Number,
		ZipCode:   req.ZipCode,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToResponse maps an Address onto its response payload. A nil address
// yields a zero value so callers can embed it unconditionally.
func ToResponse(a *Address) AddressResponse {
	if a == nil {
		return AddressResponse{}
	}
	return AddressResponse{
		ID:      formatID(a.ID),
		Country: a.Country,
		State:   a.State,
		City:    a.City,
		Street:  a.Street,
		Number:  a.Number,
		ZipCode: a.ZipCode,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
