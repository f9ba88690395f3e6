package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product statuses form a closed set.
const (
	StatusTested   = "TESTED"
	StatusReturned = "RETURNED"
)

// ValidStatus reports whether value names a known status, ignoring case.
func ValidStatus(value string) bool {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case StatusTested, StatusReturned:
		return true
	default:
		return false
	}
}

// Product is the catalog aggregate root. Category links and translations
// are child rows managed exclusively through the product lifecycle.
type Product struct {
	ID               int64           `json:"id" gorm:"primaryKey"`
	WarrantyDate     time.Time       `json:"warranty_date"`
	Status           string          `json:"status" gorm:"type:varchar(20);not null"`
	MinimumSalePrice decimal.Decimal `json:"minimum_sale_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt        time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time       `json:"updated_at" gorm:"not null"`
	DeletedAt        *time.Time      `json:"-" gorm:"index"`
}

func (Product) TableName() string { return "products" }

// ProductTranslation holds the per-language name and description of a
// product. Identity is the composite (product, language) pair; rows are
// replaced wholesale on every product update, never patched.
type ProductTranslation struct {
	ProductID   int64  `json:"products_id" gorm:"column:products_id;primaryKey"`
	LanguageID  int64  `json:"languages_id" gorm:"column:languages_id;primaryKey"`
	Name        string `json:"name" gorm:"type:varchar(100);not null"`
	Description string `json:"description" gorm:"type:text"`
}

func (ProductTranslation) TableName() string { return "product_translations" }

// ProductCategory is a row of the many-to-many join table.
type ProductCategory struct {
	ProductID  int64 `gorm:"column:products_id;primaryKey"`
	CategoryID int64 `gorm:"column:categories_id;primaryKey"`
}

func (ProductCategory) TableName() string { return "product_categories" }

// TranslationRow is a translation joined with its language iso code, the
// shape responses and the upsert logic work with.
type TranslationRow struct {
	LanguageID  int64  `gorm:"column:languages_id"`
	IsoCode     string `gorm:"column:iso_code"`
	Name        string `gorm:"column:name"`
	Description string `gorm:"column:description"`
}

type CreateProductRequest struct {
	WarrantyDate     time.Time         `json:"warranty_date"`
	Status           string            `json:"status"`
	MinimumSalePrice decimal.Decimal   `json:"minimum_sale_price"`
	CategoryIDs      []string          `json:"category_ids"`
	Names            map[string]string `json:"names"`
	Descriptions     map[string]string `json:"descriptions"`
}

// UpdateProductRequest replaces the product's scalar fields and its whole
// translation set. The category set is replaced only when category_ids is
// present in the payload; an explicit empty list clears it.
type UpdateProductRequest struct {
	WarrantyDate     time.Time         `json:"warranty_date"`
	Status           string            `json:"status"`
	MinimumSalePrice decimal.Decimal   `json:"minimum_sale_price"`
	CategoryIDs      *[]string         `json:"category_ids"`
	Names            map[string]string `json:"names"`
	Descriptions     map[string]string `json:"descriptions"`
}

// TranslationValue is one entry of the translation map keyed by iso code.
type TranslationValue struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductResponse struct {
	ID               string                      `json:"id"`
	WarrantyDate     time.Time                   `json:"warranty_date"`
	Status           string                      `json:"status"`
	MinimumSalePrice decimal.Decimal             `json:"minimum_sale_price"`
	Categories       []CategoryRef               `json:"categories"`
	Translations     map[string]TranslationValue `json:"translations"`
	CreatedAt        time.Time                   `json:"created_at"`
	UpdatedAt        time.Time                   `json:"updated_at"`
}

// CategoryRef is the embedded category payload on product responses.
type CategoryRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func FormatID(id int64) string { return strconv.FormatInt(id, 10) }
