package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, product *Product) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Product, error)
	// List applies the search disjunction over id, price and status
	// equality, falling back to a substring match on the status text when
	// the term fits none of those shapes.
	List(ctx context.Context, db *gorm.DB, search string, page pagination.Pageable) ([]*Product, int64, error)
	Update(ctx context.Context, db *gorm.DB, product *Product) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error

	ReplaceCategories(ctx context.Context, db *gorm.DB, productID int64, categoryIDs []int64) error

	FindTranslations(ctx context.Context, db *gorm.DB, productID int64) ([]TranslationRow, error)
	DeleteTranslations(ctx context.Context, db *gorm.DB, productID int64) error
	InsertTranslations(ctx context.Context, db *gorm.DB, rows []ProductTranslation) error
}
