package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, category *Category) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Category, error)
	FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]*Category, error)
	// List applies the search disjunction: id equals the term when it is
	// numeric, OR name contains it, OR description contains it.
	List(ctx context.Context, db *gorm.DB, search string, page pagination.Pageable) ([]*Category, int64, error)
	Update(ctx context.Context, db *gorm.DB, category *Category) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
	// CountLiveProducts counts non-deleted products still linked to the
	// category. Delete is refused while this is non-zero.
	CountLiveProducts(ctx context.Context, db *gorm.DB, categoryID int64) (int64, error)
	FindByProductID(ctx context.Context, db *gorm.DB, productID int64) ([]*Category, error)
}
