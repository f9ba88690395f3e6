package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, stock *ProductStock) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*ProductStock, error)
	FindByProductAndWarehouse(ctx context.Context, db *gorm.DB, productID, warehouseID int64) (*ProductStock, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*ProductStock, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*ProductStock, int64, error)
	Update(ctx context.Context, db *gorm.DB, stock *ProductStock) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
}
