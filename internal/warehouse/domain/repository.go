package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, warehouse *Warehouse) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Warehouse, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*Warehouse, int64, error)
	Update(ctx context.Context, db *gorm.DB, warehouse *Warehouse) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
}
