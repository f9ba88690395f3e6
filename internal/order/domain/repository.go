package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, order *Order) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Order, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*Order, int64, error)
	Update(ctx context.Context, db *gorm.DB, order *Order) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error

	FindLines(ctx context.Context, db *gorm.DB, orderID int64) ([]OrderProduct, error)
	ReplaceLines(ctx context.Context, db *gorm.DB, orderID int64, lines []OrderProduct) error
}
