package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, delivery *Delivery) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Delivery, error)
	List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*Delivery, int64, error)
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
}
