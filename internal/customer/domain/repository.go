package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, nameFilter string, page pagination.Pageable) ([]*Customer, int64, error)
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
}
