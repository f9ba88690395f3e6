package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, address *Address) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Address, error)
	Update(ctx context.Context, db *gorm.DB, address *Address) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
}
