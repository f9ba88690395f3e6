package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]*Language, error)
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Language, error)
	FindByIsoCodes(ctx context.Context, db *gorm.DB, codes []string) ([]*Language, error)
}
