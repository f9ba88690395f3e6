package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, company *Company) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Company, error)
	FindByCNPJ(ctx context.Context, db *gorm.DB, cnpj string, excludeID int64) (*Company, error)
	List(ctx context.Context, db *gorm.DB, nameFilter string, page pagination.Pageable) ([]*Company, int64, error)
	Update(ctx context.Context, db *gorm.DB, company *Company) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
}
