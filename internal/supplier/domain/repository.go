package domain

import (
	"context"
	"time"

	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	FindByID(ctx context.Context, db *gorm.DB, id int64) (*Supplier, error)
	// FindByCPF and FindByCNPJ exclude excludeID so updates can re-check
	// uniqueness without matching themselves. Pass 0 on create.
	FindByCPF(ctx context.Context, db *gorm.DB, cpf string, excludeID int64) (*Supplier, error)
	FindByCNPJ(ctx context.Context, db *gorm.DB, cnpj string, excludeID int64) (*Supplier, error)
	List(ctx context.Context, db *gorm.DB, nameFilter string, page pagination.Pageable) ([]*Supplier, int64, error)
	Update(ctx context.Context, db *gorm.DB, supplier *Supplier) error
	SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error
}
