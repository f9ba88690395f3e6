package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/supplier/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":            "id",
	"name":          "name",
	"supplier_type": "supplier_type",
	"created_at":    "created_at",
	"updated_at":    "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).Create(supplier).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Supplier, error) {
	var supplier domain.Supplier
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *repo) FindByCPF(ctx context.Context, db *gorm.DB, cpf string, excludeID int64) (*domain.Supplier, error) {
	return r.findByDoc(ctx, db, "cpf", cpf, excludeID)
}

func (r *repo) FindByCNPJ(ctx context.Context, db *gorm.DB, cnpj string, excludeID int64) (*domain.Supplier, error) {
	return r.findByDoc(ctx, db, "cnpj", cnpj, excludeID)
}

func (r *repo) findByDoc(ctx context.Context, db *gorm.DB, column, value string, excludeID int64) (*domain.Supplier, error) {
	stmt := db.WithContext(ctx).
		Where(column+" = ? AND deleted_at IS NULL", value)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var supplier domain.Supplier
	err := stmt.First(&supplier).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &supplier, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, nameFilter string, page pagination.Pageable) ([]*domain.Supplier, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Supplier{}).
		Where("deleted_at IS NULL")
	if nameFilter != "" {
		stmt = stmt.Where("LOWER(name) LIKE LOWER(?)", "%"+nameFilter+"%")
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var suppliers []*domain.Supplier
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&suppliers).Error
	if err != nil {
		return nil, 0, err
	}
	return suppliers, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, supplier *domain.Supplier) error {
	return db.WithContext(ctx).
		Model(&domain.Supplier{}).
		Where("id = ? AND deleted_at IS NULL", supplier.ID).
		Updates(map[string]any{
			"name":          supplier.Name,
			"supplier_type": supplier.SupplierType,
			"cpf":           supplier.CPF,
			"cnpj":          supplier.CNPJ,
			"updated_at":    supplier.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Supplier{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}
