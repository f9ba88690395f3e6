package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/warehouse/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, warehouse *domain.Warehouse) error {
	return db.WithContext(ctx).Create(warehouse).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Warehouse, error) {
	var warehouse domain.Warehouse
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&warehouse).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &warehouse, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*domain.Warehouse, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Warehouse{}).
		Where("deleted_at IS NULL")

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var warehouses []*domain.Warehouse
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&warehouses).Error
	if err != nil {
		return nil, 0, err
	}
	return warehouses, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, warehouse *domain.Warehouse) error {
	return db.WithContext(ctx).
		Model(&domain.Warehouse{}).
		Where("id = ? AND deleted_at IS NULL", warehouse.ID).
		Updates(map[string]any{
			"name":       warehouse.Name,
			"updated_at": warehouse.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Warehouse{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}
