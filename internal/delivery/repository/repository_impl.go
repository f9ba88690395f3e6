package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/delivery/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":         "id",
	"price":      "price",
	"status":     "status",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, delivery *domain.Delivery) error {
	return db.WithContext(ctx).Create(delivery).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Delivery, error) {
	var delivery domain.Delivery
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&delivery).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &delivery, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*domain.Delivery, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Delivery{}).
		Where("deleted_at IS NULL")

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var deliveries []*domain.Delivery
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&deliveries).Error
	if err != nil {
		return nil, 0, err
	}
	return deliveries, total, nil
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Delivery{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}
