package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/customer/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":           "id",
	"name":         "name",
	"credit_limit": "credit_limit",
	"created_at":   "created_at",
	"updated_at":   "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Create(customer).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, nameFilter string, page pagination.Pageable) ([]*domain.Customer, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("deleted_at IS NULL")
	if nameFilter != "" {
		stmt = stmt.Where("LOWER(name) LIKE LOWER(?)", "%"+nameFilter+"%")
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var customers []*domain.Customer
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&customers).Error
	if err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ? AND deleted_at IS NULL", customer.ID).
		Updates(map[string]any{
			"name":         customer.Name,
			"credit_limit": customer.CreditLimit,
			"updated_at":   customer.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Customer{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}
