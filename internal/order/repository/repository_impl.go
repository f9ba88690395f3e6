package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/order/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":                     "id",
	"order_method":           "order_method",
	"order_status":           "status",
	"ordered_at":             "ordered_at",
	"expected_to_deliver_at": "expected_to_deliver_at",
	"created_at":             "created_at",
	"updated_at":             "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).Create(order).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Order, error) {
	var order domain.Order
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*domain.Order, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("deleted_at IS NULL")

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orders []*domain.Order
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&orders).Error
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, order *domain.Order) error {
	return db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND deleted_at IS NULL", order.ID).
		Updates(map[string]any{
			"order_method":           order.OrderMethod,
			"status":                 order.OrderStatus,
			"customers_id":           order.CustomerID,
			"ordered_at":             order.OrderedAt,
			"expected_to_deliver_at": order.ExpectedToDeliverAt,
			"updated_at":             order.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}

func (r *repo) FindLines(ctx context.Context, db *gorm.DB, orderID int64) ([]domain.OrderProduct, error) {
	var lines []domain.OrderProduct
	err := db.WithContext(ctx).
		Where("orders_id = ?", orderID).
		Order("products_id asc").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *repo) ReplaceLines(ctx context.Context, db *gorm.DB, orderID int64, lines []domain.OrderProduct) error {
	err := db.WithContext(ctx).
		Where("orders_id = ?", orderID).
		Delete(&domain.OrderProduct{}).Error
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&lines).Error
}
