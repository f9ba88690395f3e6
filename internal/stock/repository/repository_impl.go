package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/stock/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":         "id",
	"code":       "code",
	"amount":     "amount",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, stock *domain.ProductStock) error {
	return db.WithContext(ctx).Create(stock).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.ProductStock, error) {
	return r.findOne(ctx, db, "id = ? AND deleted_at IS NULL", id)
}

func (r *repo) FindByProductAndWarehouse(ctx context.Context, db *gorm.DB, productID, warehouseID int64) (*domain.ProductStock, error) {
	return r.findOne(ctx, db,
		"products_id = ? AND warehouses_id = ? AND deleted_at IS NULL",
		productID, warehouseID,
	)
}

func (r *repo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.ProductStock, error) {
	return r.findOne(ctx, db, "code = ? AND deleted_at IS NULL", code)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.ProductStock, error) {
	var stock domain.ProductStock
	err := db.WithContext(ctx).Where(query, args...).First(&stock).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &stock, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, page pagination.Pageable) ([]*domain.ProductStock, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.ProductStock{}).
		Where("deleted_at IS NULL")

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var stocks []*domain.ProductStock
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&stocks).Error
	if err != nil {
		return nil, 0, err
	}
	return stocks, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, stock *domain.ProductStock) error {
	return db.WithContext(ctx).
		Model(&domain.ProductStock{}).
		Where("id = ? AND deleted_at IS NULL", stock.ID).
		Updates(map[string]any{
			"code":          stock.Code,
			"amount":        stock.Amount,
			"products_id":   stock.ProductID,
			"warehouses_id": stock.WarehouseID,
			"updated_at":    stock.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.ProductStock{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}
