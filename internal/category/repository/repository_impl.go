package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/smallbiznis/estoque/internal/category/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"description": "description",
	"created_at":  "created_at",
	"updated_at":  "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).Create(category).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Category, error) {
	var category domain.Category
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *repo) FindByIDs(ctx context.Context, db *gorm.DB, ids []int64) ([]*domain.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var categories []*domain.Category
	err := db.WithContext(ctx).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, search string, page pagination.Pageable) ([]*domain.Category, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("deleted_at IS NULL")

	if search != "" {
		like := "%" + search + "%"
		if id, err := strconv.ParseInt(search, 10, 64); err == nil {
			stmt = stmt.Where(
				"id = ? OR LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
				id, like, like,
			)
		} else {
			stmt = stmt.Where(
				"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)",
				like, like,
			)
		}
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var categories []*domain.Category
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&categories).Error
	if err != nil {
		return nil, 0, err
	}
	return categories, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, category *domain.Category) error {
	return db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ? AND deleted_at IS NULL", category.ID).
		Updates(map[string]any{
			"name":        category.Name,
			"description": category.Description,
			"updated_at":  category.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}

func (r *repo) CountLiveProducts(ctx context.Context, db *gorm.DB, categoryID int64) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Table("product_categories").
		Joins("JOIN products ON products.id = product_categories.products_id").
		Where("product_categories.categories_id = ? AND products.deleted_at IS NULL", categoryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repo) FindByProductID(ctx context.Context, db *gorm.DB, productID int64) ([]*domain.Category, error) {
	var categories []*domain.Category
	err := db.WithContext(ctx).
		Joins("JOIN product_categories ON product_categories.categories_id = categories.id").
		Where("product_categories.products_id = ? AND categories.deleted_at IS NULL", productID).
		Order("categories.id asc").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
