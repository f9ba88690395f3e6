package repository

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/estoque/internal/product/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":                 "id",
	"warranty_date":      "warranty_date",
	"status":             "status",
	"minimum_sale_price": "minimum_sale_price",
	"created_at":         "created_at",
	"updated_at":         "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Create(product).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, search string, page pagination.Pageable) ([]*domain.Product, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("deleted_at IS NULL")

	if search != "" {
		conds, args := searchPredicates(search)
		if len(conds) == 0 {
			stmt = stmt.Where("LOWER(status) LIKE LOWER(?)", "%"+search+"%")
		} else {
			stmt = stmt.Where(strings.Join(conds, " OR "), args...)
		}
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []*domain.Product
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&products).Error
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// searchPredicates collects every predicate the term takes the shape of:
// numeric id, exact decimal price, status name. The caller combines them
// with OR. An empty result means the term fits none of those shapes and
// degrades to a substring match on the status text; that fallback is
// load-bearing for existing clients and must not be removed.
func searchPredicates(search string) ([]string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if id, err := strconv.ParseInt(search, 10, 64); err == nil {
		conds = append(conds, "id = ?")
		args = append(args, id)
	}
	if price, err := decimal.NewFromString(search); err == nil {
		conds = append(conds, "minimum_sale_price = ?")
		args = append(args, price)
	}
	if domain.ValidStatus(search) {
		conds = append(conds, "status = ?")
		args = append(args, strings.ToUpper(strings.TrimSpace(search)))
	}
	return conds, args
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND deleted_at IS NULL", product.ID).
		Updates(map[string]any{
			"warranty_date":      product.WarrantyDate,
			"status":             product.Status,
			"minimum_sale_price": product.MinimumSalePrice,
			"updated_at":         product.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}

func (r *repo) ReplaceCategories(ctx context.Context, db *gorm.DB, productID int64, categoryIDs []int64) error {
	err := db.WithContext(ctx).
		Where("products_id = ?", productID).
		Delete(&domain.ProductCategory{}).Error
	if err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]domain.ProductCategory, 0, len(categoryIDs))
	for _, categoryID := range categoryIDs {
		rows = append(rows, domain.ProductCategory{ProductID: productID, CategoryID: categoryID})
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (r *repo) FindTranslations(ctx context.Context, db *gorm.DB, productID int64) ([]domain.TranslationRow, error) {
	var rows []domain.TranslationRow
	err := db.WithContext(ctx).
		Table("product_translations").
		Select("product_translations.languages_id, languages.iso_code, product_translations.name, product_translations.description").
		Joins("JOIN languages ON languages.id = product_translations.languages_id").
		Where("product_translations.products_id = ?", productID).
		Order("languages.iso_code asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) DeleteTranslations(ctx context.Context, db *gorm.DB, productID int64) error {
	return db.WithContext(ctx).
		Where("products_id = ?", productID).
		Delete(&domain.ProductTranslation{}).Error
}

func (r *repo) InsertTranslations(ctx context.Context, db *gorm.DB, rows []domain.ProductTranslation) error {
	if len(rows) == 0 {
		return nil
	}
	return db.WithContext(ctx).Create(&rows).Error
}
