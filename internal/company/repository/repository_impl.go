package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/company/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"gorm.io/gorm"
)

var sortColumns = map[string]string{
	"id":         "id",
	"legal_name": "legal_name",
	"trade_name": "trade_name",
	"cnpj":       "cnpj",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Create(company).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *repo) FindByCNPJ(ctx context.Context, db *gorm.DB, cnpj string, excludeID int64) (*domain.Company, error) {
	stmt := db.WithContext(ctx).
		Where("cnpj = ? AND deleted_at IS NULL", cnpj)
	if excludeID != 0 {
		stmt = stmt.Where("id <> ?", excludeID)
	}

	var company domain.Company
	err := stmt.First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, nameFilter string, page pagination.Pageable) ([]*domain.Company, int64, error) {
	stmt := db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("deleted_at IS NULL")
	if nameFilter != "" {
		like := "%" + nameFilter + "%"
		stmt = stmt.Where(
			"LOWER(legal_name) LIKE LOWER(?) OR LOWER(trade_name) LIKE LOWER(?)",
			like, like,
		)
	}

	var total int64
	if err := stmt.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []*domain.Company
	order := pagination.OrderClause(page.Sort, sortColumns, "id asc")
	err := pagination.Apply(stmt.Session(&gorm.Session{}), page, order).Find(&companies).Error
	if err != nil {
		return nil, 0, err
	}
	return companies, total, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("id = ? AND deleted_at IS NULL", company.ID).
		Updates(map[string]any{
			"legal_name": company.LegalName,
			"trade_name": company.TradeName,
			"cnpj":       company.CNPJ,
			"phones":     company.Phones,
			"emails":     company.Emails,
			"updated_at": company.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}
