package repository

import (
	"context"
	"errors"
	"time"

	"github.com/smallbiznis/estoque/internal/address/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Create(ctx context.Context, db *gorm.DB, address *domain.Address) error {
	return db.WithContext(ctx).Create(address).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Address, error) {
	var address domain.Address
	err := db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&address).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, address *domain.Address) error {
	return db.WithContext(ctx).
		Model(&domain.Address{}).
		Where("id = ? AND deleted_at IS NULL", address.ID).
		Updates(map[string]any{
			"country":    address.Country,
			"state":      address.State,
			"city":       address.City,
			"street":     address.Street,
			"number":     address.Number,
			"zip_code":   address.ZipCode,
			"updated_at": address.UpdatedAt,
		}).Error
}

func (r *repo) SoftDelete(ctx context.Context, db *gorm.DB, id int64, at time.Time) error {
	return db.WithContext(ctx).
		Model(&domain.Address{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]any{"deleted_at": at, "updated_at": at}).Error
}
