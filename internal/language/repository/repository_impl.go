package repository

import (
	"context"
	"errors"

	"github.com/smallbiznis/estoque/internal/language/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Language, error) {
	var languages []*domain.Language
	err := db.WithContext(ctx).
		Order("iso_code asc").
		Find(&languages).Error
	if err != nil {
		return nil, err
	}
	return languages, nil
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id int64) (*domain.Language, error) {
	var language domain.Language
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&language).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &language, nil
}

func (r *repo) FindByIsoCodes(ctx context.Context, db *gorm.DB, codes []string) ([]*domain.Language, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	var languages []*domain.Language
	err := db.WithContext(ctx).
		Where("iso_code IN ?", codes).
		Find(&languages).Error
	if err != nil {
		return nil, err
	}
	return languages, nil
}
