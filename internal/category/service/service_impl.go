package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/category/domain"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Listing *config.ListingConfigHolder
	Repo    domain.Repository
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	listing *config.ListingConfigHolder
	repo    domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("category.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		listing: p.Listing,
		repo:    p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCategoryRequest) (domain.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return domain.CategoryResponse{}, err
	}

	now := s.clock.Now()
	category := domain.Category{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.repo.Create(ctx, tx, &category)
	})
	if err != nil {
		return domain.CategoryResponse{}, err
	}

	return domain.ToResponse(&category), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.CategoryResponse, error) {
	category, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.CategoryResponse{}, err
	}
	if category == nil {
		return domain.CategoryResponse{}, apperror.NewNotFound("category", id)
	}
	return domain.ToResponse(category), nil
}

func (s *Service) List(ctx context.Context, search string, page pagination.Pageable) (pagination.Page[domain.CategoryResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	categories, total, err := s.repo.List(ctx, s.db, strings.TrimSpace(search), page)
	if err != nil {
		return pagination.Page[domain.CategoryResponse]{}, err
	}

	content := make([]domain.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		content = append(content, domain.ToResponse(category))
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateCategoryRequest) (domain.CategoryResponse, error) {
	var updated domain.Category

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFound("category", id)
		}

		if req.Name != nil {
			name := strings.TrimSpace(*req.Name)
			if err := validateName(name); err != nil {
				return err
			}
			category.Name = name
		}
		if req.Description != nil {
			category.Description = *req.Description
		}
		category.UpdatedAt = s.clock.Now()

		if err := s.repo.Update(ctx, tx, category); err != nil {
			return err
		}
		updated = *category
		return nil
	})
	if err != nil {
		return domain.CategoryResponse{}, err
	}

	return domain.ToResponse(&updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		category, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFound("category", id)
		}

		count, err := s.repo.CountLiveProducts(ctx, tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return apperror.NewBusinessRule(
				"cannot delete category '%s': associated with %d product(s)",
				category.Name, count,
			)
		}

		return s.repo.SoftDelete(ctx, tx, id, s.clock.Now())
	})
}

func validateName(name string) error {
	if name == "" {
		return apperror.NewValidation("name", "must not be blank")
	}
	if len(name) > 100 {
		return apperror.NewValidation("name", "must be at most 100 characters")
	}
	return nil
}
