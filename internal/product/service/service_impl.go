package service

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estoque/internal/apperror"
	categorydomain "github.com/smallbiznis/estoque/internal/category/domain"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	languagedomain "github.com/smallbiznis/estoque/internal/language/domain"
	"github.com/smallbiznis/estoque/internal/product/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Listing    *config.ListingConfigHolder
	Repo       domain.Repository
	Categories categorydomain.Repository
	Languages  languagedomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	listing    *config.ListingConfigHolder
	repo       domain.Repository
	categories categorydomain.Repository
	languages  languagedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("product.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		listing:    p.Listing,
		repo:       p.Repo,
		categories: p.Categories,
		languages:  p.Languages,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProductRequest) (domain.ProductResponse, error) {
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	if req.MinimumSalePrice.IsNegative() {
		return domain.ProductResponse{}, apperror.NewValidation("minimum_sale_price", "must not be negative")
	}

	categoryIDs, err := parseCategoryIDs(req.CategoryIDs)
	if err != nil {
		return domain.ProductResponse{}, err
	}

	now := s.clock.Now()
	product := domain.Product{
		ID:               s.genID.Generate().Int64(),
		WarrantyDate:     req.WarrantyDate,
		Status:           status,
		MinimumSalePrice: req.MinimumSalePrice.Round(2),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Create(ctx, tx, &product); err != nil {
			return err
		}

		if err := s.resolveAndLinkCategories(ctx, tx, product.ID, categoryIDs); err != nil {
			return err
		}

		rows, err := s.buildTranslations(ctx, tx, product.ID, req.Names, req.Descriptions)
		if err != nil {
			return err
		}
		return s.repo.InsertTranslations(ctx, tx, rows)
	})
	if err != nil {
		return domain.ProductResponse{}, err
	}

	return s.materialize(ctx, &product)
}

func (s *Service) Get(ctx context.Context, id int64) (domain.ProductResponse, error) {
	product, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	if product == nil {
		return domain.ProductResponse{}, apperror.NewNotFound("product", id)
	}
	return s.materialize(ctx, product)
}

func (s *Service) List(ctx context.Context, search string, page pagination.Pageable) (pagination.Page[domain.ProductResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	products, total, err := s.repo.List(ctx, s.db, strings.TrimSpace(search), page)
	if err != nil {
		return pagination.Page[domain.ProductResponse]{}, err
	}

	content := make([]domain.ProductResponse, 0, len(products))
	for _, product := range products {
		resp, err := s.materialize(ctx, product)
		if err != nil {
			return pagination.Page[domain.ProductResponse]{}, err
		}
		content = append(content, resp)
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateProductRequest) (domain.ProductResponse, error) {
	status, err := normalizeStatus(req.Status)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	if req.MinimumSalePrice.IsNegative() {
		return domain.ProductResponse{}, apperror.NewValidation("minimum_sale_price", "must not be negative")
	}

	var categoryIDs []int64
	if req.CategoryIDs != nil {
		categoryIDs, err = parseCategoryIDs(*req.CategoryIDs)
		if err != nil {
			return domain.ProductResponse{}, err
		}
	}

	var updated domain.Product
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFound("product", id)
		}

		product.WarrantyDate = req.WarrantyDate
		product.Status = status
		product.MinimumSalePrice = req.MinimumSalePrice.Round(2)
		product.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, product); err != nil {
			return err
		}

		if req.CategoryIDs != nil {
			if err := s.resolveAndLinkCategories(ctx, tx, id, categoryIDs); err != nil {
				return err
			}
		}

		// Replace semantics: the whole translation set is rebuilt from
		// the request. Omitting a language removes its translation.
		if err := s.repo.DeleteTranslations(ctx, tx, id); err != nil {
			return err
		}
		rows, err := s.buildTranslations(ctx, tx, id, req.Names, req.Descriptions)
		if err != nil {
			return err
		}
		if err := s.repo.InsertTranslations(ctx, tx, rows); err != nil {
			return err
		}

		updated = *product
		return nil
	})
	if err != nil {
		return domain.ProductResponse{}, err
	}

	return s.materialize(ctx, &updated)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		product, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFound("product", id)
		}

		if err := s.repo.DeleteTranslations(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.SoftDelete(ctx, tx, id, s.clock.Now())
	})
}

// resolveAndLinkCategories resolves every requested category id to a live
// row and replaces the product's category set. Resolution is strict: one
// missing id fails the whole operation.
func (s *Service) resolveAndLinkCategories(ctx context.Context, tx *gorm.DB, productID int64, categoryIDs []int64) error {
	if len(categoryIDs) > 0 {
		found, err := s.categories.FindByIDs(ctx, tx, categoryIDs)
		if err != nil {
			return err
		}
		byID := make(map[int64]bool, len(found))
		for _, category := range found {
			byID[category.ID] = true
		}
		for _, categoryID := range categoryIDs {
			if !byID[categoryID] {
				return apperror.NewNotFound("category", categoryID)
			}
		}
	}
	return s.repo.ReplaceCategories(ctx, tx, productID, categoryIDs)
}

// buildTranslations materializes translation rows for the union of iso
// codes across names and descriptions. A language present only in
// descriptions gets an empty name. Unknown iso codes fail the operation.
func (s *Service) buildTranslations(ctx context.Context, tx *gorm.DB, productID int64, names, descriptions map[string]string) ([]domain.ProductTranslation, error) {
	isoSet := make(map[string]bool, len(names)+len(descriptions))
	for iso := range names {
		isoSet[strings.ToLower(strings.TrimSpace(iso))] = true
	}
	for iso := range descriptions {
		isoSet[strings.ToLower(strings.TrimSpace(iso))] = true
	}
	delete(isoSet, "")
	if len(isoSet) == 0 {
		return nil, nil
	}

	isoCodes := make([]string, 0, len(isoSet))
	for iso := range isoSet {
		isoCodes = append(isoCodes, iso)
	}
	sort.Strings(isoCodes)

	languages, err := s.languages.FindByIsoCodes(ctx, tx, isoCodes)
	if err != nil {
		return nil, err
	}
	byIso := make(map[string]int64, len(languages))
	for _, language := range languages {
		byIso[strings.ToLower(language.IsoCode)] = language.ID
	}

	lookup := func(m map[string]string, iso string) (string, bool) {
		for key, value := range m {
			if strings.EqualFold(strings.TrimSpace(key), iso) {
				return value, true
			}
		}
		return "", false
	}

	rows := make([]domain.ProductTranslation, 0, len(isoCodes))
	for _, iso := range isoCodes {
		languageID, ok := byIso[iso]
		if !ok {
			return nil, apperror.NewValidation("translations", "unknown language iso code '"+iso+"'")
		}

		name, hasName := lookup(names, iso)
		if hasName {
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, apperror.NewValidation("names."+iso, "must not be blank")
			}
			if len(name) > 100 {
				return nil, apperror.NewValidation("names."+iso, "must be at most 100 characters")
			}
		}
		description, _ := lookup(descriptions, iso)

		rows = append(rows, domain.ProductTranslation{
			ProductID:   productID,
			LanguageID:  languageID,
			Name:        name,
			Description: description,
		})
	}
	return rows, nil
}

func (s *Service) materialize(ctx context.Context, product *domain.Product) (domain.ProductResponse, error) {
	categories, err := s.categories.FindByProductID(ctx, s.db, product.ID)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	refs := make([]domain.CategoryRef, 0, len(categories))
	for _, category := range categories {
		refs = append(refs, domain.CategoryRef{
			ID:          domain.FormatID(category.ID),
			Name:        category.Name,
			Description: category.Description,
		})
	}

	translationRows, err := s.repo.FindTranslations(ctx, s.db, product.ID)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	translations := make(map[string]domain.TranslationValue, len(translationRows))
	for _, row := range translationRows {
		translations[row.IsoCode] = domain.TranslationValue{
			Name:        row.Name,
			Description: row.Description,
		}
	}

	return domain.ProductResponse{
		ID:               domain.FormatID(product.ID),
		WarrantyDate:     product.WarrantyDate,
		Status:           product.Status,
		MinimumSalePrice: product.MinimumSalePrice,
		Categories:       refs,
		Translations:     translations,
		CreatedAt:        product.CreatedAt,
		UpdatedAt:        product.UpdatedAt,
	}, nil
}

func normalizeStatus(value string) (string, error) {
	if !domain.ValidStatus(value) {
		return "", apperror.NewValidation("status", "must be one of TESTED, RETURNED")
	}
	return strings.ToUpper(strings.TrimSpace(value)), nil
}

func parseCategoryIDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))
	for _, value := range values {
		id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, apperror.NewValidation("category_ids", "invalid id '"+value+"'")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
