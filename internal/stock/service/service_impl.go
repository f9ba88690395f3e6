package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	productdomain "github.com/smallbiznis/estoque/internal/product/domain"
	"github.com/smallbiznis/estoque/internal/stock/domain"
	warehousedomain "github.com/smallbiznis/estoque/internal/warehouse/domain"
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
	Products   productdomain.Repository
	Warehouses warehousedomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	listing    *config.ListingConfigHolder
	repo       domain.Repository
	products   productdomain.Repository
	warehouses warehousedomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("stock.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		listing:    p.Listing,
		repo:       p.Repo,
		products:   p.Products,
		warehouses: p.Warehouses,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateStockRequest) (domain.StockResponse, error) {
	code, amount, productID, warehouseID, err := validateFields(req.Code, req.Amount, req.ProductID, req.WarehouseID)
	if err != nil {
		return domain.StockResponse{}, err
	}

	now := s.clock.Now()
	stock := domain.ProductStock{
		ID:          s.genID.Generate().Int64(),
		Code:        code,
		Amount:      amount,
		ProductID:   productID,
		WarehouseID: warehouseID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// All checks run before any write.
		if err := s.checkPairFree(ctx, tx, productID, warehouseID); err != nil {
			return err
		}
		if err := s.checkCodeFree(ctx, tx, code); err != nil {
			return err
		}
		if err := s.resolveRefs(ctx, tx, productID, warehouseID); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, &stock)
	})
	if err != nil {
		return domain.StockResponse{}, err
	}

	return domain.ToResponse(&stock), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.StockResponse, error) {
	stock, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.StockResponse{}, err
	}
	if stock == nil {
		return domain.StockResponse{}, apperror.NewNotFound("product stock", id)
	}
	return domain.ToResponse(stock), nil
}

func (s *Service) List(ctx context.Context, page pagination.Pageable) (pagination.Page[domain.StockResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	stocks, total, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return pagination.Page[domain.StockResponse]{}, err
	}

	content := make([]domain.StockResponse, 0, len(stocks))
	for _, stock := range stocks {
		content = append(content, domain.ToResponse(stock))
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateStockRequest) (domain.StockResponse, error) {
	code, amount, productID, warehouseID, err := validateFields(req.Code, req.Amount, req.ProductID, req.WarehouseID)
	if err != nil {
		return domain.StockResponse{}, err
	}

	var updated domain.ProductStock
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stock, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if stock == nil {
			return apperror.NewNotFound("product stock", id)
		}

		// Uniqueness checks are skipped when the values are unchanged.
		pairChanged := productID != stock.ProductID || warehouseID != stock.WarehouseID
		if pairChanged {
			if err := s.checkPairFree(ctx, tx, productID, warehouseID); err != nil {
				return err
			}
			if err := s.resolveRefs(ctx, tx, productID, warehouseID); err != nil {
				return err
			}
		}
		if code != stock.Code {
			if err := s.checkCodeFree(ctx, tx, code); err != nil {
				return err
			}
		}

		stock.Code = code
		stock.Amount = amount
		stock.ProductID = productID
		stock.WarehouseID = warehouseID
		stock.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, stock); err != nil {
			return err
		}
		updated = *stock
		return nil
	})
	if err != nil {
		return domain.StockResponse{}, err
	}

	return domain.ToResponse(&updated), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stock, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if stock == nil {
			return apperror.NewNotFound("product stock", id)
		}
		return s.repo.SoftDelete(ctx, tx, id, s.clock.Now())
	})
}

func (s *Service) checkPairFree(ctx context.Context, tx *gorm.DB, productID, warehouseID int64) error {
	existing, err := s.repo.FindByProductAndWarehouse(ctx, tx, productID, warehouseID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewBusinessRule(
			"stock already exists for product %d in warehouse %d",
			productID, warehouseID,
		)
	}
	return nil
}

func (s *Service) checkCodeFree(ctx context.Context, tx *gorm.DB, code string) error {
	existing, err := s.repo.FindByCode(ctx, tx, code)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewBusinessRule("stock code '%s' is already in use", code)
	}
	return nil
}

func (s *Service) resolveRefs(ctx context.Context, tx *gorm.DB, productID, warehouseID int64) error {
	product, err := s.products.FindByID(ctx, tx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFound("product", productID)
	}

	warehouse, err := s.warehouses.FindByID(ctx, tx, warehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperror.NewNotFound("warehouse", warehouseID)
	}
	return nil
}

func validateFields(code string, amount int64, productID, warehouseID string) (string, int64, int64, int64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", 0, 0, 0, apperror.NewValidation("code", "must not be blank")
	}
	if len(code) > 50 {
		return "", 0, 0, 0, apperror.NewValidation("code", "must be at most 50 characters")
	}
	if amount < 0 {
		return "", 0, 0, 0, apperror.NewValidation("amount", "must not be negative")
	}

	pid, err := strconv.ParseInt(strings.TrimSpace(productID), 10, 64)
	if err != nil {
		return "", 0, 0, 0, apperror.NewValidation("product_id", "invalid id '"+productID+"'")
	}
	wid, err := strconv.ParseInt(strings.TrimSpace(warehouseID), 10, 64)
	if err != nil {
		return "", 0, 0, 0, apperror.NewValidation("warehouse_id", "invalid id '"+warehouseID+"'")
	}
	return code, amount, pid, wid, nil
}
