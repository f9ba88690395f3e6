package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/clock"
	companydomain "github.com/smallbiznis/estoque/internal/company/domain"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/delivery/domain"
	orderdomain "github.com/smallbiznis/estoque/internal/order/domain"
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
	Orders     orderdomain.Repository
	Companies  companydomain.Repository
	Warehouses warehousedomain.Repository
	Addresses  addressdomain.Repository
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	listing    *config.ListingConfigHolder
	repo       domain.Repository
	orders     orderdomain.Repository
	companies  companydomain.Repository
	warehouses warehousedomain.Repository
	addresses  addressdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("delivery.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		listing:    p.Listing,
		repo:       p.Repo,
		orders:     p.Orders,
		companies:  p.Companies,
		warehouses: p.Warehouses,
		addresses:  p.Addresses,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDeliveryRequest) (domain.DeliveryResponse, error) {
	orderID, companyID, warehouseID, status, err := validate(req)
	if err != nil {
		return domain.DeliveryResponse{}, err
	}

	now := s.clock.Now()
	destination := addressdomain.New(s.genID.Generate().Int64(), req.DestinationAddress, now)
	delivery := domain.Delivery{
		ID:                   s.genID.Generate().Int64(),
		OrderID:              orderID,
		CompanyID:            companyID,
		SourceWarehouseID:    warehouseID,
		DestinationAddressID: destination.ID,
		Price:                req.Price.Round(2),
		Status:               status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.orders.FindByID(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFound("order", orderID)
		}

		company, err := s.companies.FindByID(ctx, tx, companyID)
		if err != nil {
			return err
		}
		if company == nil {
			return apperror.NewNotFound("company", companyID)
		}

		warehouse, err := s.warehouses.FindByID(ctx, tx, warehouseID)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperror.NewNotFound("warehouse", warehouseID)
		}

		if err := s.addresses.Create(ctx, tx, destination); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, &delivery)
	})
	if err != nil {
		return domain.DeliveryResponse{}, err
	}

	return domain.ToResponse(&delivery, destination), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.DeliveryResponse, error) {
	delivery, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.DeliveryResponse{}, err
	}
	if delivery == nil {
		return domain.DeliveryResponse{}, apperror.NewNotFound("delivery", id)
	}

	destination, err := s.addresses.FindByID(ctx, s.db, delivery.DestinationAddressID)
	if err != nil {
		return domain.DeliveryResponse{}, err
	}
	return domain.ToResponse(delivery, destination), nil
}

func (s *Service) List(ctx context.Context, page pagination.Pageable) (pagination.Page[domain.DeliveryResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	deliveries, total, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return pagination.Page[domain.DeliveryResponse]{}, err
	}

	content := make([]domain.DeliveryResponse, 0, len(deliveries))
	for _, delivery := range deliveries {
		destination, err := s.addresses.FindByID(ctx, s.db, delivery.DestinationAddressID)
		if err != nil {
			return pagination.Page[domain.DeliveryResponse]{}, err
		}
		content = append(content, domain.ToResponse(delivery, destination))
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		delivery, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if delivery == nil {
			return apperror.NewNotFound("delivery", id)
		}

		now := s.clock.Now()
		if err := s.repo.SoftDelete(ctx, tx, id, now); err != nil {
			return err
		}
		return s.addresses.SoftDelete(ctx, tx, delivery.DestinationAddressID, now)
	})
}

func validate(req domain.CreateDeliveryRequest) (orderID, companyID, warehouseID int64, status string, err error) {
	errs := &apperror.ValidationErrors{}

	orderID = parseID(req.OrderID, "order_id", errs)
	companyID = parseID(req.CompanyID, "company_id", errs)
	warehouseID = parseID(req.SourceWarehouseID, "source_warehouse_id", errs)

	if req.Price.IsNegative() {
		errs.Add("price", "must not be negative")
	}
	if !domain.ValidStatus(req.Status) {
		errs.Add("status", "must be one of pending, processing, shipped, delivered, canceled")
	}

	if errs.HasErrors() {
		return 0, 0, 0, "", errs
	}
	return orderID, companyID, warehouseID, strings.ToLower(strings.TrimSpace(req.Status)), nil
}

func parseID(value, field string, errs *apperror.ValidationErrors) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		errs.Add(field, "invalid id '"+value+"'")
		return 0
	}
	return id
}
