package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/warehouse/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Clock     clock.Clock
	Listing   *config.ListingConfigHolder
	Repo      domain.Repository
	Addresses addressdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	listing   *config.ListingConfigHolder
	repo      domain.Repository
	addresses addressdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("warehouse.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		listing:   p.Listing,
		repo:      p.Repo,
		addresses: p.Addresses,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateWarehouseRequest) (domain.WarehouseResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return domain.WarehouseResponse{}, err
	}

	now := s.clock.Now()
	address := addressdomain.New(s.genID.Generate().Int64(), req.Address, now)
	warehouse := domain.Warehouse{
		ID:        s.genID.Generate().Int64(),
		Name:      name,
		AddressID: address.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Owned address: create the address row first, then the owner.
		if err := s.addresses.Create(ctx, tx, address); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, &warehouse)
	})
	if err != nil {
		return domain.WarehouseResponse{}, err
	}

	return domain.ToResponse(&warehouse, address), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.WarehouseResponse, error) {
	warehouse, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.WarehouseResponse{}, err
	}
	if warehouse == nil {
		return domain.WarehouseResponse{}, apperror.NewNotFound("warehouse", id)
	}

	address, err := s.addresses.FindByID(ctx, s.db, warehouse.AddressID)
	if err != nil {
		return domain.WarehouseResponse{}, err
	}
	return domain.ToResponse(warehouse, address), nil
}

func (s *Service) List(ctx context.Context, page pagination.Pageable) (pagination.Page[domain.WarehouseResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	warehouses, total, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return pagination.Page[domain.WarehouseResponse]{}, err
	}

	content := make([]domain.WarehouseResponse, 0, len(warehouses))
	for _, warehouse := range warehouses {
		address, err := s.addresses.FindByID(ctx, s.db, warehouse.AddressID)
		if err != nil {
			return pagination.Page[domain.WarehouseResponse]{}, err
		}
		content = append(content, domain.ToResponse(warehouse, address))
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateWarehouseRequest) (domain.WarehouseResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateName(name); err != nil {
		return domain.WarehouseResponse{}, err
	}

	var (
		updated domain.Warehouse
		address *addressdomain.Address
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		warehouse, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperror.NewNotFound("warehouse", id)
		}

		now := s.clock.Now()
		warehouse.Name = name
		warehouse.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, warehouse); err != nil {
			return err
		}

		// Address replace reuses the existing row identity.
		address, err = s.addresses.FindByID(ctx, tx, warehouse.AddressID)
		if err != nil {
			return err
		}
		if address != nil {
			address.Country = req.Address.Country
			address.State = req.Address.State
			address.City = req.Address.City
			address.Street = req.Address.Street
			address.Number = req.Address.Number
			address.ZipCode = req.Address.ZipCode
			address.UpdatedAt = now
			if err := s.addresses.Update(ctx, tx, address); err != nil {
				return err
			}
		}

		updated = *warehouse
		return nil
	})
	if err != nil {
		return domain.WarehouseResponse{}, err
	}

	return domain.ToResponse(&updated, address), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		warehouse, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return apperror.NewNotFound("warehouse", id)
		}

		now := s.clock.Now()
		// Owner first, then its address.
		if err := s.repo.SoftDelete(ctx, tx, id, now); err != nil {
			return err
		}
		return s.addresses.SoftDelete(ctx, tx, warehouse.AddressID, now)
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
