package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/customer/domain"
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
		log:       p.Log.Named("customer.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		listing:   p.Listing,
		repo:      p.Repo,
		addresses: p.Addresses,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validate(name, req); err != nil {
		return domain.CustomerResponse{}, err
	}

	now := s.clock.Now()
	address := addressdomain.New(s.genID.Generate().Int64(), req.Address, now)
	customer := domain.Customer{
		ID:          s.genID.Generate().Int64(),
		Name:        name,
		CreditLimit: req.CreditLimit.Round(2),
		AddressID:   address.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.addresses.Create(ctx, tx, address); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, &customer)
	})
	if err != nil {
		return domain.CustomerResponse{}, err
	}

	return domain.ToResponse(&customer, address), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.CustomerResponse, error) {
	customer, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.CustomerResponse{}, err
	}
	if customer == nil {
		return domain.CustomerResponse{}, apperror.NewNotFound("customer", id)
	}

	address, err := s.addresses.FindByID(ctx, s.db, customer.AddressID)
	if err != nil {
		return domain.CustomerResponse{}, err
	}
	return domain.ToResponse(customer, address), nil
}

func (s *Service) List(ctx context.Context, nameFilter string, page pagination.Pageable) (pagination.Page[domain.CustomerResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	customers, total, err := s.repo.List(ctx, s.db, strings.TrimSpace(nameFilter), page)
	if err != nil {
		return pagination.Page[domain.CustomerResponse]{}, err
	}

	content := make([]domain.CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		address, err := s.addresses.FindByID(ctx, s.db, customer.AddressID)
		if err != nil {
			return pagination.Page[domain.CustomerResponse]{}, err
		}
		content = append(content, domain.ToResponse(customer, address))
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateCustomerRequest) (domain.CustomerResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validate(name, domain.CreateCustomerRequest(req)); err != nil {
		return domain.CustomerResponse{}, err
	}

	var (
		updated domain.Customer
		address *addressdomain.Address
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFound("customer", id)
		}

		now := s.clock.Now()
		customer.Name = name
		customer.CreditLimit = req.CreditLimit.Round(2)
		customer.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, customer); err != nil {
			return err
		}

		address, err = s.addresses.FindByID(ctx, tx, customer.AddressID)
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

		updated = *customer
		return nil
	})
	if err != nil {
		return domain.CustomerResponse{}, err
	}

	return domain.ToResponse(&updated, address), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		customer, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFound("customer", id)
		}

		now := s.clock.Now()
		if err := s.repo.SoftDelete(ctx, tx, id, now); err != nil {
			return err
		}
		return s.addresses.SoftDelete(ctx, tx, customer.AddressID, now)
	})
}

func validate(name string, req domain.CreateCustomerRequest) error {
	errs := &apperror.ValidationErrors{}
	if name == "" {
		errs.Add("name", "must not be blank")
	} else if len(name) > 100 {
		errs.Add("name", "must be at most 100 characters")
	}
	if req.CreditLimit.IsNegative() {
		errs.Add("credit_limit", "must not be negative")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}
