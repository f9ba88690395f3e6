package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/company/domain"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/pkg/brdoc"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
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
		log:       p.Log.Named("company.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		listing:   p.Listing,
		repo:      p.Repo,
		addresses: p.Addresses,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCompanyRequest) (domain.CompanyResponse, error) {
	legalName := strings.TrimSpace(req.LegalName)
	tradeName := strings.TrimSpace(req.TradeName)
	cnpj := brdoc.Digits(req.CNPJ)
	if err := validate(legalName, tradeName, cnpj); err != nil {
		return domain.CompanyResponse{}, err
	}

	now := s.clock.Now()
	address := addressdomain.New(s.genID.Generate().Int64(), req.Address, now)
	company := domain.Company{
		ID:        s.genID.Generate().Int64(),
		LegalName: legalName,
		TradeName: tradeName,
		CNPJ:      cnpj,
		Phones:    datatypes.NewJSONSlice(req.Phones),
		Emails:    datatypes.NewJSONSlice(req.Emails),
		AddressID: address.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindByCNPJ(ctx, tx, cnpj, 0)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewBusinessRule("cnpj '%s' is already registered", cnpj)
		}

		if err := s.addresses.Create(ctx, tx, address); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, &company)
	})
	if err != nil {
		return domain.CompanyResponse{}, err
	}

	return domain.ToResponse(&company, address), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.CompanyResponse, error) {
	company, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.CompanyResponse{}, err
	}
	if company == nil {
		return domain.CompanyResponse{}, apperror.NewNotFound("company", id)
	}

	address, err := s.addresses.FindByID(ctx, s.db, company.AddressID)
	if err != nil {
		return domain.CompanyResponse{}, err
	}
	return domain.ToResponse(company, address), nil
}

func (s *Service) List(ctx context.Context, nameFilter string, page pagination.Pageable) (pagination.Page[domain.CompanyResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	companies, total, err := s.repo.List(ctx, s.db, strings.TrimSpace(nameFilter), page)
	if err != nil {
		return pagination.Page[domain.CompanyResponse]{}, err
	}

	content := make([]domain.CompanyResponse, 0, len(companies))
	for _, company := range companies {
		address, err := s.addresses.FindByID(ctx, s.db, company.AddressID)
		if err != nil {
			return pagination.Page[domain.CompanyResponse]{}, err
		}
		content = append(content, domain.ToResponse(company, address))
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateCompanyRequest) (domain.CompanyResponse, error) {
	legalName := strings.TrimSpace(req.LegalName)
	tradeName := strings.TrimSpace(req.TradeName)
	cnpj := brdoc.Digits(req.CNPJ)
	if err := validate(legalName, tradeName, cnpj); err != nil {
		return domain.CompanyResponse{}, err
	}

	var (
		updated domain.Company
		address *addressdomain.Address
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if company == nil {
			return apperror.NewNotFound("company", id)
		}

		if cnpj != company.CNPJ {
			existing, err := s.repo.FindByCNPJ(ctx, tx, cnpj, id)
			if err != nil {
				return err
			}
			if existing != nil {
				return apperror.NewBusinessRule("cnpj '%s' is already registered", cnpj)
			}
		}

		now := s.clock.Now()
		company.LegalName = legalName
		company.TradeName = tradeName
		company.CNPJ = cnpj
		company.Phones = datatypes.NewJSONSlice(req.Phones)
		company.Emails = datatypes.NewJSONSlice(req.Emails)
		company.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, company); err != nil {
			return err
		}

		address, err = s.addresses.FindByID(ctx, tx, company.AddressID)
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

		updated = *company
		return nil
	})
	if err != nil {
		return domain.CompanyResponse{}, err
	}

	return domain.ToResponse(&updated, address), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		company, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if company == nil {
			return apperror.NewNotFound("company", id)
		}

		now := s.clock.Now()
		if err := s.repo.SoftDelete(ctx, tx, id, now); err != nil {
			return err
		}
		return s.addresses.SoftDelete(ctx, tx, company.AddressID, now)
	})
}

func validate(legalName, tradeName, cnpj string) error {
	errs := &apperror.ValidationErrors{}
	if legalName == "" {
		errs.Add("legal_name", "must not be blank")
	} else if len(legalName) > 100 {
		errs.Add("legal_name", "must be at most 100 characters")
	}
	if tradeName == "" {
		errs.Add("trade_name", "must not be blank")
	} else if len(tradeName) > 100 {
		errs.Add("trade_name", "must be at most 100 characters")
	}
	if cnpj == "" {
		errs.Add("cnpj", "must not be blank")
	} else if !brdoc.IsCNPJ(cnpj) {
		errs.Add("cnpj", "is not a valid CNPJ")
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}
