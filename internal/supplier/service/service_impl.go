package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/supplier/domain"
	"github.com/smallbiznis/estoque/pkg/brdoc"
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
		log:       p.Log.Named("supplier.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		listing:   p.Listing,
		repo:      p.Repo,
		addresses: p.Addresses,
	}
}

// identity carries the validated discriminant and document of a request.
type identity struct {
	supplierType string
	cpf          *string
	cnpj         *string
}

func (s *Service) Create(ctx context.Context, req domain.CreateSupplierRequest) (domain.SupplierResponse, error) {
	name := strings.TrimSpace(req.Name)
	ident, err := validate(name, req.SupplierType, req.CPF, req.CNPJ)
	if err != nil {
		return domain.SupplierResponse{}, err
	}

	now := s.clock.Now()
	address := addressdomain.New(s.genID.Generate().Int64(), req.Address, now)
	supplier := domain.Supplier{
		ID:           s.genID.Generate().Int64(),
		Name:         name,
		SupplierType: ident.supplierType,
		CPF:          ident.cpf,
		CNPJ:         ident.cnpj,
		AddressID:    address.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkDocFree(ctx, tx, ident, 0); err != nil {
			return err
		}
		if err := s.addresses.Create(ctx, tx, address); err != nil {
			return err
		}
		return s.repo.Create(ctx, tx, &supplier)
	})
	if err != nil {
		return domain.SupplierResponse{}, err
	}

	return domain.ToResponse(&supplier, address), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.SupplierResponse, error) {
	supplier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.SupplierResponse{}, err
	}
	if supplier == nil {
		return domain.SupplierResponse{}, apperror.NewNotFound("supplier", id)
	}

	address, err := s.addresses.FindByID(ctx, s.db, supplier.AddressID)
	if err != nil {
		return domain.SupplierResponse{}, err
	}
	return domain.ToResponse(supplier, address), nil
}

func (s *Service) List(ctx context.Context, nameFilter string, page pagination.Pageable) (pagination.Page[domain.SupplierResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	suppliers, total, err := s.repo.List(ctx, s.db, strings.TrimSpace(nameFilter), page)
	if err != nil {
		return pagination.Page[domain.SupplierResponse]{}, err
	}

	content := make([]domain.SupplierResponse, 0, len(suppliers))
	for _, supplier := range suppliers {
		address, err := s.addresses.FindByID(ctx, s.db, supplier.AddressID)
		if err != nil {
			return pagination.Page[domain.SupplierResponse]{}, err
		}
		content = append(content, domain.ToResponse(supplier, address))
	}
	return pagination.NewPage(content, page, total), nil
}

// Update is a full replace: every field is validated again as on create
// and uniqueness is re-checked excluding the supplier itself.
func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateSupplierRequest) (domain.SupplierResponse, error) {
	name := strings.TrimSpace(req.Name)
	ident, err := validate(name, req.SupplierType, req.CPF, req.CNPJ)
	if err != nil {
		return domain.SupplierResponse{}, err
	}

	var (
		updated domain.Supplier
		address *addressdomain.Address
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplier, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFound("supplier", id)
		}

		if err := s.checkDocFree(ctx, tx, ident, id); err != nil {
			return err
		}

		now := s.clock.Now()
		supplier.Name = name
		supplier.SupplierType = ident.supplierType
		supplier.CPF = ident.cpf
		supplier.CNPJ = ident.cnpj
		supplier.UpdatedAt = now
		if err := s.repo.Update(ctx, tx, supplier); err != nil {
			return err
		}

		address, err = s.addresses.FindByID(ctx, tx, supplier.AddressID)
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

		updated = *supplier
		return nil
	})
	if err != nil {
		return domain.SupplierResponse{}, err
	}

	return domain.ToResponse(&updated, address), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		supplier, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFound("supplier", id)
		}

		now := s.clock.Now()
		if err := s.repo.SoftDelete(ctx, tx, id, now); err != nil {
			return err
		}
		return s.addresses.SoftDelete(ctx, tx, supplier.AddressID, now)
	})
}

func (s *Service) checkDocFree(ctx context.Context, tx *gorm.DB, ident identity, excludeID int64) error {
	if ident.cpf != nil {
		existing, err := s.repo.FindByCPF(ctx, tx, *ident.cpf, excludeID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewBusinessRule("cpf '%s' is already registered", *ident.cpf)
		}
	}
	if ident.cnpj != nil {
		existing, err := s.repo.FindByCNPJ(ctx, tx, *ident.cnpj, excludeID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewBusinessRule("cnpj '%s' is already registered", *ident.cnpj)
		}
	}
	return nil
}

// validate enforces the tagged-union contract: the supplier type decides
// which document must be present and the other must be absent.
func validate(name, supplierType, cpf, cnpj string) (identity, error) {
	errs := &apperror.ValidationErrors{}

	if name == "" {
		errs.Add("name", "must not be blank")
	} else if len(name) > 100 {
		errs.Add("name", "must be at most 100 characters")
	}

	if !domain.ValidType(supplierType) {
		errs.Add("supplier_type", "must be one of NATURAL_PERSON, LEGAL_ENTITY")
		return identity{}, errs
	}
	supplierType = strings.ToUpper(strings.TrimSpace(supplierType))

	cpf = brdoc.Digits(cpf)
	cnpj = brdoc.Digits(cnpj)

	ident := identity{supplierType: supplierType}
	switch supplierType {
	case domain.TypeNaturalPerson:
		if cnpj != "" {
			errs.Add("cnpj", "must be absent for a natural person")
		}
		if cpf == "" {
			errs.Add("cpf", "is required for a natural person")
		} else if !brdoc.IsCPF(cpf) {
			errs.Add("cpf", "is not a valid CPF")
		} else {
			ident.cpf = &cpf
		}
	case domain.TypeLegalEntity:
		if cpf != "" {
			errs.Add("cpf", "must be absent for a legal entity")
		}
		if cnpj == "" {
			errs.Add("cnpj", "is required for a legal entity")
		} else if !brdoc.IsCNPJ(cnpj) {
			errs.Add("cnpj", "is not a valid CNPJ")
		} else {
			ident.cnpj = &cnpj
		}
	}

	if errs.HasErrors() {
		return identity{}, errs
	}
	return ident, nil
}
