package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/clock"
	"github.com/smallbiznis/estoque/internal/config"
	customerdomain "github.com/smallbiznis/estoque/internal/customer/domain"
	"github.com/smallbiznis/estoque/internal/order/domain"
	productdomain "github.com/smallbiznis/estoque/internal/product/domain"
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
	Customers customerdomain.Repository
	Products  productdomain.Repository
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	listing   *config.ListingConfigHolder
	repo      domain.Repository
	customers customerdomain.Repository
	products  productdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("order.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		listing:   p.Listing,
		repo:      p.Repo,
		customers: p.Customers,
		products:  p.Products,
	}
}

// header carries the validated order header fields.
type header struct {
	method     string
	status     string
	customerID int64
}

func (s *Service) Create(ctx context.Context, req domain.CreateOrderRequest) (domain.OrderResponse, error) {
	h, err := validateHeader(req.OrderMethod, req.OrderStatus, req.CustomerID, req)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	lines, err := s.buildLines(req.Products)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	now := s.clock.Now()
	order := domain.Order{
		ID:                  s.genID.Generate().Int64(),
		OrderMethod:         h.method,
		OrderStatus:         h.status,
		CustomerID:          h.customerID,
		OrderedAt:           req.OrderedAt,
		ExpectedToDeliverAt: req.ExpectedToDeliverAt,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	for i := range lines {
		lines[i].OrderID = order.ID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.resolveRefs(ctx, tx, h.customerID, lines); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, tx, &order); err != nil {
			return err
		}
		return s.repo.ReplaceLines(ctx, tx, order.ID, lines)
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.ToResponse(&order, lines), nil
}

func (s *Service) Get(ctx context.Context, id int64) (domain.OrderResponse, error) {
	order, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	if order == nil {
		return domain.OrderResponse{}, apperror.NewNotFound("order", id)
	}

	lines, err := s.repo.FindLines(ctx, s.db, id)
	if err != nil {
		return domain.OrderResponse{}, err
	}
	return domain.ToResponse(order, lines), nil
}

func (s *Service) List(ctx context.Context, page pagination.Pageable) (pagination.Page[domain.OrderResponse], error) {
	cfg := s.listing.Get()
	page = page.Normalize(cfg.DefaultPageSize, cfg.MaxPageSize)

	orders, total, err := s.repo.List(ctx, s.db, page)
	if err != nil {
		return pagination.Page[domain.OrderResponse]{}, err
	}

	content := make([]domain.OrderResponse, 0, len(orders))
	for _, order := range orders {
		lines, err := s.repo.FindLines(ctx, s.db, order.ID)
		if err != nil {
			return pagination.Page[domain.OrderResponse]{}, err
		}
		content = append(content, domain.ToResponse(order, lines))
	}
	return pagination.NewPage(content, page, total), nil
}

func (s *Service) Update(ctx context.Context, id int64, req domain.UpdateOrderRequest) (domain.OrderResponse, error) {
	h, err := validateHeader(req.OrderMethod, req.OrderStatus, req.CustomerID, domain.CreateOrderRequest(req))
	if err != nil {
		return domain.OrderResponse{}, err
	}
	lines, err := s.buildLines(req.Products)
	if err != nil {
		return domain.OrderResponse{}, err
	}

	var updated domain.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFound("order", id)
		}

		if err := s.resolveRefs(ctx, tx, h.customerID, lines); err != nil {
			return err
		}

		order.OrderMethod = h.method
		order.OrderStatus = h.status
		order.CustomerID = h.customerID
		order.OrderedAt = req.OrderedAt
		order.ExpectedToDeliverAt = req.ExpectedToDeliverAt
		order.UpdatedAt = s.clock.Now()
		if err := s.repo.Update(ctx, tx, order); err != nil {
			return err
		}

		for i := range lines {
			lines[i].OrderID = id
		}
		if err := s.repo.ReplaceLines(ctx, tx, id, lines); err != nil {
			return err
		}

		updated = *order
		return nil
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	return domain.ToResponse(&updated, lines), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := s.repo.FindByID(ctx, tx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFound("order", id)
		}
		return s.repo.SoftDelete(ctx, tx, id, s.clock.Now())
	})
}

func (s *Service) resolveRefs(ctx context.Context, tx *gorm.DB, customerID int64, lines []domain.OrderProduct) error {
	customer, err := s.customers.FindByID(ctx, tx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFound("customer", customerID)
	}

	for _, line := range lines {
		product, err := s.products.FindByID(ctx, tx, line.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFound("product", line.ProductID)
		}
	}
	return nil
}

func (s *Service) buildLines(reqs []domain.OrderLineRequest) ([]domain.OrderProduct, error) {
	lines := make([]domain.OrderProduct, 0, len(reqs))
	seen := make(map[int64]bool, len(reqs))
	for i, req := range reqs {
		field := "products[" + strconv.Itoa(i) + "]"

		productID, err := strconv.ParseInt(strings.TrimSpace(req.ProductID), 10, 64)
		if err != nil {
			return nil, apperror.NewValidation(field+".product_id", "invalid id '"+req.ProductID+"'")
		}
		if seen[productID] {
			return nil, apperror.NewValidation(field+".product_id", "duplicate product in order")
		}
		seen[productID] = true

		if req.Amount <= 0 {
			return nil, apperror.NewValidation(field+".amount", "must be greater than zero")
		}
		if !req.SalePrice.IsPositive() {
			return nil, apperror.NewValidation(field+".sale_price", "must be greater than zero")
		}

		lines = append(lines, domain.OrderProduct{
			ProductID: productID,
			Amount:    req.Amount,
			SalePrice: req.SalePrice.Round(2),
		})
	}
	return lines, nil
}

func validateHeader(method, status, customerID string, req domain.CreateOrderRequest) (header, error) {
	errs := &apperror.ValidationErrors{}

	if !domain.ValidMethod(method) {
		errs.Add("order_method", "must be one of online, in_person")
	}
	if !domain.ValidStatus(status) {
		errs.Add("order_status", "must be one of pending, processing, shipped, delivered, canceled")
	}

	id, err := strconv.ParseInt(strings.TrimSpace(customerID), 10, 64)
	if err != nil {
		errs.Add("customer_id", "invalid id '"+customerID+"'")
	}

	if req.OrderedAt.IsZero() {
		errs.Add("ordered_at", "is required")
	}
	if req.ExpectedToDeliverAt.IsZero() {
		errs.Add("expected_to_deliver_at", "is required")
	} else if !req.OrderedAt.IsZero() && req.ExpectedToDeliverAt.Before(req.OrderedAt) {
		errs.Add("expected_to_deliver_at", "must not be before ordered_at")
	}

	if errs.HasErrors() {
		return header{}, errs
	}
	return header{
		method:     strings.ToLower(strings.TrimSpace(method)),
		status:     strings.ToLower(strings.TrimSpace(status)),
		customerID: id,
	}, nil
}
