package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/config"
	customerdomain "github.com/smallbiznis/estoque/internal/customer/domain"
	customerrepo "github.com/smallbiznis/estoque/internal/customer/repository"
	"github.com/smallbiznis/estoque/internal/order/domain"
	"github.com/smallbiznis/estoque/internal/order/repository"
	productdomain "github.com/smallbiznis/estoque/internal/product/domain"
	productrepo "github.com/smallbiznis/estoque/internal/product/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Order{},
		&domain.OrderProduct{},
		&customerdomain.Customer{},
		&productdomain.Product{},
	))

	now := time.Now().UTC()
	require.NoError(t, db.Create(&customerdomain.Customer{
		ID: 1, Name: "Maria Oliveira", AddressID: 1, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&productdomain.Product{
		ID: 1, Status: productdomain.StatusTested, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&productdomain.Product{
		ID: 2, Status: productdomain.StatusTested, CreatedAt: now, UpdatedAt: now,
	}).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fixedClock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		Listing:   config.NewStaticListingConfigHolder(config.DefaultListingConfig()),
		Repo:      repository.Provide(),
		Customers: customerrepo.Provide(),
		Products:  productrepo.Provide(),
	})
	return svc, db
}

func validRequest() domain.CreateOrderRequest {
	ordered := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	return domain.CreateOrderRequest{
		OrderMethod:         "online",
		OrderStatus:         "pending",
		CustomerID:          "1",
		OrderedAt:           ordered,
		ExpectedToDeliverAt: ordered.Add(72 * time.Hour),
		Products: []domain.OrderLineRequest{
			{ProductID: "1", Amount: 2, SalePrice: decimal.RequireFromString("149.90")},
		},
	}
}

func TestCreateOrder(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	assert.Equal(t, domain.MethodOnline, created.OrderMethod)
	assert.Equal(t, domain.StatusPending, created.OrderStatus)
	require.Len(t, created.Products, 1)
	assert.Equal(t, int64(2), created.Products[0].Amount)
	assert.True(t, created.Products[0].SalePrice.Equal(decimal.RequireFromString("149.90")))
}

func TestHeaderValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*domain.CreateOrderRequest)
		field  string
	}{
		{"bad method", func(r *domain.CreateOrderRequest) { r.OrderMethod = "mail" }, "order_method"},
		{"bad status", func(r *domain.CreateOrderRequest) { r.OrderStatus = "lost" }, "order_status"},
		{"bad customer id", func(r *domain.CreateOrderRequest) { r.CustomerID = "abc" }, "customer_id"},
		{"missing ordered_at", func(r *domain.CreateOrderRequest) { r.OrderedAt = time.Time{} }, "ordered_at"},
		{"delivery before order", func(r *domain.CreateOrderRequest) {
			r.ExpectedToDeliverAt = r.OrderedAt.Add(-time.Hour)
		}, "expected_to_deliver_at"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			ve := apperror.AsValidation(err)
			require.NotNil(t, ve)
			assert.Contains(t, ve.FieldMap(), tc.field)
		})
	}
}

func TestLineValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := validRequest()
	req.Products = append(req.Products, domain.OrderLineRequest{
		ProductID: "1", Amount: 1, SalePrice: decimal.NewFromInt(10),
	})
	_, err := svc.Create(ctx, req)
	ve := apperror.AsValidation(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Error(), "products[1]")

	req = validRequest()
	req.Products[0].Amount = 0
	_, err = svc.Create(ctx, req)
	require.NotNil(t, apperror.AsValidation(err))

	req = validRequest()
	req.Products[0].SalePrice = decimal.Zero
	_, err = svc.Create(ctx, req)
	require.NotNil(t, apperror.AsValidation(err))
}

func TestCreateResolvesReferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	req := validRequest()
	req.CustomerID = "999"
	_, err := svc.Create(ctx, req)
	nf := apperror.AsNotFound(err)
	require.NotNil(t, nf)
	assert.Equal(t, "customer", nf.Entity)

	req = validRequest()
	req.Products[0].ProductID = "999"
	_, err = svc.Create(ctx, req)
	nf = apperror.AsNotFound(err)
	require.NotNil(t, nf)
	assert.Equal(t, "product", nf.Entity)
}

func TestUpdateReplacesLines(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	ordered := time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)
	updated, err := svc.Update(ctx, id, domain.UpdateOrderRequest{
		OrderMethod:         "in_person",
		OrderStatus:         "processing",
		CustomerID:          "1",
		OrderedAt:           ordered,
		ExpectedToDeliverAt: ordered.Add(24 * time.Hour),
		Products: []domain.OrderLineRequest{
			{ProductID: "2", Amount: 3, SalePrice: decimal.RequireFromString("59.90")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MethodInPerson, updated.OrderMethod)
	assert.Equal(t, domain.StatusProcessing, updated.OrderStatus)
	require.Len(t, updated.Products, 1)
	assert.Equal(t, "2", updated.Products[0].ProductID)

	var lines int64
	require.NoError(t, db.Table("orders_products").
		Where("orders_id = ?", id).
		Count(&lines).Error)
	assert.Equal(t, int64(1), lines)
}

func TestDeleteKeepsHistory(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validRequest())
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	require.NotNil(t, apperror.AsNotFound(err))

	// The header is soft deleted and its lines stay attached to it.
	var headers, lines int64
	require.NoError(t, db.Table("orders").
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Count(&headers).Error)
	require.NoError(t, db.Table("orders_products").
		Where("orders_id = ?", id).
		Count(&lines).Error)
	assert.Equal(t, int64(1), headers)
	assert.Equal(t, int64(1), lines)
}
