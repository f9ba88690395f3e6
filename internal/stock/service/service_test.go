package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/config"
	productdomain "github.com/smallbiznis/estoque/internal/product/domain"
	productrepo "github.com/smallbiznis/estoque/internal/product/repository"
	"github.com/smallbiznis/estoque/internal/stock/domain"
	"github.com/smallbiznis/estoque/internal/stock/repository"
	warehousedomain "github.com/smallbiznis/estoque/internal/warehouse/domain"
	warehouserepo "github.com/smallbiznis/estoque/internal/warehouse/repository"
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
		&domain.ProductStock{},
		&productdomain.Product{},
		&warehousedomain.Warehouse{},
	))

	now := time.Now().UTC()
	require.NoError(t, db.Create(&productdomain.Product{
		ID: 1, Status: productdomain.StatusTested, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&productdomain.Product{
		ID: 2, Status: productdomain.StatusTested, CreatedAt: now, UpdatedAt: now,
	}).Error)
	require.NoError(t, db.Create(&warehousedomain.Warehouse{
		ID: 1, Name: "Galpão Recife", AddressID: 1, CreatedAt: now, UpdatedAt: now,
	}).Error)

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:         db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fixedClock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		Listing:    config.NewStaticListingConfigHolder(config.DefaultListingConfig()),
		Repo:       repository.Provide(),
		Products:   productrepo.Provide(),
		Warehouses: warehouserepo.Provide(),
	})
	return svc, db
}

func TestCreateChecksReferences(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-1", Amount: 10, ProductID: "999", WarehouseID: "1",
	})
	nf := apperror.AsNotFound(err)
	require.NotNil(t, nf)
	assert.Equal(t, "product", nf.Entity)

	_, err = svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-1", Amount: 10, ProductID: "1", WarehouseID: "999",
	})
	nf = apperror.AsNotFound(err)
	require.NotNil(t, nf)
	assert.Equal(t, "warehouse", nf.Entity)

	created, err := svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-1", Amount: 10, ProductID: "1", WarehouseID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "EST-1", created.Code)
}

func TestPairUniqueness(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-1", Amount: 5, ProductID: "1", WarehouseID: "1",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-2", Amount: 7, ProductID: "1", WarehouseID: "1",
	})
	br := apperror.AsBusinessRule(err)
	require.NotNil(t, br)
	assert.Contains(t, br.Error(), "already exists")
}

func TestCodeUniqueness(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-1", Amount: 5, ProductID: "1", WarehouseID: "1",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-1", Amount: 5, ProductID: "2", WarehouseID: "1",
	})
	br := apperror.AsBusinessRule(err)
	require.NotNil(t, br)
	assert.Contains(t, br.Error(), "EST-1")
}

func TestUpdateSkipsUnchangedChecks(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateStockRequest{
		Code: "EST-1", Amount: 5, ProductID: "1", WarehouseID: "1",
	})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	// Keeping the same code and pair must not trip the uniqueness checks
	// against the row itself.
	updated, err := svc.Update(ctx, id, domain.UpdateStockRequest{
		Code: "EST-1", Amount: 42, ProductID: "1", WarehouseID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(42), updated.Amount)
}

func TestValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		req   domain.CreateStockRequest
		field string
	}{
		{"blank code", domain.CreateStockRequest{Code: " ", Amount: 1, ProductID: "1", WarehouseID: "1"}, "code"},
		{"long code", domain.CreateStockRequest{Code: strings.Repeat("x", 51), Amount: 1, ProductID: "1", WarehouseID: "1"}, "code"},
		{"negative amount", domain.CreateStockRequest{Code: "EST-1", Amount: -1, ProductID: "1", WarehouseID: "1"}, "amount"},
		{"bad product id", domain.CreateStockRequest{Code: "EST-1", Amount: 1, ProductID: "abc", WarehouseID: "1"}, "product_id"},
		{"bad warehouse id", domain.CreateStockRequest{Code: "EST-1", Amount: 1, ProductID: "1", WarehouseID: ""}, "warehouse_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			ve := apperror.AsValidation(err)
			require.NotNil(t, ve)
			assert.Contains(t, ve.FieldMap(), tc.field)
		})
	}
}
