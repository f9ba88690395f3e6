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
	"github.com/smallbiznis/estoque/internal/category/domain"
	"github.com/smallbiznis/estoque/internal/category/repository"
	"github.com/smallbiznis/estoque/internal/config"
	productdomain "github.com/smallbiznis/estoque/internal/product/domain"
	"github.com/smallbiznis/estoque/pkg/db/pagination"
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
		&domain.Category{},
		&productdomain.Product{},
		&productdomain.ProductCategory{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Clock:   fixedClock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		Listing: config.NewStaticListingConfigHolder(config.DefaultListingConfig()),
		Repo:    repository.Provide(),
	})
	return svc, db
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCategoryRequest{
		Name:        "  Ferramentas  ",
		Description: "Ferramentas manuais",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ferramentas", created.Name)
	assert.NotEmpty(t, created.ID)

	id, err := strconv.ParseInt(created.ID, 10, 64)
	require.NoError(t, err)

	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateCategoryRequest{Name: "   "})
	ve := apperror.AsValidation(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.FieldMap(), "name")

	_, err = svc.Create(ctx, domain.CreateCategoryRequest{Name: strings.Repeat("x", 101)})
	require.NotNil(t, apperror.AsValidation(err))
}

func TestUpdatePartial(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCategoryRequest{
		Name:        "Eletrônicos",
		Description: "old",
	})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	desc := "new description"
	updated, err := svc.Update(ctx, id, domain.UpdateCategoryRequest{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Eletrônicos", updated.Name)
	assert.Equal(t, "new description", updated.Description)
}

func TestDeleteBlockedByLiveProducts(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCategoryRequest{Name: "Informática"})
	require.NoError(t, err)
	categoryID, _ := strconv.ParseInt(created.ID, 10, 64)

	now := time.Now().UTC()
	product := productdomain.Product{
		ID:        99,
		Status:    productdomain.StatusTested,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&productdomain.ProductCategory{
		ProductID:  product.ID,
		CategoryID: categoryID,
	}).Error)

	err = svc.Delete(ctx, categoryID)
	br := apperror.AsBusinessRule(err)
	require.NotNil(t, br)
	assert.Contains(t, br.Error(), "Informática")

	// A soft deleted product no longer blocks the category.
	require.NoError(t, db.Model(&productdomain.Product{}).
		Where("id = ?", product.ID).
		Update("deleted_at", now).Error)
	require.NoError(t, svc.Delete(ctx, categoryID))
}

func TestDeleteKeepsRow(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateCategoryRequest{Name: "Temporária"})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	require.NotNil(t, apperror.AsNotFound(err))

	var count int64
	require.NoError(t, db.Table("categories").
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListSearch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, domain.CreateCategoryRequest{
		Name:        "Ferramentas",
		Description: "manuais",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateCategoryRequest{
		Name:        "Eletrônicos",
		Description: "consumo",
	})
	require.NoError(t, err)

	page, err := svc.List(ctx, "FERRA", pagination.Pageable{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Ferramentas", page.Content[0].Name)
	assert.Equal(t, int64(1), page.TotalElements)

	// A numeric term also matches on the primary key.
	page, err = svc.List(ctx, first.ID, pagination.Pageable{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, first.ID, page.Content[0].ID)

	page, err = svc.List(ctx, "", pagination.Pageable{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
}
