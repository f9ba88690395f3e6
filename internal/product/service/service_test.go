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
	categorydomain "github.com/smallbiznis/estoque/internal/category/domain"
	categoryrepo "github.com/smallbiznis/estoque/internal/category/repository"
	"github.com/smallbiznis/estoque/internal/config"
	languagedomain "github.com/smallbiznis/estoque/internal/language/domain"
	languagerepo "github.com/smallbiznis/estoque/internal/language/repository"
	"github.com/smallbiznis/estoque/internal/product/domain"
	"github.com/smallbiznis/estoque/internal/product/repository"
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
		&domain.Product{},
		&domain.ProductTranslation{},
		&domain.ProductCategory{},
		&categorydomain.Category{},
		&languagedomain.Language{},
	))

	require.NoError(t, db.Create([]languagedomain.Language{
		{ID: 1, LanguageName: "Português", IsoCode: "pt"},
		{ID: 2, LanguageName: "English", IsoCode: "en"},
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
		Categories: categoryrepo.Provide(),
		Languages:  languagerepo.Provide(),
	})
	return svc, db
}

func seedCategory(t *testing.T, db *gorm.DB, id int64, name string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, db.Create(&categorydomain.Category{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}).Error)
}

func TestCreateWithTranslations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	warranty := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, domain.CreateProductRequest{
		WarrantyDate:     warranty,
		Status:           "tested",
		MinimumSalePrice: decimal.RequireFromString("99.90"),
		Names: map[string]string{
			"PT": "Notebook",
			"en": "Laptop",
		},
		Descriptions: map[string]string{
			"pt": "Notebook de 14 polegadas",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusTested, created.Status)
	assert.True(t, created.MinimumSalePrice.Equal(decimal.RequireFromString("99.90")))
	require.Len(t, created.Translations, 2)
	assert.Equal(t, "Notebook", created.Translations["pt"].Name)
	assert.Equal(t, "Notebook de 14 polegadas", created.Translations["pt"].Description)
	assert.Equal(t, "Laptop", created.Translations["en"].Name)

	id, err := strconv.ParseInt(created.ID, 10, 64)
	require.NoError(t, err)
	got, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.MinimumSalePrice.Equal(created.MinimumSalePrice))
	assert.Equal(t, created.Translations, got.Translations)
}

func TestCreateDescriptionOnlyLanguage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		WarrantyDate:     time.Now().UTC(),
		Status:           domain.StatusReturned,
		MinimumSalePrice: decimal.Zero,
		Descriptions:     map[string]string{"en": "refurbished unit"},
	})
	require.NoError(t, err)

	// A language present only in descriptions gets an empty name.
	require.Contains(t, created.Translations, "en")
	assert.Equal(t, "", created.Translations["en"].Name)
	assert.Equal(t, "refurbished unit", created.Translations["en"].Description)
}

func TestCreateTranslationValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{
		Status: "TESTED",
		Names:  map[string]string{"xx": "Nome"},
	})
	ve := apperror.AsValidation(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Error(), "translations")

	_, err = svc.Create(ctx, domain.CreateProductRequest{
		Status: "TESTED",
		Names:  map[string]string{"pt": "   "},
	})
	require.NotNil(t, apperror.AsValidation(err))

	_, err = svc.Create(ctx, domain.CreateProductRequest{Status: "broken"})
	require.NotNil(t, apperror.AsValidation(err))
}

func TestCreateStrictCategoryResolution(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedCategory(t, db, 10, "Eletrônicos")

	_, err := svc.Create(ctx, domain.CreateProductRequest{
		Status:      "TESTED",
		CategoryIDs: []string{"10", "11"},
	})
	nf := apperror.AsNotFound(err)
	require.NotNil(t, nf)
	assert.Equal(t, "category", nf.Entity)
	assert.Equal(t, int64(11), nf.ID)

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Status:      "TESTED",
		CategoryIDs: []string{"10"},
	})
	require.NoError(t, err)
	require.Len(t, created.Categories, 1)
	assert.Equal(t, "Eletrônicos", created.Categories[0].Name)
}

func TestUpdateReplacesTranslations(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Status: "TESTED",
		Names:  map[string]string{"pt": "Notebook", "en": "Laptop"},
	})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	// Omitting a language on update removes its translation.
	updated, err := svc.Update(ctx, id, domain.UpdateProductRequest{
		Status: "RETURNED",
		Names:  map[string]string{"pt": "Notebook usado"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Translations, 1)
	assert.Equal(t, "Notebook usado", updated.Translations["pt"].Name)
	assert.NotContains(t, updated.Translations, "en")
}

func TestUpdateKeepsCategoriesWhenAbsent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedCategory(t, db, 20, "Informática")

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Status:      "TESTED",
		CategoryIDs: []string{"20"},
	})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	updated, err := svc.Update(ctx, id, domain.UpdateProductRequest{Status: "TESTED"})
	require.NoError(t, err)
	require.Len(t, updated.Categories, 1)

	// An explicit empty list clears the set.
	empty := []string{}
	updated, err = svc.Update(ctx, id, domain.UpdateProductRequest{
		Status:      "TESTED",
		CategoryIDs: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Categories)
}

func TestListSearch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateProductRequest{Status: "TESTED"})
	require.NoError(t, err)
	returned, err := svc.Create(ctx, domain.CreateProductRequest{Status: "RETURNED"})
	require.NoError(t, err)

	page, err := svc.List(ctx, "returned", pagination.Pageable{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, returned.ID, page.Content[0].ID)

	// A term that is neither an id, a price nor a status name degrades to
	// a substring match on the status text.
	page, err = svc.List(ctx, "TURN", pagination.Pageable{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, returned.ID, page.Content[0].ID)

	page, err = svc.List(ctx, returned.ID, pagination.Pageable{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, returned.ID, page.Content[0].ID)
}

func TestDeleteRemovesTranslations(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateProductRequest{
		Status: "TESTED",
		Names:  map[string]string{"pt": "Notebook"},
	})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	require.NotNil(t, apperror.AsNotFound(err))

	var translations int64
	require.NoError(t, db.Table("product_translations").
		Where("products_id = ?", id).
		Count(&translations).Error)
	assert.Equal(t, int64(0), translations)
}
