package service

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	addressrepo "github.com/smallbiznis/estoque/internal/address/repository"
	"github.com/smallbiznis/estoque/internal/apperror"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/supplier/domain"
	"github.com/smallbiznis/estoque/internal/supplier/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	validCPF  = "52998224725"
	validCNPJ = "11222333000181"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Supplier{},
		&addressdomain.Address{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        db,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     fixedClock{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)},
		Listing:   config.NewStaticListingConfigHolder(config.DefaultListingConfig()),
		Repo:      repository.Provide(),
		Addresses: addressrepo.Provide(),
	})
	return svc, db
}

func sampleAddress() addressdomain.AddressRequest {
	return addressdomain.AddressRequest{
		Country: "Brasil",
		State:   "PE",
		City:    "Recife",
		Street:  "Rua da Aurora",
		Number:  "123",
		ZipCode: "50050-000",
	}
}

func TestCreateNaturalPerson(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "João da Silva",
		SupplierType: "natural_person",
		CPF:          "529.982.247-25",
		Address:      sampleAddress(),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeNaturalPerson, created.SupplierType)
	assert.Equal(t, validCPF, created.CPF)
	assert.Empty(t, created.CNPJ)
	assert.Equal(t, "Recife", created.Address.City)
}

func TestDocumentExclusivity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "Fornecedor Misto",
		SupplierType: "NATURAL_PERSON",
		CPF:          validCPF,
		CNPJ:         validCNPJ,
		Address:      sampleAddress(),
	})
	ve := apperror.AsValidation(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.FieldMap(), "cnpj")

	_, err = svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "Empresa Mista",
		SupplierType: "LEGAL_ENTITY",
		CPF:          validCPF,
		CNPJ:         validCNPJ,
		Address:      sampleAddress(),
	})
	ve = apperror.AsValidation(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.FieldMap(), "cpf")
}

func TestChecksumRejected(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "Documento Inválido",
		SupplierType: "NATURAL_PERSON",
		CPF:          "12345678900",
		Address:      sampleAddress(),
	})
	ve := apperror.AsValidation(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.FieldMap(), "cpf")

	// Nothing was persisted, not even the address.
	var suppliers, addresses int64
	require.NoError(t, db.Table("suppliers").Count(&suppliers).Error)
	require.NoError(t, db.Table("addresses").Count(&addresses).Error)
	assert.Equal(t, int64(0), suppliers)
	assert.Equal(t, int64(0), addresses)
}

func TestDuplicateDocument(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "Empresa A",
		SupplierType: "LEGAL_ENTITY",
		CNPJ:         validCNPJ,
		Address:      sampleAddress(),
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "Empresa B",
		SupplierType: "LEGAL_ENTITY",
		CNPJ:         "11.222.333/0001-81",
		Address:      sampleAddress(),
	})
	br := apperror.AsBusinessRule(err)
	require.NotNil(t, br)
	assert.Contains(t, br.Error(), validCNPJ)
}

func TestUpdateFullReplace(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "João da Silva",
		SupplierType: "NATURAL_PERSON",
		CPF:          validCPF,
		Address:      sampleAddress(),
	})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	// Re-submitting its own document must not conflict with itself, and
	// the variant can switch as long as the union stays consistent.
	updated, err := svc.Update(ctx, id, domain.UpdateSupplierRequest{
		Name:         "João da Silva ME",
		SupplierType: "LEGAL_ENTITY",
		CNPJ:         validCNPJ,
		Address: addressdomain.AddressRequest{
			Country: "Brasil",
			State:   "SP",
			City:    "São Paulo",
			Street:  "Av. Paulista",
			Number:  "1000",
			ZipCode: "01310-100",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeLegalEntity, updated.SupplierType)
	assert.Empty(t, updated.CPF)
	assert.Equal(t, validCNPJ, updated.CNPJ)
	assert.Equal(t, "São Paulo", updated.Address.City)
	// The address row keeps its identity across updates.
	assert.Equal(t, created.Address.ID, updated.Address.ID)
}

func TestDeleteSoftDeletesAddress(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateSupplierRequest{
		Name:         "Fornecedor Temporário",
		SupplierType: "NATURAL_PERSON",
		CPF:          validCPF,
		Address:      sampleAddress(),
	})
	require.NoError(t, err)
	id, _ := strconv.ParseInt(created.ID, 10, 64)

	require.NoError(t, svc.Delete(ctx, id))

	_, err = svc.Get(ctx, id)
	require.NotNil(t, apperror.AsNotFound(err))

	var liveAddresses int64
	require.NoError(t, db.Table("addresses").
		Where("deleted_at IS NULL").
		Count(&liveAddresses).Error)
	assert.Equal(t, int64(0), liveAddresses)
}
