// Package seed populates reference data and, outside production, a small
// sample data set so the API is explorable right after startup.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	addressdomain "github.com/smallbiznis/estoque/internal/address/domain"
	categorydomain "github.com/smallbiznis/estoque/internal/category/domain"
	companydomain "github.com/smallbiznis/estoque/internal/company/domain"
	customerdomain "github.com/smallbiznis/estoque/internal/customer/domain"
	deliverydomain "github.com/smallbiznis/estoque/internal/delivery/domain"
	languagedomain "github.com/smallbiznis/estoque/internal/language/domain"
	orderdomain "github.com/smallbiznis/estoque/internal/order/domain"
	productdomain "github.com/smallbiznis/estoque/internal/product/domain"
	stockdomain "github.com/smallbiznis/estoque/internal/stock/domain"
	supplierdomain "github.com/smallbiznis/estoque/internal/supplier/domain"
	warehousedomain "github.com/smallbiznis/estoque/internal/warehouse/domain"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var referenceLanguages = []struct {
	name string
	iso  string
}{
	{"Português", "pt"},
	{"English", "en"},
	{"Español", "es"},
	{"Français", "fr"},
	{"Deutsch", "de"},
}

// EnsureLanguages seeds the language reference table when it is empty.
func EnsureLanguages(db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	var count int64
	if err := db.Model(&languagedomain.Language{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	languages := make([]languagedomain.Language, 0, len(referenceLanguages))
	for _, ref := range referenceLanguages {
		languages = append(languages, languagedomain.Language{
			ID:           node.Generate().Int64(),
			LanguageName: ref.name,
			IsoCode:      ref.iso,
		})
	}
	if err := db.Create(&languages).Error; err != nil {
		return err
	}

	log.Info("seeded reference languages", zap.Int("count", len(languages)))
	return nil
}

// EnsureSampleData seeds a small catalog, supply chain and sales data set
// when the catalog is empty. Intended for development environments only.
func EnsureSampleData(db *gorm.DB, node *snowflake.Node, log *zap.Logger) error {
	var count int64
	if err := db.Model(&categorydomain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC()

	var languages []languagedomain.Language
	if err := db.Find(&languages).Error; err != nil {
		return err
	}
	byIso := make(map[string]int64, len(languages))
	for _, language := range languages {
		byIso[language.IsoCode] = language.ID
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := []categorydomain.Category{
			{ID: node.Generate().Int64(), Name: "Eletrônicos", Description: "Aparelhos e acessórios eletrônicos", CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate().Int64(), Name: "Informática", Description: "Computadores, periféricos e redes", CreatedAt: now, UpdatedAt: now},
			{ID: node.Generate().Int64(), Name: "Ferramentas", Description: "Ferramentas manuais e elétricas", CreatedAt: now, UpdatedAt: now},
		}
		if err := tx.Create(&categories).Error; err != nil {
			return err
		}

		samples := []struct {
			namePT, nameEN string
			price          string
		}{
			{"Notebook 14\"", "14\" Laptop", "3499.90"},
			{"Mouse sem fio", "Wireless mouse", "89.90"},
			{"Furadeira de impacto", "Impact drill", "299.00"},
			{"Monitor 27\"", "27\" Monitor", "1299.50"},
		}
		products := make([]productdomain.Product, 0, len(samples))
		for i, sample := range samples {
			status := productdomain.StatusTested
			if i%3 == 2 {
				status = productdomain.StatusReturned
			}
			price, err := decimal.NewFromString(sample.price)
			if err != nil {
				return err
			}
			product := productdomain.Product{
				ID:               node.Generate().Int64(),
				WarrantyDate:     now.AddDate(1, 0, 0),
				Status:           status,
				MinimumSalePrice: price,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			products = append(products, product)

			link := productdomain.ProductCategory{
				ProductID:  product.ID,
				CategoryID: categories[i%len(categories)].ID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}

			translations := []productdomain.ProductTranslation{
				{ProductID: product.ID, LanguageID: byIso["pt"], Name: sample.namePT, Description: "Produto de demonstração"},
				{ProductID: product.ID, LanguageID: byIso["en"], Name: sample.nameEN, Description: "Sample product"},
			}
			if err := tx.Create(&translations).Error; err != nil {
				return err
			}
		}

		warehouses := make([]warehousedomain.Warehouse, 0, 2)
		for _, name := range []string{"Galpão Recife", "Galpão São Paulo"} {
			address := sampleAddress(node, now)
			if err := tx.Create(address).Error; err != nil {
				return err
			}
			warehouse := warehousedomain.Warehouse{
				ID:        node.Generate().Int64(),
				Name:      name,
				AddressID: address.ID,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&warehouse).Error; err != nil {
				return err
			}
			warehouses = append(warehouses, warehouse)
		}

		for i, product := range products {
			warehouse := warehouses[i%len(warehouses)]
			stock := stockdomain.ProductStock{
				ID:          node.Generate().Int64(),
				Code:        ulid.Make().String(),
				Amount:      int64(10 + rng.Intn(90)),
				ProductID:   product.ID,
				WarehouseID: warehouse.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := tx.Create(&stock).Error; err != nil {
				return err
			}
		}

		supplierAddress := sampleAddress(node, now)
		if err := tx.Create(supplierAddress).Error; err != nil {
			return err
		}
		cpf := "52998224725"
		supplier := supplierdomain.Supplier{
			ID:           node.Generate().Int64(),
			Name:         "João da Silva",
			SupplierType: supplierdomain.TypeNaturalPerson,
			CPF:          &cpf,
			AddressID:    supplierAddress.ID,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Create(&supplier).Error; err != nil {
			return err
		}

		companyAddress := sampleAddress(node, now)
		if err := tx.Create(companyAddress).Error; err != nil {
			return err
		}
		company := companydomain.Company{
			ID:        node.Generate().Int64(),
			LegalName: "Transportes Nordeste LTDA",
			TradeName: "TransNE",
			CNPJ:      "11222333000181",
			Phones:    datatypes.NewJSONSlice([]string{"+55 81 3333-0000"}),
			Emails:    datatypes.NewJSONSlice([]string{"contato@transne.example"}),
			AddressID: companyAddress.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Create(&company).Error; err != nil {
			return err
		}

		customerAddress := sampleAddress(node, now)
		if err := tx.Create(customerAddress).Error; err != nil {
			return err
		}
		customer := customerdomain.Customer{
			ID:          node.Generate().Int64(),
			Name:        "Maria Oliveira",
			CreditLimit: decimal.NewFromInt(5000),
			AddressID:   customerAddress.ID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}

		orderedAt := now.AddDate(0, 0, -rng.Intn(10))
		order := orderdomain.Order{
			ID:                  node.Generate().Int64(),
			OrderMethod:         orderdomain.MethodOnline,
			OrderStatus:         orderdomain.StatusProcessing,
			CustomerID:          customer.ID,
			OrderedAt:           orderedAt,
			ExpectedToDeliverAt: orderedAt.AddDate(0, 0, 3+rng.Intn(10)),
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		line := orderdomain.OrderProduct{
			OrderID:   order.ID,
			ProductID: products[0].ID,
			Amount:    int64(1 + rng.Intn(5)),
			SalePrice: products[0].MinimumSalePrice.Add(decimal.NewFromInt(int64(rng.Intn(100)))),
		}
		if err := tx.Create(&line).Error; err != nil {
			return err
		}

		destination := sampleAddress(node, now)
		if err := tx.Create(destination).Error; err != nil {
			return err
		}
		delivery := deliverydomain.Delivery{
			ID:                   node.Generate().Int64(),
			OrderID:              order.ID,
			CompanyID:            company.ID,
			SourceWarehouseID:    warehouses[0].ID,
			DestinationAddressID: destination.ID,
			Price:                decimal.NewFromInt(int64(10 + rng.Intn(290))),
			Status:               deliverydomain.StatusProcessing,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := tx.Create(&delivery).Error; err != nil {
			return err
		}

		log.Info("seeded sample data",
			zap.Int("categories", len(categories)),
			zap.Int("products", len(products)),
			zap.Int("warehouses", len(warehouses)),
		)
		return nil
	})
}

var sampleCities = []struct {
	city, state string
}{
	{"Recife", "PE"},
	{"São Paulo", "SP"},
	{"Garanhuns", "PE"},
	{"Belo Horizonte", "MG"},
}

func sampleAddress(node *snowflake.Node, now time.Time) *addressdomain.Address {
	pick := sampleCities[rand.Intn(len(sampleCities))]
	return &addressdomain.Address{
		ID:        node.Generate().Int64(),
		Country:   "Brasil",
		State:     pick.state,
		City:      pick.city,
		Street:    fmt.Sprintf("Rua %d", rand.Intn(900)+100),
		Number:    fmt.Sprintf("%d", rand.Intn(2000)+1),
		ZipCode:   fmt.Sprintf("%05d-%03d", rand.Intn(99999), rand.Intn(999)),
		CreatedAt: now,
		UpdatedAt: now,
	}
}
