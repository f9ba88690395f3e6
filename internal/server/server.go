package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/estoque/internal/address"
	"github.com/smallbiznis/estoque/internal/category"
	categorydomain "github.com/smallbiznis/estoque/internal/category/domain"
	"github.com/smallbiznis/estoque/internal/company"
	companydomain "github.com/smallbiznis/estoque/internal/company/domain"
	"github.com/smallbiznis/estoque/internal/config"
	"github.com/smallbiznis/estoque/internal/customer"
	customerdomain "github.com/smallbiznis/estoque/internal/customer/domain"
	"github.com/smallbiznis/estoque/internal/delivery"
	deliverydomain "github.com/smallbiznis/estoque/internal/delivery/domain"
	"github.com/smallbiznis/estoque/internal/language"
	languagedomain "github.com/smallbiznis/estoque/internal/language/domain"
	"github.com/smallbiznis/estoque/internal/observability"
	obsmiddleware "github.com/smallbiznis/estoque/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/estoque/internal/observability/metrics"
	obstracing "github.com/smallbiznis/estoque/internal/observability/tracing"
	"github.com/smallbiznis/estoque/internal/order"
	orderdomain "github.com/smallbiznis/estoque/internal/order/domain"
	"github.com/smallbiznis/estoque/internal/product"
	productdomain "github.com/smallbiznis/estoque/internal/product/domain"
	"github.com/smallbiznis/estoque/internal/stock"
	stockdomain "github.com/smallbiznis/estoque/internal/stock/domain"
	"github.com/smallbiznis/estoque/internal/supplier"
	supplierdomain "github.com/smallbiznis/estoque/internal/supplier/domain"
	"github.com/smallbiznis/estoque/internal/warehouse"
	warehousedomain "github.com/smallbiznis/estoque/internal/warehouse/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	address.Module,
	language.Module,
	category.Module,
	product.Module,
	warehouse.Module,
	stock.Module,
	supplier.Module,
	customer.Module,
	company.Module,
	order.Module,
	delivery.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug: obsCfg.Debug(),
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine       *gin.Engine
	cfg          config.Config
	db           *gorm.DB
	genID        *snowflake.Node
	languageSvc  languagedomain.Service
	categorySvc  categorydomain.Service
	productSvc   productdomain.Service
	warehouseSvc warehousedomain.Service
	stockSvc     stockdomain.Service
	supplierSvc  supplierdomain.Service
	customerSvc  customerdomain.Service
	companySvc   companydomain.Service
	orderSvc     orderdomain.Service
	deliverySvc  deliverydomain.Service
}

type ServerParams struct {
	fx.In

	Gin          *gin.Engine
	Cfg          config.Config
	DB           *gorm.DB
	GenID        *snowflake.Node
	LanguageSvc  languagedomain.Service
	CategorySvc  categorydomain.Service
	ProductSvc   productdomain.Service
	WarehouseSvc warehousedomain.Service
	StockSvc     stockdomain.Service
	SupplierSvc  supplierdomain.Service
	CustomerSvc  customerdomain.Service
	CompanySvc   companydomain.Service
	OrderSvc     orderdomain.Service
	DeliverySvc  deliverydomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:       p.Gin,
		cfg:          p.Cfg,
		db:           p.DB,
		genID:        p.GenID,
		languageSvc:  p.LanguageSvc,
		categorySvc:  p.CategorySvc,
		productSvc:   p.ProductSvc,
		warehouseSvc: p.WarehouseSvc,
		stockSvc:     p.StockSvc,
		supplierSvc:  p.SupplierSvc,
		customerSvc:  p.CustomerSvc,
		companySvc:   p.CompanySvc,
		orderSvc:     p.OrderSvc,
		deliverySvc:  p.DeliverySvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	languages := api.Group("/languages")
	languages.GET("", s.ListLanguages)
	languages.GET("/:id", s.GetLanguage)

	categories := api.Group("/categories")
	categories.POST("", s.CreateCategory)
	categories.GET("", s.ListCategories)
	categories.GET("/:id", s.GetCategory)
	categories.PUT("/:id", s.UpdateCategory)
	categories.DELETE("/:id", s.DeleteCategory)

	products := api.Group("/products")
	products.POST("", s.CreateProduct)
	products.GET("", s.ListProducts)
	products.GET("/:id", s.GetProduct)
	products.PUT("/:id", s.UpdateProduct)
	products.DELETE("/:id", s.DeleteProduct)

	warehouses := api.Group("/warehouses")
	warehouses.POST("", s.CreateWarehouse)
	warehouses.GET("", s.ListWarehouses)
	warehouses.GET("/:id", s.GetWarehouse)
	warehouses.PUT("/:id", s.UpdateWarehouse)
	warehouses.DELETE("/:id", s.DeleteWarehouse)

	stocks := api.Group("/product-stocks")
	stocks.POST("", s.CreateStock)
	stocks.GET("", s.ListStocks)
	stocks.GET("/:id", s.GetStock)
	stocks.PUT("/:id", s.UpdateStock)
	stocks.DELETE("/:id", s.DeleteStock)

	suppliers := api.Group("/suppliers")
	suppliers.POST("", s.CreateSupplier)
	suppliers.GET("", s.ListSuppliers)
	suppliers.GET("/:id", s.GetSupplier)
	suppliers.PUT("/:id", s.UpdateSupplier)
	suppliers.DELETE("/:id", s.DeleteSupplier)

	customers := api.Group("/customers")
	customers.POST("", s.CreateCustomer)
	customers.GET("", s.ListCustomers)
	customers.GET("/:id", s.GetCustomer)
	customers.PUT("/:id", s.UpdateCustomer)
	customers.DELETE("/:id", s.DeleteCustomer)

	companies := api.Group("/companies")
	companies.POST("", s.CreateCompany)
	companies.GET("", s.ListCompanies)
	companies.GET("/:id", s.GetCompany)
	companies.PUT("/:id", s.UpdateCompany)
	companies.DELETE("/:id", s.DeleteCompany)

	orders := api.Group("/orders")
	orders.POST("", s.CreateOrder)
	orders.GET("", s.ListOrders)
	orders.GET("/:id", s.GetOrder)
	orders.PUT("/:id", s.UpdateOrder)
	orders.DELETE("/:id", s.DeleteOrder)

	deliveries := api.Group("/deliveries")
	deliveries.POST("", s.CreateDelivery)
	deliveries.GET("", s.ListDeliveries)
	deliveries.GET("/:id", s.GetDelivery)
	deliveries.DELETE("/:id", s.DeleteDelivery)
}
