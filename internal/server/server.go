package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/involine/involine/internal/config"
	"github.com/involine/involine/internal/customer"
	customerdomain "github.com/involine/involine/internal/customer/domain"
	"github.com/involine/involine/internal/exchangerate"
	"github.com/involine/involine/internal/invoice"
	invoicedomain "github.com/involine/involine/internal/invoice/domain"
	invoicepdf "github.com/involine/involine/internal/invoice/pdf"
	"github.com/involine/involine/internal/item"
	itemdomain "github.com/involine/involine/internal/item/domain"
	"github.com/involine/involine/internal/ledgerentry"
	ledgerdomain "github.com/involine/involine/internal/ledgerentry/domain"
	"github.com/involine/involine/internal/observability"
	obsmiddleware "github.com/involine/involine/internal/observability/logger"
	obsmetrics "github.com/involine/involine/internal/observability/metrics"
	obstracing "github.com/involine/involine/internal/observability/tracing"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	exchangerate.Module,
	customer.Module,
	item.Module,
	ledgerentry.Module,
	invoice.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
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
	engine      *gin.Engine
	cfg         config.Config
	profile     *config.BusinessProfileHolder
	customerSvc customerdomain.Service
	itemSvc     itemdomain.Service
	ledgerSvc   ledgerdomain.Service
	invoiceSvc  invoicedomain.Service
	pdfRenderer *invoicepdf.Renderer
}

type ServerParams struct {
	fx.In

	Gin         *gin.Engine
	Cfg         config.Config
	Profile     *config.BusinessProfileHolder
	CustomerSvc customerdomain.Service
	ItemSvc     itemdomain.Service
	LedgerSvc   ledgerdomain.Service
	InvoiceSvc  invoicedomain.Service
	PDFRenderer *invoicepdf.Renderer
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:      p.Gin,
		cfg:         p.Cfg,
		profile:     p.Profile,
		customerSvc: p.CustomerSvc,
		itemSvc:     p.ItemSvc,
		ledgerSvc:   p.LedgerSvc,
		invoiceSvc:  p.InvoiceSvc,
		pdfRenderer: p.PDFRenderer,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Customers --------
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers", s.ListCustomers)
	api.GET("/customers/:id", s.GetCustomerByID)

	// -------- Items --------
	api.POST("/items", s.CreateItem)
	api.GET("/items", s.ListItems)
	api.GET("/items/:id", s.GetItemByID)

	// -------- Ledger entries --------
	api.POST("/ledger-entries", s.CreateLedgerEntry)
	api.GET("/ledger-entries", s.ListLedgerEntries)
	api.GET("/ledger-entries/:id", s.GetLedgerEntryByID)

	// -------- Invoices --------
	api.POST("/invoices/generate", s.GenerateInvoice)
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
}
