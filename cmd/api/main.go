package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jhoicas/facturas-api/internal/application/analytics"
	"github.com/jhoicas/facturas-api/internal/application/auth"
	"github.com/jhoicas/facturas-api/internal/application/billing"
	"github.com/jhoicas/facturas-api/internal/application/usecase"
	"github.com/jhoicas/facturas-api/internal/domain/invoice"
	"github.com/jhoicas/facturas-api/internal/domain/repository"
	"github.com/jhoicas/facturas-api/internal/infrastructure/memory"
	"github.com/jhoicas/facturas-api/internal/infrastructure/metrics"
	"github.com/jhoicas/facturas-api/internal/infrastructure/notify"
	infrapdf "github.com/jhoicas/facturas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/facturas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/facturas-api/internal/infrastructure/taxdoc"
	httpRouter "github.com/jhoicas/facturas-api/internal/interfaces/http"
	"github.com/jhoicas/facturas-api/pkg/config"
	"github.com/jhoicas/facturas-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repositories agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type repositories struct {
	companies repository.CompanyRepository
	products  repository.ProductRepository
	invoices  repository.InvoiceRepository
	users     repository.UserRepository
	analytics repository.AnalyticsRepository
	tx        billing.InvoiceTxRunner
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) repositories {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return repositories{
			companies: store.Companies(),
			products:  store.Products(),
			invoices:  store.Invoices(),
			users:     store.Users(),
			analytics: store.Analytics(),
			tx:        memory.NewTxRunner(store),
			close:     func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if cfg.Storage.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return repositories{
		companies: postgres.NewCompanyRepository(pool),
		products:  postgres.NewProductRepository(pool),
		invoices:  postgres.NewInvoiceRepository(pool),
		users:     postgres.NewUserRepository(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		close:     pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos := openStorage(ctx, cfg, log)
	defer repos.close()

	loc, _ := cfg.Invoice.Location() // ya validada en config.Load
	builder := invoice.NewBuilder(invoice.WithLocation(loc))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	invoiceMetrics := metrics.NewInvoiceMetrics(registry, cfg.App.Name)

	invoiceUC := billing.NewInvoiceUseCase(
		repos.tx, repos.invoices, repos.companies, repos.products,
		builder, notify.NewLogNotifier(log), invoiceMetrics, log,
	)

	// PDF y XML: representaciones descargables de la factura emitida
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	documentUC := billing.NewDocumentUseCase(
		repos.invoices, repos.companies, pdfGenerator, taxdoc.NewXMLBuilder(),
		billing.Issuer{Name: cfg.Business.Name, BusinessNumber: cfg.Business.Number},
	)
	reportUC := analytics.NewReportUseCase(repos.invoices, repos.companies, repos.analytics, pdfGenerator)

	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Facturas API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("sin especificación swagger, /docs deshabilitado")
	}

	deps := httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		CompanyUC:   usecase.NewCompanyUseCase(repos.companies, repos.invoices),
		ProductUC:   usecase.NewProductUseCase(repos.products),
		InvoiceUC:   invoiceUC,
		DocumentUC:  documentUC,
		ReportUC:    reportUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = registry
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
