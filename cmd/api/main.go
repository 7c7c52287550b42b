package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/urfave/cli/v2"

	_ "github.com/jhoicas/bookkeeping-api/docs"
	"github.com/jhoicas/bookkeeping-api/internal/application/auth"
	"github.com/jhoicas/bookkeeping-api/internal/application/report"
	"github.com/jhoicas/bookkeeping-api/internal/application/transaction"
	"github.com/jhoicas/bookkeeping-api/internal/application/usecase"
	infrapdf "github.com/jhoicas/bookkeeping-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bookkeeping-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bookkeeping-api/internal/interfaces/http"
	"github.com/jhoicas/bookkeeping-api/pkg/config"
	"github.com/jhoicas/bookkeeping-api/pkg/logger"
)

// @title          Bookkeeping API
// @version        1.0
// @description    Contabilidad multi-negocio: contactos, catálogo, ventas y compras con control de stock.
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in             header
// @name           Authorization
func main() {
	app := &cli.App{
		Name:  "bookkeeping-api",
		Usage: "API de contabilidad e inventario",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "levanta el servidor HTTP",
				Action: serve,
			},
			{
				Name:  "migrate",
				Usage: "aplica las migraciones de PostgreSQL",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "down", Usage: "revierte todas las migraciones"},
				},
				Action: runMigrations,
			},
		},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, cli.Exit("cargar configuración: "+err.Error(), 1)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	return cfg, log, nil
}

func runMigrations(c *cli.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	dsn := cfg.DB.ConnectionString()
	if c.Bool("down") {
		return postgres.MigrateDown(dsn, log.Zerolog())
	}
	return postgres.Migrate(dsn, log.Zerolog())
}

func serve(c *cli.Context) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := c.Context
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := openStorage(ctx, cfg, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento")
	}
	defer store.close()

	authUC := auth.NewAuthUseCase(store.businesses, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(store.products, store.inventory)
	contactUC := usecase.NewContactUseCase(store.contacts)
	processor := transaction.NewProcessor(store.txRunner, store.contacts, log.Zerolog())
	queries := transaction.NewQueryUseCase(store.ledger, transaction.NewEnricher(store.products, store.contacts))
	reportUC := report.NewReportUseCase(store.inventory, store.businesses, queries, infrapdf.NewMarotoPDFGenerator())

	app := httpRouter.NewApp(cfg.App.Name, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProductUC:    productUC,
		ContactUC:    contactUC,
		Processor:    processor,
		Transactions: queries,
		ReportUC:     reportUC,
		JWTSecret:    cfg.JWT.Secret,
		Log:          log.Zerolog(),
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bookkeeping API",
	}))

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
	return nil
}
