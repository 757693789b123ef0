package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/emart-api/internal/application/preorder"
	"github.com/jhoicas/emart-api/internal/application/purchase"
	"github.com/jhoicas/emart-api/internal/application/report"
	"github.com/jhoicas/emart-api/internal/application/sequence"
	"github.com/jhoicas/emart-api/internal/application/tasks"
	"github.com/jhoicas/emart-api/internal/application/usecase"
	"github.com/jhoicas/emart-api/internal/domain/repository"
	infradynamo "github.com/jhoicas/emart-api/internal/infrastructure/dynamodb"
	"github.com/jhoicas/emart-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/emart-api/internal/infrastructure/pdf"
	"github.com/jhoicas/emart-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/emart-api/internal/interfaces/http"
	"github.com/jhoicas/emart-api/pkg/config"
	"github.com/jhoicas/emart-api/pkg/logger"
)

// storage agrupa los adaptadores de persistencia elegidos por STORAGE_DRIVER.
type storage struct {
	purchaseTx   purchase.TxRunner
	taskTx       tasks.TxRunner
	users        repository.UserRepository
	products     repository.ProductRepository
	transactions repository.TransactionRepository
	preorders    repository.PreorderRepository
	tasks        repository.TaskRepository
	requests     repository.ProductRequestRepository
	logs         repository.ProductLogRepository
	sequences    repository.SequenceRepository
	close        func()
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
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Str("sequence", cfg.Storage.SequenceDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	ids := sequence.NewAllocator(st.sequences)

	productLogUC := usecase.NewProductLogUseCase(st.logs, ids, log.Component("product_log"))
	userUC := usecase.NewUserUseCase(st.users, ids)
	productUC := usecase.NewProductUseCase(st.products, ids, productLogUC)
	productRequestUC := usecase.NewProductRequestUseCase(st.requests, ids)
	purchaseUC := purchase.NewUseCase(st.purchaseTx, ids, st.users, st.products, st.transactions)
	preorderUC := preorder.NewUseCase(ids, st.preorders, st.users, st.products)
	taskUC := tasks.NewUseCase(st.taskTx, ids, st.tasks, st.users, log.Component("tasks"))
	reportUC := report.NewUseCase(st.transactions, st.preorders, st.logs, st.requests, infrapdf.NewReportRenderer(cfg.App.Name))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestIDMiddleware())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.FrontendURL,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "eMart API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UserUC:           userUC,
		ProductUC:        productUC,
		ProductRequestUC: productRequestUC,
		ProductLogUC:     productLogUC,
		PurchaseUC:       purchaseUC,
		PreorderUC:       preorderUC,
		TaskUC:           taskUC,
		ReportUC:         reportUC,
		JWTSecret:        cfg.JWT.Secret,
		JWTIssuer:        cfg.JWT.Issuer,
	})

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

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	var (
		st   *storage
		pool *pgxpool.Pool
	)
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		st = &storage{
			purchaseTx:   store,
			taskTx:       store,
			users:        store.Users(),
			products:     store.Products(),
			transactions: store.Transactions(),
			preorders:    store.Preorders(),
			tasks:        store.Tasks(),
			requests:     store.ProductRequests(),
			logs:         store.ProductLogs(),
			sequences:    store.Sequences(),
			close:        func() {},
		}
	default:
		var err error
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		if cfg.Storage.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		txRunner := postgres.NewTxRunner(pool)
		st = &storage{
			purchaseTx:   txRunner,
			taskTx:       txRunner,
			users:        postgres.NewUserRepository(pool),
			products:     postgres.NewProductRepository(pool),
			transactions: postgres.NewTransactionRepository(pool),
			preorders:    postgres.NewPreorderRepository(pool),
			tasks:        postgres.NewTaskRepository(pool),
			requests:     postgres.NewProductRequestRepository(pool),
			logs:         postgres.NewProductLogRepository(pool),
			sequences:    postgres.NewSequenceRepository(pool),
			close:        pool.Close,
		}
	}

	if cfg.Storage.SequenceDriver == config.DriverDynamoDB {
		client, err := infradynamo.NewClient(ctx, cfg.DynamoDB.Region, cfg.DynamoDB.Endpoint)
		if err != nil {
			st.close()
			return nil, fmt.Errorf("cliente DynamoDB: %w", err)
		}
		st.sequences = infradynamo.NewSequenceRepository(client, cfg.DynamoDB.SequenceTable)
	}
	return st, nil
}
