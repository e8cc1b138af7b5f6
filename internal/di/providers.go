package di

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/catalogkit/product-catalog-service/internal/app"
	"github.com/catalogkit/product-catalog-service/internal/cache"
	"github.com/catalogkit/product-catalog-service/internal/config"
	"github.com/catalogkit/product-catalog-service/internal/database"
	"github.com/catalogkit/product-catalog-service/internal/http/handler"
	"github.com/catalogkit/product-catalog-service/internal/http/router"
	"github.com/catalogkit/product-catalog-service/internal/observability"
	"github.com/catalogkit/product-catalog-service/internal/repository"
	"github.com/catalogkit/product-catalog-service/internal/service"
)

var ConfigSet = wire.NewSet(ProvideConfig)

var ObservabilitySet = wire.NewSet(ProvideLogger)

var StoreSet = wire.NewSet(ProvideDB, ProvideCacheStore)

var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideSupplierRepository,
	ProvideCategoryRepository,
	ProvideUnitOfWork,
)

var ServiceSet = wire.NewSet(
	ProvideReadService,
	ProvideWriteService,
	ProvideSupplierService,
	ProvideCategoryService,
)

var HTTPSet = wire.NewSet(
	ProvideProductHandler,
	ProvideSupplierHandler,
	ProvideCategoryHandler,
	ProvideRouter,
	ProvideServer,
)

var AppSet = wire.NewSet(app.New)

func ProvideConfig() (*config.Config, error) {
	return config.Load()
}

func ProvideLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.Env, cfg.LogLevel)
}

func ProvideDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

// ProvideCacheStore picks redis when configured, otherwise the in-process
// memory cache. The store lives for the whole process and is shared by all
// requests; its contents are lost on restart.
func ProvideCacheStore(cfg *config.Config, logger *slog.Logger) cache.Store {
	if cfg.RedisAddr == "" {
		return cache.NewMemoryStore()
	}
	client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	logger.Info("using redis product cache", "addr", cfg.RedisAddr)
	return cache.NewRedisStore(client, cfg.RedisCachePrefix)
}

func ProvideProductRepository(db *gorm.DB) repository.ProductRepository {
	return repository.NewProductRepository(db)
}

func ProvideSupplierRepository(db *gorm.DB) repository.SupplierRepository {
	return repository.NewSupplierRepository(db)
}

func ProvideCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return repository.NewCategoryRepository(db)
}

func ProvideUnitOfWork(db *gorm.DB) repository.UnitOfWork {
	return repository.NewUnitOfWork(db)
}

func ProvideReadService(products repository.ProductRepository, store cache.Store, logger *slog.Logger, cfg *config.Config) *service.CatalogReadService {
	return service.NewCatalogReadService(products, store, logger, cfg.CacheAbsoluteTTL, cfg.CacheSlidingTTL)
}

func ProvideWriteService(uow repository.UnitOfWork, store cache.Store, logger *slog.Logger) *service.CatalogWriteService {
	return service.NewCatalogWriteService(uow, store, logger)
}

func ProvideSupplierService(suppliers repository.SupplierRepository, logger *slog.Logger) *service.SupplierService {
	return service.NewSupplierService(suppliers, logger)
}

func ProvideCategoryService(categories repository.CategoryRepository, store cache.Store, logger *slog.Logger) *service.CategoryService {
	return service.NewCategoryService(categories, store, logger)
}

func ProvideProductHandler(reads *service.CatalogReadService, writes *service.CatalogWriteService, cfg *config.Config) *handler.ProductHandler {
	return handler.NewProductHandler(reads, writes, cfg.DebugErrors)
}

func ProvideSupplierHandler(suppliers *service.SupplierService, writes *service.CatalogWriteService, cfg *config.Config) *handler.SupplierHandler {
	return handler.NewSupplierHandler(suppliers, writes, cfg.DebugErrors)
}

func ProvideCategoryHandler(categories *service.CategoryService, cfg *config.Config) *handler.CategoryHandler {
	return handler.NewCategoryHandler(categories, cfg.DebugErrors)
}

func ProvideRouter(logger *slog.Logger, products *handler.ProductHandler, suppliers *handler.SupplierHandler, categories *handler.CategoryHandler) http.Handler {
	return router.New(logger, products, suppliers, categories)
}

func ProvideServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// MigrationRunner applies the schema and seed data outside the serving path.
type MigrationRunner struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewMigrationRunner(db *gorm.DB, logger *slog.Logger) *MigrationRunner {
	return &MigrationRunner{db: db, logger: logger}
}

func (m *MigrationRunner) Run() error {
	if err := database.Migrate(m.db); err != nil {
		return err
	}
	report, err := database.SeedSync(m.db)
	if err != nil {
		return err
	}
	m.logger.Info("migration complete",
		"created_categories", report.CreatedCategories,
		"created_suppliers", report.CreatedSuppliers,
		"noop", report.Noop,
	)
	return nil
}
