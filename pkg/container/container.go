package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"bookmanager/internal/config"
	infraCache "bookmanager/internal/infrastructure/cache"
	"bookmanager/internal/infrastructure/database"
	"bookmanager/pkg/cache"
	pkgdb "bookmanager/pkg/database"
	"bookmanager/pkg/logger"

	"bookmanager/internal/domains/author"
	authorHandler "bookmanager/internal/domains/author/handler"
	authorRepo "bookmanager/internal/domains/author/repository"
	authorService "bookmanager/internal/domains/author/service"

	bookHandler "bookmanager/internal/domains/book/handler"
	bookRepo "bookmanager/internal/domains/book/repository"
	bookService "bookmanager/internal/domains/book/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the application's dependency graph.
// Build order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      *infraCache.RedisCache
	Transactor pkgdb.Transactor

	// Repositories
	AuthorRepo author.Repository
	BookRepo   bookRepo.RepositoryInterface

	// Services
	AuthorService author.Service
	BookService   bookService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.Handler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("initializing container")

	c := &Container{Config: cfg}

	// STEP 1: database
	db := database.NewPostgresDB(cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// STEP 2: schema
	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, cfg.Database); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	// STEP 3: cache (non-critical, reads fall through to postgres)
	c.Cache = infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		log.Warn().Err(err).Msg("redis unavailable, continuing without cache hits")
	}

	c.Transactor = pkgdb.NewTransactor(db.Pool)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("container initialized")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	var authorCache cache.Cache = c.Cache
	c.AuthorRepo = authorRepo.NewPostgresRepository(pool, authorCache, c.Config.Cache.AuthorTTL)
	c.BookRepo = bookRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Transactor)

	// Cross-domain dependency: books check author references through the author repository.
	c.BookService = bookService.NewService(c.BookRepo, c.AuthorRepo, c.Transactor)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewHandler(c.BookService)
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("cleaning up container resources")

	if c.DB != nil {
		c.DB.Close()
	}

	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			logger.Error("failed to close redis", err)
		}
	}
}
