package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-backend/internal/config"
	"catalog-backend/internal/infrastructure/database"
	pkgdb "catalog-backend/pkg/database"

	authorHandler "catalog-backend/internal/domains/author/handler"
	authorRepo "catalog-backend/internal/domains/author/repository"
	authorService "catalog-backend/internal/domains/author/service"

	bookHandler "catalog-backend/internal/domains/book/handler"
	bookRepo "catalog-backend/internal/domains/book/repository"
	bookService "catalog-backend/internal/domains/book/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds every application dependency, built once at startup.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// NewContainer builds the dependency graph in order:
// config, database, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing DI container")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.Pool); err != nil {
			db.Close()
			return nil, fmt.Errorf("database migration failed: %w", err)
		}
	}

	c := New(cfg, db.Pool)
	c.DB = db

	log.Info().Str("env", cfg.App.Environment).Msg("DI container ready")
	return c, nil
}

// New wires repositories, services and handlers on top of an open store.
func New(cfg *config.Config, q pkgdb.Querier) *Container {
	c := &Container{Config: cfg}

	c.AuthorRepo = authorRepo.NewPostgresRepository(q)
	c.BookRepo = bookRepo.NewPostgresRepository(q)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	return c
}

// Cleanup releases infrastructure resources.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleanup completed")
}
