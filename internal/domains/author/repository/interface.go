package repository

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/author/model"
)

// RepositoryInterface is the author storage collaborator. Reads return the
// author together with its computed book count.
type RepositoryInterface interface {
	FindAll(ctx context.Context) ([]model.AuthorWithCount, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithCount, error)
	FindByEmail(ctx context.Context, email string) (*model.AuthorWithCount, error)
	SearchByName(ctx context.Context, fragment string) ([]model.AuthorWithCount, error)
	FindWithMinimumBooks(ctx context.Context, minBooks int) ([]model.AuthorWithCount, error)

	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	Update(ctx context.Context, a *model.Author) (*model.Author, error)
	Delete(ctx context.Context, id uuid.UUID) error

	CountBooks(ctx context.Context, id uuid.UUID) (int, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
