package repository

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/book/model"
)

// RepositoryInterface is the book storage collaborator. Every read returns
// the book joined with its author's display name.
type RepositoryInterface interface {
	Find(ctx context.Context, filter model.BookFilter) ([]model.BookWithAuthor, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error)
	FindByISBN(ctx context.Context, isbn string) (*model.BookWithAuthor, error)
	ExistsByISBN(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error)

	Create(ctx context.Context, b *model.Book) (*model.BookWithAuthor, error)
	Update(ctx context.Context, b *model.Book) (*model.BookWithAuthor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookStatus) (*model.BookWithAuthor, error)
	Borrow(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
