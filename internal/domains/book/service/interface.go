package service

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/book/model"
)

// ServiceInterface - book business operations. Every error it returns is an
// *apperror.Error.
type ServiceInterface interface {
	GetAll(ctx context.Context) ([]*model.BookResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	GetByISBN(ctx context.Context, isbn string) (*model.BookResponse, error)
	Create(ctx context.Context, req *model.BookRequest) (*model.BookResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) (*model.BookResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error

	GetByCategory(ctx context.Context, category model.BookCategory) ([]*model.BookResponse, error)
	GetByStatus(ctx context.Context, status model.BookStatus) ([]*model.BookResponse, error)
	GetByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.BookResponse, error)
	SearchByTitle(ctx context.Context, title string) ([]*model.BookResponse, error)

	Borrow(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
	Return(ctx context.Context, id uuid.UUID) (*model.BookResponse, error)
}

// AuthorChecker is the slice of the author store the book service needs.
// The author repository satisfies it.
type AuthorChecker interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
