package service

import (
	"context"

	"github.com/google/uuid"

	"catalog-backend/internal/domains/author/model"
)

// ServiceInterface - author business operations. Every error it returns is
// an *apperror.Error.
type ServiceInterface interface {
	GetAll(ctx context.Context) ([]*model.AuthorResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error)
	GetByEmail(ctx context.Context, email string) (*model.AuthorResponse, error)
	Create(ctx context.Context, req *model.AuthorRequest) (*model.AuthorResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *model.AuthorRequest) (*model.AuthorResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SearchByName(ctx context.Context, name string) ([]*model.AuthorResponse, error)
	GetWithMinimumBooks(ctx context.Context, minBooks int) ([]*model.AuthorResponse, error)
}
