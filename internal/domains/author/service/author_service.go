package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/domains/author/repository"
	"catalog-backend/internal/shared/apperror"
)

// authorService implements ServiceInterface
type authorService struct {
	repo repository.RepositoryInterface
}

// NewAuthorService creates a new author service instance
func NewAuthorService(repo repository.RepositoryInterface) ServiceInterface {
	return &authorService{
		repo: repo,
	}
}

func (s *authorService) GetAll(ctx context.Context) ([]*model.AuthorResponse, error) {
	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return model.ToResponses(authors), nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*model.AuthorResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "id", id)
	}
	return a.ToResponse(), nil
}

func (s *authorService) GetByEmail(ctx context.Context, email string) (*model.AuthorResponse, error) {
	email = strings.TrimSpace(email)

	a, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, translate(err, "email", email)
	}
	return a.ToResponse(), nil
}

// Create persists a new author. An email already on file is a conflict;
// the unique index catches the race between the check and the insert.
func (s *authorService) Create(ctx context.Context, req *model.AuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()

	if req.Email != nil {
		exists, err := s.repo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, apperror.Unexpected(err)
		}
		if exists {
			return nil, duplicateEmail(*req.Email)
		}
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) && req.Email != nil {
			return nil, duplicateEmail(*req.Email).Wrap(err)
		}
		return nil, apperror.Unexpected(err)
	}

	log.Info().
		Str("author_id", created.ID.String()).
		Str("name", created.FullName()).
		Msg("Author created")

	return (&model.AuthorWithCount{Author: *created}).ToResponse(), nil
}

// Update overwrites every editable field. Email uniqueness is left to the
// store constraint.
func (s *authorService) Update(ctx context.Context, id uuid.UUID, req *model.AuthorRequest) (*model.AuthorResponse, error) {
	req.Normalize()

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "id", id)
	}

	req.Apply(&current.Author)

	updated, err := s.repo.Update(ctx, &current.Author)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) && req.Email != nil {
			return nil, duplicateEmail(*req.Email).Wrap(err)
		}
		return nil, translate(err, "id", id)
	}

	log.Info().Str("author_id", id.String()).Msg("Author updated")

	return (&model.AuthorWithCount{Author: *updated, BookCount: current.BookCount}).ToResponse(), nil
}

// Delete removes an author that owns no books.
func (s *authorService) Delete(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return translate(err, "id", id)
	}

	if !a.CanDelete() {
		return hasBooks(a.BookCount)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrAuthorHasBooks) {
			count, countErr := s.repo.CountBooks(ctx, id)
			if countErr != nil {
				return apperror.Unexpected(errors.Join(err, countErr))
			}
			return hasBooks(count).Wrap(err)
		}
		return translate(err, "id", id)
	}

	log.Info().Str("author_id", id.String()).Str("name", a.FullName()).Msg("Author deleted")

	return nil
}

// SearchByName never fails on input: a blank fragment finds nothing.
func (s *authorService) SearchByName(ctx context.Context, name string) ([]*model.AuthorResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []*model.AuthorResponse{}, nil
	}

	authors, err := s.repo.SearchByName(ctx, name)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return model.ToResponses(authors), nil
}

// GetWithMinimumBooks lists authors owning at least minBooks books. A
// negative threshold behaves as zero.
func (s *authorService) GetWithMinimumBooks(ctx context.Context, minBooks int) ([]*model.AuthorResponse, error) {
	if minBooks < 0 {
		minBooks = 0
	}

	authors, err := s.repo.FindWithMinimumBooks(ctx, minBooks)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return model.ToResponses(authors), nil
}

func duplicateEmail(email string) *apperror.Error {
	return apperror.Conflict("author with email '%s' already exists", email).
		WithDetail("email", email)
}

func hasBooks(count int) *apperror.Error {
	return apperror.Conflict("cannot delete author: author owns %d book(s)", count).
		WithDetail("book_count", count)
}

// translate maps repository errors onto the error taxonomy.
func translate(err error, field string, key any) error {
	switch {
	case errors.Is(err, model.ErrAuthorNotFound):
		return apperror.NotFound(model.EntityName, field, key).Wrap(err)
	case errors.Is(err, model.ErrDuplicateEmail):
		return apperror.Conflict("author with this email already exists").Wrap(err)
	case errors.Is(err, model.ErrAuthorHasBooks):
		return apperror.Conflict("cannot delete author with linked books").Wrap(err)
	default:
		return apperror.Unexpected(err)
	}
}
