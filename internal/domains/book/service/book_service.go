package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/domains/book/repository"
	"catalog-backend/internal/shared/apperror"
)

type bookService struct {
	repo    repository.RepositoryInterface
	authors AuthorChecker
}

// NewBookService creates a new book service instance
func NewBookService(repo repository.RepositoryInterface, authors AuthorChecker) ServiceInterface {
	return &bookService{
		repo:    repo,
		authors: authors,
	}
}

func (s *bookService) GetAll(ctx context.Context) ([]*model.BookResponse, error) {
	return s.find(ctx, model.BookFilter{})
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "id", id)
	}
	return b.ToResponse(), nil
}

func (s *bookService) GetByISBN(ctx context.Context, isbn string) (*model.BookResponse, error) {
	isbn = strings.TrimSpace(isbn)

	b, err := s.repo.FindByISBN(ctx, isbn)
	if err != nil {
		return nil, translate(err, "isbn", isbn)
	}
	return b.ToResponse(), nil
}

// Create persists a new AVAILABLE book for an existing author.
func (s *bookService) Create(ctx context.Context, req *model.BookRequest) (*model.BookResponse, error) {
	req.Normalize()

	if err := s.ensureISBNFree(ctx, req.ISBN, uuid.Nil); err != nil {
		return nil, err
	}

	authorID := req.AuthorUUID()
	if err := s.ensureAuthor(ctx, authorID); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, req.ToEntity())
	if err != nil {
		return nil, s.writeError(err, req)
	}

	log.Info().
		Str("book_id", created.ID.String()).
		Str("isbn", created.ISBN).
		Str("author_id", authorID.String()).
		Msg("Book created")

	return created.ToResponse(), nil
}

// Update overwrites the book's fields. The ISBN must stay unique and a
// reassigned author must exist. Status changes only when supplied.
func (s *bookService) Update(ctx context.Context, id uuid.UUID, req *model.BookRequest) (*model.BookResponse, error) {
	req.Normalize()

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "id", id)
	}

	if req.ISBN != current.ISBN {
		if err := s.ensureISBNFree(ctx, req.ISBN, id); err != nil {
			return nil, err
		}
	}

	if authorID := req.AuthorUUID(); authorID != current.AuthorID {
		if err := s.ensureAuthor(ctx, authorID); err != nil {
			return nil, err
		}
	}

	book := current.Book
	req.Apply(&book)

	updated, err := s.repo.Update(ctx, &book)
	if err != nil {
		if errors.Is(err, model.ErrBookNotFound) {
			return nil, translate(err, "id", id)
		}
		return nil, s.writeError(err, req)
	}

	log.Info().Str("book_id", id.String()).Str("status", updated.Status.String()).Msg("Book updated")

	return updated.ToResponse(), nil
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return translate(err, "id", id)
	}

	log.Info().Str("book_id", id.String()).Msg("Book deleted")
	return nil
}

func (s *bookService) GetByCategory(ctx context.Context, category model.BookCategory) ([]*model.BookResponse, error) {
	return s.find(ctx, model.BookFilter{Category: category})
}

func (s *bookService) GetByStatus(ctx context.Context, status model.BookStatus) ([]*model.BookResponse, error) {
	return s.find(ctx, model.BookFilter{Status: status})
}

// GetByAuthor lists the author's books; the author itself must exist.
func (s *bookService) GetByAuthor(ctx context.Context, authorID uuid.UUID) ([]*model.BookResponse, error) {
	if err := s.ensureAuthor(ctx, authorID); err != nil {
		return nil, err
	}
	return s.find(ctx, model.BookFilter{AuthorID: authorID})
}

// SearchByTitle never fails on input: a blank title finds nothing.
func (s *bookService) SearchByTitle(ctx context.Context, title string) ([]*model.BookResponse, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return []*model.BookResponse{}, nil
	}
	return s.find(ctx, model.BookFilter{Title: title})
}

// Borrow moves an AVAILABLE book to BORROWED. Any other current status is a
// conflict, including losing a race against a concurrent borrower.
func (s *bookService) Borrow(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "id", id)
	}

	if !model.CanTransition(current.Status, model.StatusBorrowed) {
		return nil, notAvailable(current.Status)
	}

	borrowed, err := s.repo.Borrow(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookNotAvailable) {
			latest, findErr := s.repo.FindByID(ctx, id)
			if findErr != nil {
				return nil, translate(findErr, "id", id)
			}
			return nil, notAvailable(latest.Status).Wrap(err)
		}
		return nil, translate(err, "id", id)
	}

	log.Info().Str("book_id", id.String()).Str("title", borrowed.Title).Msg("Book borrowed")

	return borrowed.ToResponse(), nil
}

// Return makes the book AVAILABLE whatever its current status.
func (s *bookService) Return(ctx context.Context, id uuid.UUID) (*model.BookResponse, error) {
	returned, err := s.repo.UpdateStatus(ctx, id, model.StatusAvailable)
	if err != nil {
		return nil, translate(err, "id", id)
	}

	log.Info().Str("book_id", id.String()).Str("title", returned.Title).Msg("Book returned")

	return returned.ToResponse(), nil
}

func (s *bookService) find(ctx context.Context, filter model.BookFilter) ([]*model.BookResponse, error) {
	books, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, apperror.Unexpected(err)
	}
	return model.ToResponses(books), nil
}

func (s *bookService) ensureISBNFree(ctx context.Context, isbn string, except uuid.UUID) error {
	exists, err := s.repo.ExistsByISBN(ctx, isbn, except)
	if err != nil {
		return apperror.Unexpected(err)
	}
	if exists {
		return duplicateISBN(isbn)
	}
	return nil
}

func (s *bookService) ensureAuthor(ctx context.Context, id uuid.UUID) error {
	exists, err := s.authors.ExistsByID(ctx, id)
	if err != nil {
		return apperror.Unexpected(err)
	}
	if !exists {
		return apperror.NotFound("Author", "id", id)
	}
	return nil
}

// writeError maps store constraint violations on insert/update. They are
// the authoritative signal when a concurrent request slipped past a check.
func (s *bookService) writeError(err error, req *model.BookRequest) error {
	switch {
	case errors.Is(err, model.ErrDuplicateISBN):
		return duplicateISBN(req.ISBN).Wrap(err)
	case errors.Is(err, model.ErrAuthorNotFound):
		return apperror.NotFound("Author", "id", req.AuthorUUID()).Wrap(err)
	default:
		return apperror.Unexpected(err)
	}
}

func duplicateISBN(isbn string) *apperror.Error {
	return apperror.Conflict("book with ISBN '%s' already exists", isbn).
		WithDetail("isbn", isbn)
}

func notAvailable(current model.BookStatus) *apperror.Error {
	return apperror.Conflict("book is not available for borrowing, current status = %s", model.StatusDescription(current)).
		WithDetail("status", current)
}

func translate(err error, field string, key any) error {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		return apperror.NotFound(model.EntityName, field, key).Wrap(err)
	default:
		return apperror.Unexpected(err)
	}
}
