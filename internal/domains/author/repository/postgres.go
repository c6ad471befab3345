package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/database"
)

// postgresRepository implements RepositoryInterface on pgx.
// Static statements are plain SQL; the aggregate reads are built with goqu.
type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository creates a new author repository instance
func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

var dialect = goqu.Dialect("postgres")

const authorColumns = `id, first_name, last_name, email, age, created_at, updated_at`

// withCount selects every author column plus the number of books it owns.
func withCount() *goqu.SelectDataset {
	return dialect.From(goqu.T("authors").As("a")).
		Prepared(true).
		Select(
			goqu.I("a.id"),
			goqu.I("a.first_name"),
			goqu.I("a.last_name"),
			goqu.I("a.email"),
			goqu.I("a.age"),
			goqu.I("a.created_at"),
			goqu.I("a.updated_at"),
			goqu.COUNT(goqu.I("b.id")).As("book_count"),
		).
		LeftJoin(goqu.T("books").As("b"), goqu.On(goqu.I("b.author_id").Eq(goqu.I("a.id")))).
		GroupBy(goqu.I("a.id")).
		Order(goqu.I("a.last_name").Asc(), goqu.I("a.first_name").Asc())
}

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Age, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAuthorWithCount(row pgx.Row) (*model.AuthorWithCount, error) {
	var a model.AuthorWithCount
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &a.Email, &a.Age, &a.CreatedAt, &a.UpdatedAt,
		&a.BookCount,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) queryOne(ctx context.Context, ds *goqu.SelectDataset) (*model.AuthorWithCount, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	a, err := scanAuthorWithCount(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("query author: %w", err)
	}
	return a, nil
}

func (r *postgresRepository) queryMany(ctx context.Context, ds *goqu.SelectDataset) ([]model.AuthorWithCount, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query authors: %w", err)
	}
	defer rows.Close()

	authors := make([]model.AuthorWithCount, 0)
	for rows.Next() {
		a, err := scanAuthorWithCount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.AuthorWithCount, error) {
	return r.queryMany(ctx, withCount())
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithCount, error) {
	return r.queryOne(ctx, withCount().Where(goqu.I("a.id").Eq(id)))
}

func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*model.AuthorWithCount, error) {
	return r.queryOne(ctx, withCount().Where(goqu.I("a.email").Eq(email)))
}

// SearchByName matches the fragment anywhere in the first or last name,
// ignoring case. Wildcards in the fragment match literally.
func (r *postgresRepository) SearchByName(ctx context.Context, fragment string) ([]model.AuthorWithCount, error) {
	pattern := utils.ContainsPattern(fragment)
	return r.queryMany(ctx, withCount().Where(goqu.Or(
		goqu.I("a.first_name").ILike(pattern),
		goqu.I("a.last_name").ILike(pattern),
	)))
}

func (r *postgresRepository) FindWithMinimumBooks(ctx context.Context, minBooks int) ([]model.AuthorWithCount, error) {
	return r.queryMany(ctx, withCount().Having(goqu.COUNT(goqu.I("b.id")).Gte(minBooks)))
}

// Create inserts a new author; the store assigns id and timestamps.
func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (first_name, last_name, email, age)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.db.QueryRow(ctx, query, a.FirstName, a.LastName, a.Email, a.Age))
	if err != nil {
		if database.IsUniqueViolation(err, model.ConstraintEmailUnique) {
			return nil, model.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert author: %w", err)
	}

	return created, nil
}

// Update overwrites every editable column of the author with a.ID.
func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET first_name = $1,
            last_name = $2,
            email = $3,
            age = $4,
            updated_at = NOW()
        WHERE id = $5
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.db.QueryRow(ctx, query, a.FirstName, a.LastName, a.Email, a.Age, a.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		if database.IsUniqueViolation(err, model.ConstraintEmailUnique) {
			return nil, model.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update author: %w", err)
	}

	return updated, nil
}

// Delete removes the author. Books still referencing it make the store
// reject the statement, reported as ErrAuthorHasBooks.
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err, model.ConstraintBooksAuthor) {
			return model.ErrAuthorHasBooks
		}
		return fmt.Errorf("delete author: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrAuthorNotFound
	}

	return nil
}

func (r *postgresRepository) CountBooks(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books WHERE author_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check author exists: %w", err)
	}
	return exists, nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}
