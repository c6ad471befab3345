package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"catalog-backend/internal/domains/book/model"
	"catalog-backend/internal/shared/utils"
	"catalog-backend/pkg/database"
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) RepositoryInterface {
	return &postgresRepository{db: db}
}

var dialect = goqu.Dialect("postgres")

// joinedColumns is the column list of the read projection over books b
// joined with authors a. Keep it in step with selectBooks and scanBook.
const joinedColumns = `b.id, b.title, b.isbn, b.category, b.status, b.price, b.page_count,
        b.publication_date, b.author_id, b.created_at, b.updated_at,
        CONCAT_WS(' ', a.first_name, a.last_name) AS author_name`

func selectBooks() *goqu.SelectDataset {
	return dialect.From(goqu.T("books").As("b")).
		Prepared(true).
		Select(
			goqu.I("b.id"),
			goqu.I("b.title"),
			goqu.I("b.isbn"),
			goqu.I("b.category"),
			goqu.I("b.status"),
			goqu.I("b.price"),
			goqu.I("b.page_count"),
			goqu.I("b.publication_date"),
			goqu.I("b.author_id"),
			goqu.I("b.created_at"),
			goqu.I("b.updated_at"),
			goqu.L(`CONCAT_WS(' ', "a"."first_name", "a"."last_name")`).As("author_name"),
		).
		InnerJoin(goqu.T("authors").As("a"), goqu.On(goqu.I("a.id").Eq(goqu.I("b.author_id")))).
		Order(goqu.I("b.title").Asc(), goqu.I("b.isbn").Asc())
}

// filtered applies every non-zero field of f.
func filtered(f model.BookFilter) *goqu.SelectDataset {
	ds := selectBooks()
	if f.Category != "" {
		ds = ds.Where(goqu.I("b.category").Eq(string(f.Category)))
	}
	if f.Status != "" {
		ds = ds.Where(goqu.I("b.status").Eq(string(f.Status)))
	}
	if f.AuthorID != uuid.Nil {
		ds = ds.Where(goqu.I("b.author_id").Eq(f.AuthorID))
	}
	if f.Title != "" {
		ds = ds.Where(goqu.I("b.title").ILike(utils.ContainsPattern(f.Title)))
	}
	return ds
}

func scanBook(row pgx.Row) (*model.BookWithAuthor, error) {
	var b model.BookWithAuthor
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.ISBN,
		&b.Category,
		&b.Status,
		&b.Price,
		&b.PageCount,
		&b.PublicationDate,
		&b.AuthorID,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func queryOne(ctx context.Context, q database.Querier, ds *goqu.SelectDataset) (*model.BookWithAuthor, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	b, err := scanBook(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("query book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) Find(ctx context.Context, filter model.BookFilter) ([]model.BookWithAuthor, error) {
	query, args, err := filtered(filter).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := make([]model.BookWithAuthor, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error) {
	return queryOne(ctx, r.db, selectBooks().Where(goqu.I("b.id").Eq(id)))
}

func (r *postgresRepository) FindByISBN(ctx context.Context, isbn string) (*model.BookWithAuthor, error) {
	return queryOne(ctx, r.db, selectBooks().Where(goqu.I("b.isbn").Eq(isbn)))
}

// ExistsByISBN reports whether a book other than excludeID has isbn.
// Pass uuid.Nil to check every book.
func (r *postgresRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM books WHERE isbn = $1 AND id <> $2)`,
		isbn, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check isbn exists: %w", err)
	}
	return exists, nil
}

// Create inserts the book and reads back its projection in one transaction.
func (r *postgresRepository) Create(ctx context.Context, b *model.Book) (*model.BookWithAuthor, error) {
	query := `
        INSERT INTO books (title, isbn, category, status, price, page_count, publication_date, author_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id`

	created, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.BookWithAuthor, error) {
		var id uuid.UUID
		err := tx.QueryRow(ctx, query,
			b.Title, b.ISBN, b.Category, b.Status, b.Price, b.PageCount, b.PublicationDate, b.AuthorID,
		).Scan(&id)
		if err != nil {
			return nil, err
		}
		return queryOne(ctx, tx, selectBooks().Where(goqu.I("b.id").Eq(id)))
	})
	if err != nil {
		return nil, writeError("insert book", err)
	}

	return created, nil
}

// Update overwrites every editable column of the book with b.ID.
func (r *postgresRepository) Update(ctx context.Context, b *model.Book) (*model.BookWithAuthor, error) {
	query := `
        UPDATE books
        SET title = $1,
            isbn = $2,
            category = $3,
            status = $4,
            price = $5,
            page_count = $6,
            publication_date = $7,
            author_id = $8,
            updated_at = NOW()
        WHERE id = $9`

	updated, err := database.WithTransactionResult(ctx, r.db, func(tx pgx.Tx) (*model.BookWithAuthor, error) {
		tag, err := tx.Exec(ctx, query,
			b.Title, b.ISBN, b.Category, b.Status, b.Price, b.PageCount, b.PublicationDate, b.AuthorID, b.ID,
		)
		if err != nil {
			return nil, err
		}
		if tag.RowsAffected() == 0 {
			return nil, model.ErrBookNotFound
		}
		return queryOne(ctx, tx, selectBooks().Where(goqu.I("b.id").Eq(b.ID)))
	})
	if err != nil {
		return nil, writeError("update book", err)
	}

	return updated, nil
}

// UpdateStatus sets the status unconditionally.
func (r *postgresRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookStatus) (*model.BookWithAuthor, error) {
	query := `
        WITH updated AS (
            UPDATE books SET status = $2, updated_at = NOW()
            WHERE id = $1
            RETURNING *
        )
        SELECT ` + joinedColumns + `
        FROM updated b
        JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.db.QueryRow(ctx, query, id, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book status: %w", err)
	}
	return b, nil
}

// Borrow moves an AVAILABLE book to BORROWED in a single conditional
// statement. ErrBookNotAvailable means the book exists in another status or
// does not exist at all; callers look it up first.
func (r *postgresRepository) Borrow(ctx context.Context, id uuid.UUID) (*model.BookWithAuthor, error) {
	query := `
        WITH updated AS (
            UPDATE books SET status = $2, updated_at = NOW()
            WHERE id = $1 AND status = $3
            RETURNING *
        )
        SELECT ` + joinedColumns + `
        FROM updated b
        JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.db.QueryRow(ctx, query, id, model.StatusBorrowed, model.StatusAvailable))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrBookNotAvailable
		}
		return nil, fmt.Errorf("borrow book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}

	return nil
}

// writeError maps constraint violations raised by insert/update statements.
func writeError(op string, err error) error {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		return err
	case database.IsUniqueViolation(err, model.ConstraintISBNUnique):
		return model.ErrDuplicateISBN
	case database.IsForeignKeyViolation(err, model.ConstraintAuthorFK):
		return model.ErrAuthorNotFound
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
