package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog-backend/internal/domains/author/model"
	"catalog-backend/internal/shared/apperror"
)

// fakeRepo is an in-memory RepositoryInterface. bookCounts stands in for the
// books table. The before* hooks run ahead of a write to simulate a
// concurrent request.
type fakeRepo struct {
	authors    map[uuid.UUID]model.Author
	bookCounts map[uuid.UUID]int
	failWith   error

	beforeCreate func()
	beforeDelete func(id uuid.UUID)
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		authors:    make(map[uuid.UUID]model.Author),
		bookCounts: make(map[uuid.UUID]int),
	}
}

func (f *fakeRepo) withCount(a model.Author) model.AuthorWithCount {
	return model.AuthorWithCount{Author: a, BookCount: f.bookCounts[a.ID]}
}

func (f *fakeRepo) filter(keep func(model.AuthorWithCount) bool) ([]model.AuthorWithCount, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]model.AuthorWithCount, 0)
	for _, a := range f.authors {
		if awc := f.withCount(a); keep(awc) {
			out = append(out, awc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]model.AuthorWithCount, error) {
	return f.filter(func(model.AuthorWithCount) bool { return true })
}

func (f *fakeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.AuthorWithCount, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	a, ok := f.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	awc := f.withCount(a)
	return &awc, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*model.AuthorWithCount, error) {
	found, _ := f.filter(func(a model.AuthorWithCount) bool { return a.Email != nil && *a.Email == email })
	if len(found) == 0 {
		return nil, model.ErrAuthorNotFound
	}
	return &found[0], nil
}

func (f *fakeRepo) SearchByName(ctx context.Context, fragment string) ([]model.AuthorWithCount, error) {
	fragment = strings.ToLower(fragment)
	return f.filter(func(a model.AuthorWithCount) bool {
		return strings.Contains(strings.ToLower(a.FirstName), fragment) ||
			strings.Contains(strings.ToLower(a.LastName), fragment)
	})
}

func (f *fakeRepo) FindWithMinimumBooks(ctx context.Context, minBooks int) ([]model.AuthorWithCount, error) {
	return f.filter(func(a model.AuthorWithCount) bool { return a.BookCount >= minBooks })
}

func (f *fakeRepo) emailTaken(email *string, except uuid.UUID) bool {
	if email == nil {
		return false
	}
	for id, a := range f.authors {
		if id != except && a.Email != nil && *a.Email == *email {
			return true
		}
	}
	return false
}

func (f *fakeRepo) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	if f.beforeCreate != nil {
		f.beforeCreate()
	}
	if f.emailTaken(a.Email, uuid.Nil) {
		return nil, model.ErrDuplicateEmail
	}
	created := *a
	created.ID = uuid.New()
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.authors[created.ID] = created
	return &created, nil
}

func (f *fakeRepo) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	if _, ok := f.authors[a.ID]; !ok {
		return nil, model.ErrAuthorNotFound
	}
	if f.emailTaken(a.Email, a.ID) {
		return nil, model.ErrDuplicateEmail
	}
	updated := *a
	updated.UpdatedAt = time.Now()
	f.authors[a.ID] = updated
	return &updated, nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.beforeDelete != nil {
		f.beforeDelete(id)
	}
	if _, ok := f.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	if f.bookCounts[id] > 0 {
		return model.ErrAuthorHasBooks
	}
	delete(f.authors, id)
	return nil
}

func (f *fakeRepo) CountBooks(ctx context.Context, id uuid.UUID) (int, error) {
	return f.bookCounts[id], nil
}

func (f *fakeRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := f.authors[id]
	return ok, nil
}

func (f *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return f.emailTaken(&email, uuid.Nil), nil
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func adaRequest() *model.AuthorRequest {
	return &model.AuthorRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     strPtr("ada@example.com"),
		Age:       intPtr(36),
	}
}

func TestCreate_RoundTrip(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, 0, created.BookCount)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, "ada@example.com", *got.Email)
	assert.Equal(t, 36, *got.Age)
}

func TestCreate_DuplicateEmail(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)

	_, err = svc.Create(ctx, adaRequest())
	require.Error(t, err)
	assert.True(t, apperror.Is(err, apperror.KindConflict))
	assert.Contains(t, err.Error(), "ada@example.com")
}

func TestCreate_BlankEmailIsNoEmail(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		req := adaRequest()
		req.Email = strPtr("  ")
		created, err := svc.Create(ctx, req)
		require.NoError(t, err)
		assert.Nil(t, created.Email)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	id := uuid.New()

	_, err := svc.GetByID(context.Background(), id)
	require.Error(t, err)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindNotFound, appErr.Kind)
	assert.Equal(t, "Author not found with id = '"+id.String()+"'", appErr.Message)
}

func TestGetByEmail(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)

	got, err := svc.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Lovelace", got.LastName)

	_, err = svc.GetByEmail(ctx, "nobody@example.com")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdate(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)
	repo.bookCounts[created.ID] = 2

	req := &model.AuthorRequest{FirstName: "Augusta", LastName: "King"}
	updated, err := svc.Update(ctx, created.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Augusta King", updated.FullName)
	assert.Nil(t, updated.Email, "full overwrite clears email")
	assert.Nil(t, updated.Age)
	assert.Equal(t, 2, updated.BookCount)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())

	_, err := svc.Update(context.Background(), uuid.New(), adaRequest())
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}

func TestUpdate_EmailTakenByAnother(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)

	other, err := svc.Create(ctx, &model.AuthorRequest{FirstName: "Alan", LastName: "Turing"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, other.ID, &model.AuthorRequest{
		FirstName: "Alan",
		LastName:  "Turing",
		Email:     strPtr("ada@example.com"),
	})
	assert.True(t, apperror.Is(err, apperror.KindConflict))
}

func TestDelete(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)

	t.Run("owns one book", func(t *testing.T) {
		repo.bookCounts[created.ID] = 1

		err := svc.Delete(ctx, created.ID)
		require.Error(t, err)

		appErr, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindConflict, appErr.Kind)
		assert.Equal(t, 1, appErr.Details["book_count"])
	})

	t.Run("owns no books", func(t *testing.T) {
		repo.bookCounts[created.ID] = 0

		require.NoError(t, svc.Delete(ctx, created.ID))

		_, err := svc.GetByID(ctx, created.ID)
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})

	t.Run("missing", func(t *testing.T) {
		err := svc.Delete(ctx, uuid.New())
		assert.True(t, apperror.Is(err, apperror.KindNotFound))
	})
}

func TestSearchByName(t *testing.T) {
	svc := NewAuthorService(newFakeRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.AuthorRequest{FirstName: "Alan", LastName: "Turing"})
	require.NoError(t, err)

	found, err := svc.SearchByName(ctx, "LOVE")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Lovelace", found[0].LastName)

	found, err = svc.SearchByName(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestGetWithMinimumBooks(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	ctx := context.Background()

	ada, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, &model.AuthorRequest{FirstName: "Alan", LastName: "Turing"})
	require.NoError(t, err)
	repo.bookCounts[ada.ID] = 3

	found, err := svc.GetWithMinimumBooks(ctx, 1)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, ada.ID, found[0].ID)

	found, err = svc.GetWithMinimumBooks(ctx, -5)
	require.NoError(t, err)
	assert.Len(t, found, 2, "negative threshold behaves as zero")
}

func TestStoreFailureIsUnexpected(t *testing.T) {
	repo := newFakeRepo()
	repo.failWith = errors.New("connection reset")
	svc := NewAuthorService(repo)

	_, err := svc.GetAll(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindUnexpected))
}

func TestCreate_EmailTakenConcurrently(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	repo.beforeCreate = func() {
		id := uuid.New()
		repo.authors[id] = model.Author{FirstName: "Augusta", LastName: "King", Email: strPtr("ada@example.com")}
		repo.beforeCreate = nil
	}

	_, err := svc.Create(context.Background(), adaRequest())

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, "ada@example.com", appErr.Details["email"])
	assert.ErrorIs(t, err, model.ErrDuplicateEmail)
}

func TestDelete_BookAddedConcurrently(t *testing.T) {
	repo := newFakeRepo()
	svc := NewAuthorService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, adaRequest())
	require.NoError(t, err)
	repo.beforeDelete = func(id uuid.UUID) { repo.bookCounts[id] = 2 }

	err = svc.Delete(ctx, created.ID)

	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, 2, appErr.Details["book_count"])
	assert.ErrorIs(t, err, model.ErrAuthorHasBooks)

	_, err = svc.GetByID(ctx, created.ID)
	assert.NoError(t, err, "author is kept")
}
