package service

import (
	"context"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmanager/internal/domains/book/model"
	"bookmanager/internal/shared"
)

// memStore backs both authors and books so sequences of operations can be
// checked against what a later read returns.
type memStore struct {
	mu      sync.Mutex
	authors map[int64]bool
	books   map[int64]model.Book
	nextID  int64
	writes  int
}

func newMemStore(authorIDs ...int64) *memStore {
	s := &memStore{authors: map[int64]bool{}, books: map[int64]model.Book{}}
	for _, id := range authorIDs {
		s.authors[id] = true
	}
	return s
}

func (s *memStore) FindExistingIDs(_ context.Context, ids []int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Filter(ids, func(id int64, _ int) bool { return s.authors[id] }), nil
}

func (s *memStore) FindByID(_ context.Context, id int64) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.books[id]
	if !ok {
		return model.Book{}, model.ErrBookNotFound
	}
	return b, nil
}

func (s *memStore) FindByIDForUpdate(ctx context.Context, id int64) (model.Book, error) {
	return s.FindByID(ctx, id)
}

func (s *memStore) Insert(_ context.Context, in model.BookInput) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.writes++
	b := model.Book{ID: s.nextID, Title: in.Title, Price: in.Price, PublishedStatus: in.PublishedStatus,
		AuthorIDs: append([]int64(nil), in.AuthorIDs...)}
	s.books[b.ID] = b
	return b, nil
}

func (s *memStore) Update(_ context.Context, id int64, in model.BookInput) (model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.books[id]; !ok {
		return model.Book{}, model.ErrBookNotFound
	}
	s.writes++
	b := model.Book{ID: id, Title: in.Title, Price: in.Price, PublishedStatus: in.PublishedStatus,
		AuthorIDs: append([]int64(nil), in.AuthorIDs...)}
	s.books[id] = b
	return b, nil
}

func (s *memStore) FindBooksByAuthorID(_ context.Context, authorID int64) ([]model.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Book
	for id := int64(1); id <= s.nextID; id++ {
		if b, ok := s.books[id]; ok && lo.Contains(b.AuthorIDs, authorID) {
			out = append(out, b)
		}
	}
	return out, nil
}

func newMemService(store *memStore) ServiceInterface {
	return NewService(store, store, &inlineTx{})
}

func TestStore_CreateThenReadRoundTrips(t *testing.T) {
	store := newMemStore(1, 2, 3)
	svc := newMemService(store)
	ctx := context.Background()

	inputs := []model.BookInput{
		{Title: "A", Price: 0, PublishedStatus: model.StatusUnpublished, AuthorIDs: []int64{1}},
		{Title: "B", Price: 2500, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{3, 1, 2}},
		{Title: "C", Price: 10, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{2, 2, 3}},
	}

	for _, in := range inputs {
		created, err := svc.CreateBook(ctx, in)
		require.NoError(t, err)

		read, err := store.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, read)
		assert.Equal(t, in.Title, read.Title)
		assert.Equal(t, in.Price, read.Price)
		assert.True(t, model.SameAuthorSet(in.AuthorIDs, read.AuthorIDs))
		assert.Len(t, read.AuthorIDs, len(lo.Uniq(in.AuthorIDs)))
	}
}

func TestStore_FailedOperationsLeaveStateUntouched(t *testing.T) {
	store := newMemStore(1, 2)
	svc := newMemService(store)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, model.BookInput{Title: "Go", Price: 1, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{1}})
	require.NoError(t, err)
	writes := store.writes

	_, err = svc.CreateBook(ctx, model.BookInput{Title: "X", AuthorIDs: []int64{1, 2, 99, 98}})
	var de *shared.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []int64{99, 98}, de.IDs)

	_, err = svc.UpdateBook(ctx, book.ID, model.BookInput{Title: "Go", Price: 1, PublishedStatus: model.StatusUnpublished, AuthorIDs: []int64{1, 2}})
	assert.ErrorIs(t, err, shared.ErrIllegalTransition)

	_, err = svc.UpdateBook(ctx, book.ID, model.BookInput{Title: "Go", Price: 1, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{1, 99}})
	assert.ErrorIs(t, err, shared.ErrNotFoundOrInvalid)

	assert.Equal(t, writes, store.writes)
	read, err := store.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, book, read)
}

func TestStore_UpdateReplacesAuthorSetAndListFollows(t *testing.T) {
	store := newMemStore(1, 2, 3)
	svc := newMemService(store)
	ctx := context.Background()

	book, err := svc.CreateBook(ctx, model.BookInput{Title: "Go", PublishedStatus: model.StatusUnpublished, AuthorIDs: []int64{1, 2}})
	require.NoError(t, err)

	_, err = svc.UpdateBook(ctx, book.ID, model.BookInput{Title: "Go 2", Price: 5, PublishedStatus: model.StatusPublished, AuthorIDs: []int64{3}})
	require.NoError(t, err)

	byOne, err := svc.ListByAuthor(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, byOne)

	byThree, err := svc.ListByAuthor(ctx, 3)
	require.NoError(t, err)
	require.Len(t, byThree, 1)
	assert.Equal(t, "Go 2", byThree[0].Title)
	assert.Equal(t, model.StatusPublished, byThree[0].PublishedStatus)
}
