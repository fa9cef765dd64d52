package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookmanager/internal/domains/author"
	"bookmanager/internal/domains/author/mocks"
	"bookmanager/internal/shared"
)

// inlineTx runs fn directly; transaction semantics are covered in pkg/database.
type inlineTx struct{ calls int }

func (t *inlineTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var janeBirthdate = time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)

func initAuthorTest(t *testing.T) (*mocks.MockRepository, *inlineTx, author.Service) {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockRepository(ctrl)
	tx := &inlineTx{}
	return repo, tx, NewAuthorService(repo, tx)
}

func TestCreate_DelegatesToRepository(t *testing.T) {
	t.Parallel()
	repo, _, svc := initAuthorTest(t)
	ctx := context.Background()

	want := author.Author{ID: 1, Name: "Jane Doe", Birthdate: janeBirthdate}
	repo.EXPECT().Insert(ctx, "Jane Doe", janeBirthdate).Return(want, nil)

	got, err := svc.Create(ctx, "Jane Doe", janeBirthdate)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestCreate_StoreFailureIsOpaque(t *testing.T) {
	t.Parallel()
	repo, _, svc := initAuthorTest(t)
	boom := errors.New("db down")

	repo.EXPECT().Insert(gomock.Any(), gomock.Any(), gomock.Any()).Return(author.Author{}, boom)

	_, err := svc.Create(context.Background(), "Jane Doe", janeBirthdate)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, shared.ErrNotFoundOrInvalid)
}

func TestUpdate_Success(t *testing.T) {
	t.Parallel()
	repo, tx, svc := initAuthorTest(t)
	ctx := context.Background()

	current := author.Author{ID: 3, Name: "Old", Birthdate: janeBirthdate}
	want := author.Author{ID: 3, Name: "New", Birthdate: janeBirthdate}

	gomock.InOrder(
		repo.EXPECT().FindByID(ctx, int64(3)).Return(current, nil),
		repo.EXPECT().Update(ctx, int64(3), "New", janeBirthdate).Return(want, nil),
	)

	got, err := svc.Update(ctx, 3, "New", janeBirthdate)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, tx.calls)
}

func TestUpdate_UnknownAuthorPerformsNoWrite(t *testing.T) {
	t.Parallel()

	for _, id := range []int64{2, 99, 123456} {
		repo, _, svc := initAuthorTest(t)

		repo.EXPECT().FindByID(gomock.Any(), id).Return(author.Author{}, author.ErrAuthorNotFound)
		repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		_, err := svc.Update(context.Background(), id, "Name", janeBirthdate)
		require.ErrorIs(t, err, shared.ErrNotFoundOrInvalid)

		var de *shared.DomainError
		require.True(t, errors.As(err, &de))
		assert.Equal(t, []int64{id}, de.IDs)
		assert.Equal(t, "id", de.Field)
	}
}

func TestUpdate_RowVanishedBeforeWrite(t *testing.T) {
	t.Parallel()
	repo, _, svc := initAuthorTest(t)

	repo.EXPECT().FindByID(gomock.Any(), int64(4)).Return(author.Author{ID: 4}, nil)
	repo.EXPECT().Update(gomock.Any(), int64(4), "X", janeBirthdate).Return(author.Author{}, author.ErrAuthorNotFound)

	_, err := svc.Update(context.Background(), 4, "X", janeBirthdate)
	assert.ErrorIs(t, err, shared.ErrNotFoundOrInvalid)
}

func TestUpdate_LookupFailureIsOpaque(t *testing.T) {
	t.Parallel()
	repo, _, svc := initAuthorTest(t)
	boom := errors.New("timeout")

	repo.EXPECT().FindByID(gomock.Any(), int64(5)).Return(author.Author{}, boom)

	_, err := svc.Update(context.Background(), 5, "X", janeBirthdate)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, shared.ErrNotFoundOrInvalid)
}
