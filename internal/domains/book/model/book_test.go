package model

import (
	"errors"
	"math"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookmanager/internal/shared"
)

func TestPublishedStatus_CanTransitionTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from, to PublishedStatus
		allowed  bool
	}{
		{from: StatusUnpublished, to: StatusPublished, allowed: true},
		{from: StatusPublished, to: StatusPublished, allowed: true},
		{from: StatusUnpublished, to: StatusUnpublished, allowed: true},
		{from: StatusPublished, to: StatusUnpublished, allowed: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPublishedStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPublished.IsValid())
	assert.True(t, StatusUnpublished.IsValid())
	assert.False(t, PublishedStatus("DRAFT").IsValid())
}

func TestNormalizeAuthorIDs_KeepsFirstOccurrence(t *testing.T) {
	assert.Equal(t, []int64{3, 1, 2}, NormalizeAuthorIDs([]int64{3, 1, 3, 2, 1}))
	assert.Empty(t, NormalizeAuthorIDs(nil))
}

func TestMissingAuthorIDs_PreservesRequestOrder(t *testing.T) {
	assert.Equal(t, []int64{99}, MissingAuthorIDs([]int64{1, 2, 99}, []int64{2, 1}))
	assert.Equal(t, []int64{99, 5}, MissingAuthorIDs([]int64{99, 1, 5}, []int64{1}))
	assert.Empty(t, MissingAuthorIDs([]int64{1, 2}, []int64{1, 2, 3}))
}

func TestSameAuthorSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []int64
		same bool
	}{
		{name: "identical", a: []int64{1, 2}, b: []int64{1, 2}, same: true},
		{name: "reordered", a: []int64{1, 2, 3}, b: []int64{3, 1, 2}, same: true},
		{name: "subset", a: []int64{1, 2}, b: []int64{1}, same: false},
		{name: "superset", a: []int64{1}, b: []int64{1, 99}, same: false},
		{name: "disjoint", a: []int64{1}, b: []int64{2}, same: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.same, SameAuthorSet(tt.a, tt.b))
		})
	}
}

func TestBusinessErrors(t *testing.T) {
	assert.EqualError(t, MissingAuthors([]int64{99}), "author does not exist: id=[99]")
	assert.EqualError(t, BookNotFound(123), "book does not exist: id=123")
	assert.ErrorIs(t, NoAuthors(), shared.ErrNotFoundOrInvalid)
	assert.ErrorIs(t, AuthorsVanished(), shared.ErrNotFoundOrInvalid)
	assert.ErrorIs(t, UnpublishForbidden(), shared.ErrIllegalTransition)
	assert.Equal(t, FieldPublishedStatus, UnpublishForbidden().Field)
}

func intPtr(v int) *int { return &v }

func TestBookRequest_Validate(t *testing.T) {
	t.Parallel()

	valid := BookRequest{Title: "Go in Action", Price: intPtr(1500), PublishedStatus: StatusPublished, AuthorIDs: []int64{1}}

	tests := []struct {
		name   string
		mutate func(r *BookRequest)
		field  string
		msg    string
	}{
		{name: "valid"},
		{name: "free book", mutate: func(r *BookRequest) { r.Price = intPtr(0) }},
		{name: "blank title", mutate: func(r *BookRequest) { r.Title = " " }, field: "title", msg: "must not be blank"},
		{name: "negative price", mutate: func(r *BookRequest) { r.Price = intPtr(-1) }, field: "price", msg: "must be greater than or equal to 0"},
		{name: "highest storable price", mutate: func(r *BookRequest) { r.Price = intPtr(math.MaxInt32) }},
		{name: "price beyond column range", mutate: func(r *BookRequest) { r.Price = intPtr(3_000_000_000) }, field: "price", msg: "must be less than or equal to 2147483647"},
		{name: "long multibyte title", mutate: func(r *BookRequest) { r.Title = strings.Repeat("本", 400) }},
		{name: "missing price", mutate: func(r *BookRequest) { r.Price = nil }, field: "price", msg: "price is required"},
		{name: "unknown status", mutate: func(r *BookRequest) { r.PublishedStatus = "DRAFT" }, field: "published_status", msg: "must be UNPUBLISHED or PUBLISHED"},
		{name: "missing status", mutate: func(r *BookRequest) { r.PublishedStatus = "" }, field: "published_status", msg: "published status is required"},
		{name: "no authors", mutate: func(r *BookRequest) { r.AuthorIDs = []int64{} }, field: "author_ids", msg: "at least one author is required"},
		{name: "negative author id", mutate: func(r *BookRequest) { r.AuthorIDs = []int64{1, -4} }, field: "author_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := valid
			req.AuthorIDs = append([]int64(nil), valid.AuthorIDs...)
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			err := req.Validate()
			if tt.field == "" {
				require.NoError(t, err)
				return
			}

			var errs validation.Errors
			require.True(t, errors.As(err, &errs))
			require.Contains(t, errs, tt.field)
			if tt.msg != "" {
				assert.Equal(t, tt.msg, errs[tt.field].Error())
			}
		})
	}
}

func TestBookRequest_ToInput(t *testing.T) {
	in := BookRequest{Title: " Go ", Price: intPtr(10), PublishedStatus: StatusUnpublished, AuthorIDs: []int64{2, 1}}.ToInput()

	assert.Equal(t, BookInput{Title: "Go", Price: 10, PublishedStatus: StatusUnpublished, AuthorIDs: []int64{2, 1}}, in)
}

func TestBook_ToResponseNeverEmitsNullAuthors(t *testing.T) {
	assert.Equal(t, []int64{}, Book{ID: 1}.ToResponse().AuthorIDs)
	assert.Empty(t, ToResponses(nil))
	assert.NotNil(t, ToResponses(nil))
}
