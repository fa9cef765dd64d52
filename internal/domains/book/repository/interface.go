package repository

import (
	"context"

	"bookmanager/internal/domains/book/model"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_repository.go -package=mocks

// RepositoryInterface is the persistence contract for books and the book<->author association.
// Every returned Book carries its full author id set, ordered as it was written.
type RepositoryInterface interface {
	// FindByID returns model.ErrBookNotFound when absent.
	FindByID(ctx context.Context, id int64) (model.Book, error)

	// FindByIDForUpdate is FindByID plus a row lock held until the surrounding
	// transaction ends. Outside a transaction the lock is released immediately.
	FindByIDForUpdate(ctx context.Context, id int64) (model.Book, error)

	// Insert writes the book row and every association row atomically and assigns the id.
	Insert(ctx context.Context, in model.BookInput) (model.Book, error)

	// Update atomically overwrites the row and replaces the whole association set.
	// Returns model.ErrBookNotFound if no row has this id.
	Update(ctx context.Context, id int64, in model.BookInput) (model.Book, error)

	// FindBooksByAuthorID returns every book the author is linked to, ordered by id.
	// Unknown authors simply yield an empty slice.
	FindBooksByAuthorID(ctx context.Context, authorID int64) ([]model.Book, error)
}
