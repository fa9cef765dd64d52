package service

import (
	"context"

	"bookmanager/internal/domains/book/model"
)

//go:generate mockgen -source=interface.go -destination=mocks/mock_service.go -package=mocks

// AuthorStore is the slice of the author repository the book service reads
// to validate references. author.Repository satisfies it.
type AuthorStore interface {
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// ServiceInterface enforces the book invariants:
//   - every book references at least one existing author
//   - PUBLISHED never goes back to UNPUBLISHED
//   - updates replace the whole record and the whole author set
type ServiceInterface interface {
	CreateBook(ctx context.Context, in model.BookInput) (model.Book, error)
	UpdateBook(ctx context.Context, id int64, in model.BookInput) (model.Book, error)

	// ListByAuthor never fails for an unknown author; it returns an empty slice.
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)
}
