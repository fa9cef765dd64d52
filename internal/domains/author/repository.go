package author

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// Repository is the persistence contract for authors.
type Repository interface {
	// FindByID returns ErrAuthorNotFound when no author has this id.
	FindByID(ctx context.Context, id int64) (Author, error)

	// FindExistingIDs returns the subset of ids that exist, in no particular order.
	// An empty input returns an empty result without touching the database.
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)

	// Insert assigns the id.
	Insert(ctx context.Context, name string, birthdate time.Time) (Author, error)

	// Update overwrites name and birthdate and returns the stored row.
	// Returns ErrAuthorNotFound if the row vanished.
	Update(ctx context.Context, id int64, name string, birthdate time.Time) (Author, error)
}
