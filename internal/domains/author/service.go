package author

import (
	"context"
	"time"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_service.go -package=mocks

// Service enforces the author invariants before delegating to the Repository.
type Service interface {
	// Create stores a new author. Field constraints are the caller's job (see AuthorRequest.Validate).
	Create(ctx context.Context, name string, birthdate time.Time) (Author, error)

	// Update replaces an existing author.
	// Errors: shared.DomainError of kind NOT_FOUND_OR_INVALID when id is unknown.
	Update(ctx context.Context, id int64, name string, birthdate time.Time) (Author, error)
}
