package model

import (
	"errors"

	"bookmanager/internal/shared"
)

// ErrBookNotFound is returned by the repository when no book has the requested id.
var ErrBookNotFound = errors.New("book not found")

// Names used in user-facing messages and error details.
const (
	EntityBook   = "book"
	EntityAuthor = "author"

	FieldID              = "id"
	FieldAuthorIDs       = "author_ids"
	FieldPublishedStatus = "published_status"
)

// ========================================
// BUSINESS ERRORS
// ========================================

func BookNotFound(id int64) *shared.DomainError {
	return shared.NotFound(FieldID, EntityBook, id)
}

// MissingAuthors names exactly the ids the store does not know, in request order.
func MissingAuthors(ids []int64) *shared.DomainError {
	return shared.MissingReferences(FieldAuthorIDs, EntityAuthor, ids)
}

func NoAuthors() *shared.DomainError {
	return shared.InvalidReference(FieldAuthorIDs, "book must have at least one author")
}

// AuthorsVanished covers a foreign-key violation at write time:
// an author passed the existence check and was gone by the insert.
func AuthorsVanished() *shared.DomainError {
	return shared.InvalidReference(FieldAuthorIDs, "one or more authors no longer exist")
}

func UnpublishForbidden() *shared.DomainError {
	return shared.IllegalTransition(FieldPublishedStatus, "published book cannot be changed to unpublished")
}
