package model

import "github.com/samber/lo"

// PublishedStatus is the per-book publication state.
type PublishedStatus string

const (
	StatusUnpublished PublishedStatus = "UNPUBLISHED"
	StatusPublished   PublishedStatus = "PUBLISHED"
)

func (s PublishedStatus) IsValid() bool {
	return s == StatusUnpublished || s == StatusPublished
}

// CanTransitionTo reports whether an update may move a book from s to next.
// Publishing is one-way: PUBLISHED never goes back to UNPUBLISHED.
// Staying in the same state is always allowed.
func (s PublishedStatus) CanTransitionTo(next PublishedStatus) bool {
	return !(s == StatusPublished && next == StatusUnpublished)
}

// Book is an immutable snapshot of a stored book and its author set.
// AuthorIDs keeps the order the authors were supplied in.
type Book struct {
	ID              int64
	Title           string
	Price           int
	PublishedStatus PublishedStatus
	AuthorIDs       []int64
}

// BookInput is everything a create or a full-replace update supplies.
type BookInput struct {
	Title           string
	Price           int
	PublishedStatus PublishedStatus
	AuthorIDs       []int64
}

// ========================================
// AUTHOR ID SET HELPERS
// ========================================

// NormalizeAuthorIDs drops duplicates, keeping the first occurrence of each id.
func NormalizeAuthorIDs(ids []int64) []int64 {
	return lo.Uniq(ids)
}

// MissingAuthorIDs returns the requested ids absent from existing, in request order.
func MissingAuthorIDs(requested, existing []int64) []int64 {
	return lo.Without(requested, existing...)
}

// SameAuthorSet compares two id lists as unordered sets.
func SameAuthorSet(a, b []int64) bool {
	return lo.Every(a, b) && lo.Every(b, a)
}
