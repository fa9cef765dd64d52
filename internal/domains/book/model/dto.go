package model

import (
	"math"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookmanager/internal/shared/utils"
)

// ========================================
// REQUEST DTOs
// ========================================

// BookRequest is the body of POST /books and PUT /books/:id (full replace).
// Price is a pointer so that a missing price is distinguishable from 0.
// Its range is the books.price INTEGER column.
type BookRequest struct {
	Title           string          `json:"title"`
	Price           *int            `json:"price"`
	PublishedStatus PublishedStatus `json:"published_status"`
	AuthorIDs       []int64         `json:"author_ids"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("must not be blank"),
			utils.NotBlank,
		),
		validation.Field(&r.Price,
			validation.NotNil.Error("price is required"),
			validation.Min(0).Error("must be greater than or equal to 0"),
			validation.Max(math.MaxInt32).Error("must be less than or equal to 2147483647"),
		),
		validation.Field(&r.PublishedStatus,
			validation.Required.Error("published status is required"),
			validation.In(StatusUnpublished, StatusPublished).Error("must be UNPUBLISHED or PUBLISHED"),
		),
		validation.Field(&r.AuthorIDs,
			validation.Required.Error("at least one author is required"),
			validation.Each(validation.Min(int64(1)).Error("author id must be positive")),
		),
	)
}

// ToInput converts a validated request into the service input.
func (r BookRequest) ToInput() BookInput {
	in := BookInput{
		Title:           strings.TrimSpace(r.Title),
		PublishedStatus: r.PublishedStatus,
		AuthorIDs:       r.AuthorIDs,
	}
	if r.Price != nil {
		in.Price = *r.Price
	}
	return in
}

// ========================================
// RESPONSE DTOs
// ========================================

type BookResponse struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Price           int             `json:"price"`
	PublishedStatus PublishedStatus `json:"published_status"`
	AuthorIDs       []int64         `json:"author_ids"`
}

func (b Book) ToResponse() BookResponse {
	authorIDs := b.AuthorIDs
	if authorIDs == nil {
		authorIDs = []int64{}
	}
	return BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Price:           b.Price,
		PublishedStatus: b.PublishedStatus,
		AuthorIDs:       authorIDs,
	}
}

func ToResponses(books []Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, b.ToResponse())
	}
	return out
}
