package author

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookmanager/internal/shared/utils"
)

// ========================================
// REQUEST DTOs
// ========================================

// AuthorRequest is the body of both POST /authors and PUT /authors/:id.
// Updates replace every field; there is no partial patch.
type AuthorRequest struct {
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
}

func (r AuthorRequest) Validate() error {
	return r.validateAt(time.Now())
}

func (r AuthorRequest) validateAt(now time.Time) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("must not be blank"),
			utils.NotBlank,
		),
		validation.Field(&r.Birthdate,
			validation.Required.Error("birthdate is required"),
			validation.Date(utils.DateLayout).Error("must be a date in YYYY-MM-DD format"),
			utils.DateBefore(now),
		),
	)
}

// Normalized returns the trimmed name and parsed birthdate.
// Call only after Validate succeeded.
func (r AuthorRequest) Normalized() (string, time.Time) {
	birthdate, _ := time.Parse(utils.DateLayout, r.Birthdate)
	return strings.TrimSpace(r.Name), birthdate
}

// ========================================
// RESPONSE DTOs
// ========================================

type AuthorResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Birthdate string `json:"birthdate"`
}

func (a Author) ToResponse() AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Birthdate: a.Birthdate.Format(utils.DateLayout),
	}
}
