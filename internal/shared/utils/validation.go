package utils

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// NotBlank rejects strings made only of whitespace.
// Combine with validation.Required, which already rejects "".
var NotBlank = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if s != "" && strings.TrimSpace(s) == "" {
		return errors.New("must not be blank")
	}
	return nil
})

// DateBefore accepts a DateLayout string whose day lies strictly before now's day.
// Unparsable input passes so that validation.Date can report it.
func DateBefore(now time.Time) validation.Rule {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil
		}
		if !d.Before(today) {
			return errors.New("must be a date in the past")
		}
		return nil
	})
}
