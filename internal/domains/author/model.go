package author

import "time"

// Author is an immutable snapshot of a stored author.
// Every repository call returns a fresh value; callers never mutate one in place.
type Author struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Birthdate time.Time `json:"birthdate"`
}
