package author

import "errors"

// ErrAuthorNotFound is the repository's way of saying "absent".
// The service layer turns it into a shared.DomainError carrying the id.
var ErrAuthorNotFound = errors.New("author not found")

// EntityName is used in user-facing messages ("author does not exist: ...").
const EntityName = "author"
