package domain

import "errors"

// ErrQuestionNotFound indicates that an update or delete targeted an id that
// is not present in the repository.
var ErrQuestionNotFound = errors.New("question not found")
