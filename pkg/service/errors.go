package service

import "errors"

// ErrNotFound is returned when a referenced entity does not exist. The HTTP
// boundary maps it to a 404.
var ErrNotFound = errors.New("resource not found")

// IsNotFound checks if an error is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
