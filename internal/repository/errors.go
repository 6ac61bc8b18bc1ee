// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current account is not
// authorized to modify a listing it does not author, while
// ErrConflict signals conflicting state such as a unique-constraint
// collision on registration.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own and they are not an admin. Handlers
// should translate this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an insert or update collides with
// existing state. Handlers should translate this into an HTTP 409
// response.
var ErrConflict = errors.New("conflict")
