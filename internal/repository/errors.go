package repository

import (
	"errors"

	"github.com/lib/pq"
)

// Sentinel errors returned by the repositories. Handlers map them to
// status codes with errors.Is, so repositories must return them unwrapped
// or wrapped with %w.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrDuplicateEmail    = errors.New("email is already taken")
	ErrDuplicateUsername = errors.New("username is already taken")
	ErrAlreadyFollowing  = errors.New("already following this user")
	ErrNoSuchRequest     = errors.New("no pending follow request from this user")
	ErrAlreadyLiked      = errors.New("post is already liked")
	ErrNotLiked          = errors.New("post is not liked")
)

// uniqueViolation reports whether err is a Postgres unique constraint
// violation (SQLSTATE 23505) and, if so, which constraint was hit.
func uniqueViolation(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return pqErr.Constraint, true
	}
	return "", false
}
