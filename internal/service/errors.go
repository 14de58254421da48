package service

import "errors"

var (
	ErrSelfFollow   = errors.New("you cannot follow yourself")
	ErrUnauthorized = errors.New("invalid email or password")
	ErrForbidden    = errors.New("this account is private")
)
