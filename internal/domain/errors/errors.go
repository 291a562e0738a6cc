package errors

import "errors"

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrEmptyOrder         = errors.New("order has no lines")
	ErrOrderFinalized     = errors.New("order already payed")
	ErrInsufficientStock  = errors.New("insufficient stock")
)
