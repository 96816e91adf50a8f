package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("email already exists")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidInput      = errors.New("invalid input")
	ErrOTPExpired        = errors.New("otp has expired")
	ErrAlreadyRegistered = errors.New("signup already completed")
)
