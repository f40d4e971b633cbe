package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrNoFields           = errors.New("no fields to update")
)

// ErrPasswordTooLong is an ErrInvalidInput for passwords bcrypt cannot digest.
var ErrPasswordTooLong = fmt.Errorf("%w: password too long", ErrInvalidInput)
