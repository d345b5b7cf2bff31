package user

import "errors"

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidInput       = errors.New("name, email and a password of at least 8 characters are required")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
