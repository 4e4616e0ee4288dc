package domain

import "errors"

// User errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrInvalidRole  = errors.New("invalid role")
)

// Product errors
var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("not authorized to access this product")
)
