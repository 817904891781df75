package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrEmailTaken        = errors.New("email already registered")
	ErrInsufficientStock = errors.New("insufficient stock")

	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("incorrect email or password")

	ErrValidation = errors.New("validation failed")
	ErrEmptyCart  = errors.New("cart is empty")

	// ErrCacheMiss is returned by caches, never by handlers.
	ErrCacheMiss = errors.New("cache miss")
)
