package model

import "errors"

var (
	ErrValidation        = errors.New("missing or invalid field")
	ErrDuplicateIdentity = errors.New("username or email already exists")
	ErrDuplicateLoomaID  = errors.New("looma id already registered")
	ErrAuthFailure       = errors.New("invalid credentials")
	ErrNotFound          = errors.New("not found")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrEmptyInput        = errors.New("empty or malformed input")
)
