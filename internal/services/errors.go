package services

import "errors"

// Validation and domain errors. Anything else returned by a service is an
// unexpected persistence failure.
var (
	ErrFieldsRequired     = errors.New("all fields are required")
	ErrLoginRequired      = errors.New("login is required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrPasswordTooShort   = errors.New("password too short")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrLoginTaken         = errors.New("login already taken")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrCommentEmpty       = errors.New("comment is empty")
	ErrCommentTooShort    = errors.New("comment too short")
	ErrCommentTooLong     = errors.New("comment too long")
)
