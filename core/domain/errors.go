package domain

import "errors"

var (
	// ErrPromptIncomplete is returned when a custom prompt lacks a name or content
	ErrPromptIncomplete = errors.New("prompt name and content are required")

	// ErrInvalidEmail is returned when an address does not look like an email
	ErrInvalidEmail = errors.New("invalid email address")
)
