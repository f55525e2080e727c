package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("invalid email address")
	ErrEmptyPassword = errors.New("password is required")
	ErrWeakPassword  = errors.New("password does not meet the required security protocols")

	ErrInvalidID       = errors.New("invalid id")
	ErrEmptyTitle      = errors.New("title is required")
	ErrEmptySummary    = errors.New("summary is required")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidSeverity = errors.New("invalid severity")
	ErrEmptyQuestion   = errors.New("question is required")
	ErrEmptyAnswer     = errors.New("answer is required")

	ErrWrongSetSize      = errors.New("unexpected number of generated items")
	ErrWrongOptionCount  = errors.New("quiz question must have exactly four options")
	ErrEmptyOption       = errors.New("quiz option is empty")
	ErrInvalidCorrectIdx = errors.New("correct index out of range")
	ErrEmptyExplanation  = errors.New("explanation is required")
	ErrEmptyCardSide     = errors.New("flashcard side is empty")
	ErrMissingField      = errors.New("generated item has a missing or null field")
)
