package core

import (
	"errors"

	"github.com/MichaelReichel/clock2doc/internal/csvparse"
)

var (
	// ErrDraftNotFound is returned when no draft has the requested id.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrMessageNotFound is returned when no contact message has the requested id.
	ErrMessageNotFound = errors.New("message not found")

	// ErrNoFile is returned when an import request carries no file.
	ErrNoFile = errors.New("no file provided")

	// ErrEmptyFile is returned when an uploaded export has no bytes.
	ErrEmptyFile = errors.New("empty file")

	// ErrFileTooLarge is returned when an export exceeds the upload limit.
	ErrFileTooLarge = csvparse.ErrTooLarge

	// ErrInvalidTemplate is returned for an unknown invoice template.
	ErrInvalidTemplate = errors.New("invalid template")

	// ErrInvalidRate is returned for a negative hourly or tax rate.
	ErrInvalidRate = errors.New("invalid rate")

	// ErrInvalidMessage is returned when a contact form is incomplete.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrInvalidRequest is returned when a request body cannot be decoded.
	ErrInvalidRequest = errors.New("invalid request body")

	// ErrInvalidSecret is returned when a new admin secret is rejected.
	ErrInvalidSecret = errors.New("invalid secret")

	// ErrUnauthorized is returned when the admin secret does not verify.
	ErrUnauthorized = errors.New("unauthorized")
)
