package core

// error_messages.go turns technical errors into messages a person filling
// in an invoice can act on. Every message carries a code that support can
// look up in the logs.
//
//	FILE001  export larger than the upload limit
//	FILE004  no file in the request
//	FILE005  empty export
//	DRF001   draft missing or swept
//	MSG001   contact message missing
//	VAL001   unknown template
//	VAL002   negative rate
//	VAL003   incomplete contact message
//	VAL004   unreadable request body
//	AUTH001  missing or wrong admin secret
//	AUTH002  new admin secret rejected
//	UPL002   import slots exhausted
//	UPL004   request cancelled
//	UPL005   request timed out
//	DB001    storage unreachable
//	DB002    storage connection dropped
//	DB003    SQLite database locked
//	RATE001  client rate limit
//	ERR000   anything else

import (
	"context"
	"errors"
	"strings"
)

// UserMessage is the user-facing form of an error.
type UserMessage struct {
	Message string // what happened
	Action  string // what to do next
	Code    string // support reference
}

var (
	msgFileTooLarge   = UserMessage{"File exceeds the maximum upload size", "Export a shorter date range and try again", "FILE001"}
	msgNoFile         = UserMessage{"No file was selected", "Please select a CSV export to upload", "FILE004"}
	msgEmptyFile      = UserMessage{"The uploaded file is empty", "Please upload a CSV export with time entries", "FILE005"}
	msgDraftNotFound  = UserMessage{"Invoice draft not found", "The draft may have expired. Please import the export again", "DRF001"}
	msgMessageMissing = UserMessage{"Message not found", "Refresh the inbox", "MSG001"}
	msgBadTemplate    = UserMessage{"Unknown invoice template", "Choose modern, classic or bold", "VAL001"}
	msgBadRate        = UserMessage{"Rates cannot be negative", "Enter a rate of zero or more", "VAL002"}
	msgBadMessage     = UserMessage{"The message is incomplete", "Fill in a subject and a description", "VAL003"}
	msgBadRequest     = UserMessage{"The request could not be read", "Send a valid JSON body", "VAL004"}
	msgUnauthorized   = UserMessage{"Access denied", "Check the admin secret", "AUTH001"}
	msgBadSecret      = UserMessage{"The new admin secret was rejected", "Use at least 4 characters and type it the same way twice", "AUTH002"}
	msgBusy           = UserMessage{"System is busy processing other imports", "Please wait a moment and try again", "UPL002"}
	msgCancelled      = UserMessage{"Request was cancelled", "Please try again", "UPL004"}
	msgTimeout        = UserMessage{"Request timed out", "Try a smaller export or check your connection", "UPL005"}
	msgUnknown        = UserMessage{"An unexpected error occurred", "Please try again or contact support", "ERR000"}
)

// sentinelMessages is consulted first, with errors.Is, so wrapping never
// hides a known error.
var sentinelMessages = []struct {
	target error
	msg    UserMessage
}{
	{ErrFileTooLarge, msgFileTooLarge},
	{ErrNoFile, msgNoFile},
	{ErrEmptyFile, msgEmptyFile},
	{ErrDraftNotFound, msgDraftNotFound},
	{ErrMessageNotFound, msgMessageMissing},
	{ErrInvalidTemplate, msgBadTemplate},
	{ErrInvalidRate, msgBadRate},
	{ErrInvalidMessage, msgBadMessage},
	{ErrInvalidRequest, msgBadRequest},
	{ErrInvalidSecret, msgBadSecret},
	{ErrUnauthorized, msgUnauthorized},
	{ErrTooManyImports, msgBusy},
	{context.Canceled, msgCancelled},
	{context.DeadlineExceeded, msgTimeout},
}

// textPatterns catches errors that reach us only as text: driver errors,
// and sentinels flattened by %v somewhere along the way. Matching is
// case-insensitive and the first hit wins.
var textPatterns = []struct {
	pattern string
	msg     UserMessage
}{
	{"file too large", msgFileTooLarge},
	{"draft not found", msgDraftNotFound},
	{"message not found", msgMessageMissing},
	{"connection refused", UserMessage{"Unable to connect to storage", "Please try again in a few moments", "DB001"}},
	{"connection reset", UserMessage{"Storage connection was interrupted", "Please try again", "DB002"}},
	{"database is locked", UserMessage{"Storage is busy", "Please try again", "DB003"}},
	{"rate limit", UserMessage{"Too many requests", "Please wait a moment before trying again", "RATE001"}},
}

// MapError converts err to a UserMessage, falling back to ERR000.
// A nil error maps to the zero UserMessage.
//
//	MapError(fmt.Errorf("get draft: %w", ErrDraftNotFound)).Code // "DRF001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	for _, s := range sentinelMessages {
		if errors.Is(err, s.target) {
			return s.msg
		}
	}

	text := strings.ToLower(err.Error())
	for _, p := range textPatterns {
		if strings.Contains(text, p.pattern) {
			return p.msg
		}
	}
	return msgUnknown
}

// IsUserFacing reports whether err maps to something more specific than
// ERR000.
func IsUserFacing(err error) bool {
	return err != nil && MapError(err).Code != msgUnknown.Code
}
