package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"wrapped draft not found", fmt.Errorf("get draft 42: %w", ErrDraftNotFound), "DRF001"},
		{"message not found", ErrMessageNotFound, "MSG001"},
		{"file too large", fmt.Errorf("%w: more than 10 bytes", ErrFileTooLarge), "FILE001"},
		{"no file", ErrNoFile, "FILE004"},
		{"empty file", ErrEmptyFile, "FILE005"},
		{"invalid template", ErrInvalidTemplate, "VAL001"},
		{"invalid rate", ErrInvalidRate, "VAL002"},
		{"invalid message", ErrInvalidMessage, "VAL003"},
		{"invalid request", fmt.Errorf("%w: unexpected EOF", ErrInvalidRequest), "VAL004"},
		{"unauthorized", ErrUnauthorized, "AUTH001"},
		{"invalid secret", ErrInvalidSecret, "AUTH002"},
		{"busy", ErrTooManyImports, "UPL002"},
		{"cancelled", context.Canceled, "UPL004"},
		{"deadline", context.DeadlineExceeded, "UPL005"},
		{"sqlite lock", errors.New("database is locked (5) (SQLITE_BUSY)"), "DB003"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"case insensitive", errors.New("DRAFT NOT FOUND"), "DRF001"},
		{"flattened sentinel", fmt.Errorf("load: %v", ErrDraftNotFound), "DRF001"},
		{"wrapped twice", fmt.Errorf("import: %w", fmt.Errorf("read: %w", ErrEmptyFile)), "FILE005"},
		{"postgres down", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), "DB001"},
		{"unknown error", errors.New("some random internal error"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapError(tt.err); got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

func TestIsUserFacing(t *testing.T) {
	if !IsUserFacing(ErrDraftNotFound) {
		t.Error("ErrDraftNotFound should be user facing")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("unknown error should not be user facing")
	}
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
}
