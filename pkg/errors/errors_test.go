package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidRoom, "bad room %q", "a/b")
	if got := err.Error(); got != `INVALID_ROOM: bad room "a/b"` {
		t.Errorf("Error() = %q", got)
	}

	wrapped := Wrap(ErrCodeNetwork, stderrors.New("connection refused"), "save layout")
	if got := wrapped.Error(); !strings.Contains(got, "connection refused") {
		t.Errorf("wrapped Error() = %q, missing cause", got)
	}
}

func TestIsMatchesCode(t *testing.T) {
	err := New(ErrCodeRoomNotFound, "missing")

	if !Is(err, ErrCodeRoomNotFound) {
		t.Error("Is failed on direct match")
	}
	if Is(err, ErrCodeNetwork) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeNetwork) {
		t.Error("Is matched a plain error")
	}
}

func TestIsUnwrapsChain(t *testing.T) {
	inner := New(ErrCodeTimeout, "deadline exceeded")
	outer := Wrap(ErrCodeNetwork, inner, "fetch layout")

	// As finds the outermost *Error first.
	if !Is(outer, ErrCodeNetwork) {
		t.Error("Is failed on the outer code")
	}
	if got := GetCode(outer); got != ErrCodeNetwork {
		t.Errorf("GetCode = %q, want NETWORK_ERROR", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidRoom, "room identifier cannot be empty")
	if got := UserMessage(err); got != "room identifier cannot be empty" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain failure")); got != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", got)
	}
}

func TestValidateRoom(t *testing.T) {
	tests := []struct {
		name    string
		room    string
		wantErr bool
	}{
		{"simple name", "main", false},
		{"with dash and digits", "patio-2", false},
		{"unicode letters", "terrasse-été", false},
		{"empty", "", true},
		{"path traversal", "../etc", true},
		{"forward slash", "a/b", true},
		{"backslash", `a\b`, true},
		{"control character", "room\x01", true},
		{"too long", strings.Repeat("r", 129), true},
		{"max length ok", strings.Repeat("r", 128), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoom(tt.room)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoom(%q) error = %v, wantErr %v", tt.room, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidRoom) {
				t.Errorf("ValidateRoom(%q) code = %v, want INVALID_ROOM", tt.room, GetCode(err))
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"http://localhost:8080", false},
		{"https://layouts.example.com", false},
		{"", true},
		{"ftp://example.com", true},
		{"localhost:8080", true},
	}

	for _, tt := range tests {
		if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
			t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
	}
}
