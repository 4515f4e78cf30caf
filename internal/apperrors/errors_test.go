package apperrors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestDefaultMessages(t *testing.T) {
	tests := []struct {
		err  error
		kind Kind
		want string
	}{
		{SameLanguage(), KindSameLanguage, "Source and target languages must be different"},
		{NoTranslation(), KindNoTranslation, "Please translate text first"},
		{NoReferences(), KindNoReferences, "Please provide at least one reference translation"},
		{EmptyInput(""), KindEmptyInput, "Please enter text to translate"},
		{EmptyInput("The uploaded file is empty."), KindEmptyInput, "The uploaded file is empty."},
	}

	for _, tt := range tests {
		if got := PublicMessage(tt.err); got != tt.want {
			t.Errorf("PublicMessage() = %q, want %q", got, tt.want)
		}
		if !Is(tt.err, tt.kind) {
			t.Errorf("Is(%v, %s) = false", tt.err, tt.kind)
		}
	}
}

func TestServiceFallback(t *testing.T) {
	err := Service(500, "", "Translation failed")
	if got := PublicMessage(err); got != "Translation failed" {
		t.Fatalf("PublicMessage() = %q, want fallback", got)
	}

	err = Service(400, "Source text is required", "Translation failed")
	if got := PublicMessage(err); got != "Source text is required" {
		t.Fatalf("PublicMessage() = %q, want server message", got)
	}

	var e *Error
	if !errors.As(err, &e) || e.StatusCode != 400 {
		t.Fatalf("expected status code 400, got %+v", e)
	}
}

func TestTransportKeepsCause(t *testing.T) {
	err := Transport(context.DeadlineExceeded)
	if got, want := PublicMessage(err), "Network error: context deadline exceeded"; got != want {
		t.Fatalf("PublicMessage() = %q, want %q", got, want)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("expected cause to be retained for errors.Is")
	}

	wrapped := fmt.Errorf("evaluate: %w", err)
	if !Is(wrapped, KindTransport) {
		t.Fatal("expected wrapped transport error to keep its kind")
	}
}

func TestPublicMessage_NonAppError(t *testing.T) {
	if got := PublicMessage(errors.New("plain")); got != "plain" {
		t.Fatalf("PublicMessage() = %q, want plain", got)
	}
	if got := PublicMessage(nil); got != "" {
		t.Fatalf("PublicMessage(nil) = %q, want empty", got)
	}
	if _, ok := KindOf(errors.New("plain")); ok {
		t.Fatal("KindOf() should report false for non-app errors")
	}
}
