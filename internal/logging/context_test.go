package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestContext_RoundTrip(t *testing.T) {
	logger := NewDiscard()

	ctx := NewContext(context.Background(), logger)
	if got := FromContext(ctx); got != logger {
		t.Error("FromContext should return the logger stored by NewContext")
	}
}

func TestFromContext_DefaultsWhenAbsent(t *testing.T) {
	if got := FromContext(context.Background()); got != slog.Default() {
		t.Error("FromContext without a stored logger should fall back to slog.Default")
	}
}
