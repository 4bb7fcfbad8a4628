package mcp

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

// TestUserIDFromContext verifies the default user (1) and a value set by
// WithUserID.
func TestUserIDFromContext(t *testing.T) {
	if id := UserIDFromContext(context.Background()); id != 1 {
		t.Errorf("UserIDFromContext(empty) = %d, want 1", id)
	}
	ctx := WithUserID(context.Background(), 42)
	if id := UserIDFromContext(ctx); id != 42 {
		t.Errorf("UserIDFromContext = %d, want 42", id)
	}
}

// TestNewRegistersTools verifies every tool is listed by the server.
func TestNewRegistersTools(t *testing.T) {
	s := New(&fakeDS{}, 10, "test", slog.New(slog.NewTextHandler(io.Discard, nil)))
	tools := s.ListTools()
	for _, name := range []string{"get_muscle_readiness", "get_muscle_statuses", "get_workouts", "predict_volume", "get_training_summary"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %s not registered", name)
		}
	}
	if len(tools) != 5 {
		t.Errorf("tools = %d, want 5", len(tools))
	}
}
