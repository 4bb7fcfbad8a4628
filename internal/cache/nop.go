package cache

import (
	"context"

	"github.com/claude/fittrack/internal/models"
	"github.com/claude/fittrack/internal/readiness"
)

// Nop never stores anything. Used when caching is disabled in config.
type Nop struct{}

var _ readiness.Cache = Nop{}

func (Nop) Load(context.Context, int, models.Muscle) (*readiness.Cached, error) { return nil, nil }
func (Nop) Store(context.Context, int, readiness.Cached) error                  { return nil }
func (Nop) Invalidate(context.Context, int) error                               { return nil }
