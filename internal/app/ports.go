package app

import (
	"context"

	"github.com/evanschultz/matter/internal/domain"
)

// Journal records applied intents for the running session.
type Journal interface {
	RecordChange(context.Context, domain.ChangeEvent) error
	ListChanges(context.Context, string, int) ([]domain.ChangeEvent, error)
}

// Logger receives debug traces for applied intents.
type Logger interface {
	Debug(msg string, keyvals ...any)
}
