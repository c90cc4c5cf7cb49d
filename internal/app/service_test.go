package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/evanschultz/matter/internal/domain"
)

// fakeJournal records change events in memory.
type fakeJournal struct {
	events []domain.ChangeEvent
	err    error
}

// RecordChange appends one event unless an error is configured.
func (f *fakeJournal) RecordChange(_ context.Context, event domain.ChangeEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

// ListChanges returns newest-first events for one session.
func (f *fakeJournal) ListChanges(_ context.Context, sessionID string, limit int) ([]domain.ChangeEvent, error) {
	out := make([]domain.ChangeEvent, 0, len(f.events))
	for i := len(f.events) - 1; i >= 0 && len(out) < limit; i-- {
		if f.events[i].SessionID == sessionID {
			out = append(out, f.events[i])
		}
	}
	return out, nil
}

// recordingLogger captures debug messages.
type recordingLogger struct {
	messages []string
}

// Debug records one message.
func (l *recordingLogger) Debug(msg string, _ ...any) {
	l.messages = append(l.messages, msg)
}

// newTestService builds a service with sequential ids and a fixed clock.
func newTestService(journal Journal, cfg ServiceConfig) *Service {
	next := 0
	idGen := func() string {
		next++
		return fmt.Sprintf("id-%d", next)
	}
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	return NewService(journal, idGen, func() time.Time { return now }, cfg)
}

func TestServiceDispatchJournalsAppliedIntents(t *testing.T) {
	ctx := context.Background()
	journal := &fakeJournal{}
	logger := &recordingLogger{}
	svc := newTestService(journal, ServiceConfig{Logger: logger})
	if svc.SessionID() != "id-1" {
		t.Fatalf("unexpected session id %q", svc.SessionID())
	}

	for _, in := range []Intent{AddTile{}, SelectCategory{Category: domain.CategoryMusic}, PressTile{ID: 2}, ReleaseTile{ID: 2}} {
		if _, err := svc.Dispatch(ctx, in); err != nil {
			t.Fatalf("Dispatch(%T) error = %v", in, err)
		}
	}
	out, err := svc.Dispatch(ctx, DeleteTile{ID: 1})
	if err != nil {
		t.Fatalf("Dispatch(delete) error = %v", err)
	}
	if out.Applied || !errors.Is(out.Reason, domain.ErrWrongMode) {
		t.Fatalf("expected wrong-mode rejection, got %+v", out)
	}

	if len(journal.events) != 4 {
		t.Fatalf("expected 4 journaled events, got %d", len(journal.events))
	}
	first := journal.events[0]
	if first.Operation != domain.ChangeOperationCount || first.Summary != "tiles 1 -> 2" {
		t.Fatalf("unexpected first event %+v", first)
	}
	if first.SessionID != svc.SessionID() || first.ID == "" || first.OccurredAt.IsZero() {
		t.Fatalf("event not stamped: %+v", first)
	}
	assign := journal.events[3]
	if assign.Operation != domain.ChangeOperationAssign || assign.TileID != 2 || !strings.Contains(assign.Summary, "MUSIC") {
		t.Fatalf("unexpected assign event %+v", assign)
	}
	if len(logger.messages) != 5 {
		t.Fatalf("expected a debug trace per dispatch, got %d", len(logger.messages))
	}
}

func TestServiceDispatchJournalError(t *testing.T) {
	journal := &fakeJournal{err: errors.New("disk full")}
	svc := newTestService(journal, ServiceConfig{})
	out, err := svc.Dispatch(context.Background(), AddTile{})
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected wrapped journal error, got %v", err)
	}
	if !out.Applied || svc.Snapshot().Count != 2 {
		t.Fatalf("expected board change to stand, got %+v count %d", out, svc.Snapshot().Count)
	}
}

func TestServiceListActivity(t *testing.T) {
	ctx := context.Background()
	journal := &fakeJournal{}
	svc := newTestService(journal, ServiceConfig{InitialTiles: 2, StartMode: domain.ModeArrange})
	_, _ = svc.Dispatch(ctx, MoveTile{Index: 0, Rect: domain.Rect{X: 0, Y: 0, W: 4, H: 4}})
	_, _ = svc.Dispatch(ctx, DeleteTile{ID: 2})

	events, err := svc.ListActivity(ctx, 0)
	if err != nil {
		t.Fatalf("ListActivity() error = %v", err)
	}
	if len(events) != 2 || events[0].Operation != domain.ChangeOperationDelete {
		t.Fatalf("unexpected events %+v", events)
	}
	if events[1].Metadata["layout"] != "freeform" || events[0].Metadata["layout"] != "auto" {
		t.Fatalf("unexpected layout metadata %+v", events)
	}
	if _, err := svc.ListActivity(ctx, -1); !errors.Is(err, ErrInvalidLimit) {
		t.Fatalf("expected ErrInvalidLimit, got %v", err)
	}

	bare := newTestService(nil, ServiceConfig{})
	if _, err := bare.Dispatch(ctx, AddTile{}); err != nil {
		t.Fatalf("Dispatch() without journal error = %v", err)
	}
	if _, err := bare.ListActivity(ctx, 5); !errors.Is(err, ErrJournalUnavailable) {
		t.Fatalf("expected ErrJournalUnavailable, got %v", err)
	}
}

func TestServiceSnapshotReflectsConfig(t *testing.T) {
	svc := newTestService(nil, ServiceConfig{InitialTiles: 4, StartMode: domain.ModeArrange})
	snap := svc.Snapshot()
	if snap.Count != 4 || snap.Mode != domain.ModeArrange || snap.Layout != domain.LayoutAuto {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
}
