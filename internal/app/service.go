package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/evanschultz/matter/internal/domain"
)

// defaultActivityLimit bounds activity queries when the caller passes zero.
const defaultActivityLimit = 50

// ServiceConfig holds configuration for service.
type ServiceConfig struct {
	InitialTiles int
	StartMode    domain.Mode
	Logger       Logger
}

// IDGenerator returns unique identifiers for new entities.
type IDGenerator func() string

// Clock returns the current time.
type Clock func() time.Time

// Service serializes intents into the controller and journals what changed.
type Service struct {
	mu        sync.Mutex
	ctrl      *Controller
	journal   Journal
	idGen     IDGenerator
	clock     Clock
	logger    Logger
	sessionID string
}

// NewService constructs a new value for this package. A nil journal disables the activity log.
func NewService(journal Journal, idGen IDGenerator, clock Clock, cfg ServiceConfig) *Service {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		ctrl: NewController(ControllerConfig{
			InitialTiles: cfg.InitialTiles,
			StartMode:    cfg.StartMode,
		}),
		journal:   journal,
		idGen:     idGen,
		clock:     clock,
		logger:    cfg.Logger,
		sessionID: idGen(),
	}
}

// SessionID returns the id stamped on this run's change events.
func (s *Service) SessionID() string {
	return s.sessionID
}

// Dispatch applies one intent. The returned error only reports journal failures;
// the board change itself has already happened when it is non-nil.
func (s *Service) Dispatch(ctx context.Context, in Intent) (Outcome, error) {
	s.mu.Lock()
	before := s.ctrl.Snapshot()
	outcome := s.ctrl.Dispatch(in)
	after := s.ctrl.Snapshot()
	s.mu.Unlock()

	if s.logger != nil {
		s.logger.Debug("intent dispatched", "kind", outcome.Kind, "applied", outcome.Applied, "reason", outcome.Reason, "tiles", after.Count, "mode", after.Mode, "layout", after.Layout)
	}
	if !outcome.Applied || s.journal == nil {
		return outcome, nil
	}
	event := s.changeEventFor(in, before, after)
	if err := s.journal.RecordChange(ctx, event); err != nil {
		return outcome, fmt.Errorf("record %s change: %w", outcome.Kind, err)
	}
	return outcome, nil
}

// Snapshot returns the current read model.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Snapshot()
}

// ListActivity returns the newest change events of this session first.
func (s *Service) ListActivity(ctx context.Context, limit int) ([]domain.ChangeEvent, error) {
	if limit < 0 {
		return nil, ErrInvalidLimit
	}
	if limit == 0 {
		limit = defaultActivityLimit
	}
	if s.journal == nil {
		return nil, ErrJournalUnavailable
	}
	return s.journal.ListChanges(ctx, s.sessionID, limit)
}

// changeEventFor describes one applied intent for the activity log.
func (s *Service) changeEventFor(in Intent, before, after Snapshot) domain.ChangeEvent {
	event := domain.ChangeEvent{
		ID:         s.idGen(),
		SessionID:  s.sessionID,
		Metadata:   map[string]string{"intent": string(in.Kind())},
		OccurredAt: s.clock().UTC(),
	}
	switch in := in.(type) {
	case ToggleMode, SetMode:
		event.Operation = domain.ChangeOperationMode
		event.Summary = fmt.Sprintf("mode %s -> %s", before.Mode, after.Mode)
	case AddTile, SetCount:
		event.Operation = domain.ChangeOperationCount
		event.Summary = fmt.Sprintf("tiles %d -> %d", before.Count, after.Count)
	case DeleteTile:
		event.Operation = domain.ChangeOperationDelete
		event.TileID = in.ID
		event.Summary = fmt.Sprintf("deleted tile %d (%s), tiles %d -> %d", in.ID, categoryAt(before, in.ID), before.Count, after.Count)
	case ApplyLayout:
		event.Operation = domain.ChangeOperationArrange
		event.Summary = fmt.Sprintf("arranged %d tiles", min(len(in.Rects), after.Count))
	case MoveTile:
		event.Operation = domain.ChangeOperationArrange
		event.TileID = in.Index + 1
		event.Summary = fmt.Sprintf("tile %d -> %s", in.Index+1, in.Rect)
		event.Metadata["rect"] = in.Rect.String()
	case DropTile:
		event.Operation = domain.ChangeOperationAssign
		event.TileID = in.ID
		event.Summary = fmt.Sprintf("tile %d <- %s", in.ID, after.SelectedCategory)
	case ReleaseTile:
		event.Operation = domain.ChangeOperationAssign
		event.TileID = in.ID
		event.Summary = fmt.Sprintf("tile %d <- %s", in.ID, after.SelectedCategory)
	case PressTile:
		event.Operation = domain.ChangeOperationSelect
		event.TileID = in.ID
		event.Summary = fmt.Sprintf("armed tile %d", in.ID)
	case SelectCategory, ClearCategory:
		event.Operation = domain.ChangeOperationCategory
		event.Summary = "category " + after.SelectedCategory.String()
	default:
		event.Operation = domain.ChangeOperation(strings.ReplaceAll(string(in.Kind()), "_", "-"))
		event.Summary = string(in.Kind())
	}
	event.Metadata["tiles"] = strconv.Itoa(after.Count)
	event.Metadata["layout"] = after.Layout.String()
	return event
}

// categoryAt returns the category of one tile in a snapshot.
func categoryAt(s Snapshot, id int) domain.Category {
	for _, tile := range s.Tiles {
		if tile.ID == id {
			return tile.Category
		}
	}
	return domain.Unassigned
}
