package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/evanschultz/matter/internal/domain"
	_ "modernc.org/sqlite"
)

// driverName defines a package constant value.
const driverName = "sqlite"

// defaultListLimit bounds change listings when callers pass no limit.
const defaultListLimit = 50

// Journal stores the change events of one running session in an in-memory database.
type Journal struct {
	db *sql.DB
}

// OpenInMemory opens an empty journal that lives as long as the process.
func OpenInMemory() (*Journal, error) {
	db, err := sql.Open(driverName, ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	// Every pooled connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)
	journal := &Journal{db: db}
	if err := journal.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return journal, nil
}

// Close closes the requested operation.
func (j *Journal) Close() error {
	return j.db.Close()
}

// migrate handles migrate.
func (j *Journal) migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS change_events (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			session_id TEXT NOT NULL,
			operation TEXT NOT NULL,
			tile_id INTEGER NOT NULL DEFAULT 0,
			summary TEXT NOT NULL DEFAULT '',
			metadata_json TEXT NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_change_events_session_seq ON change_events(session_id, seq);`,
	}
	for _, stmt := range stmts {
		if _, err := j.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite: %w", err)
		}
	}
	return nil
}

// RecordChange inserts one change-event ledger record.
func (j *Journal) RecordChange(ctx context.Context, event domain.ChangeEvent) error {
	event.ID = strings.TrimSpace(event.ID)
	event.SessionID = strings.TrimSpace(event.SessionID)
	if event.ID == "" {
		return errors.New("change event id is required")
	}
	if event.SessionID == "" {
		return errors.New("change event session id is required")
	}
	metadata := event.Metadata
	if metadata == nil {
		metadata = map[string]string{}
	}
	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return fmt.Errorf("encode change_events.metadata_json: %w", err)
	}
	_, err = j.db.ExecContext(ctx, `
		INSERT INTO change_events(id, session_id, operation, tile_id, summary, metadata_json, created_at)
		VALUES(?, ?, ?, ?, ?, ?, ?)
	`, event.ID, event.SessionID, string(event.Operation), event.TileID, event.Summary, string(metadataJSON), ts(event.OccurredAt))
	if err != nil {
		return fmt.Errorf("insert change event: %w", err)
	}
	return nil
}

// ListChanges lists the newest session events first for activity-log consumption.
func (j *Journal) ListChanges(ctx context.Context, sessionID string, limit int) ([]domain.ChangeEvent, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, session_id, operation, tile_id, summary, metadata_json, created_at
		FROM change_events
		WHERE session_id = ?
		ORDER BY seq DESC
		LIMIT ?
	`, strings.TrimSpace(sessionID), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.ChangeEvent, 0)
	for rows.Next() {
		var (
			event       domain.ChangeEvent
			opRaw       string
			metadataRaw string
			createdRaw  string
		)
		if err := rows.Scan(&event.ID, &event.SessionID, &opRaw, &event.TileID, &event.Summary, &metadataRaw, &createdRaw); err != nil {
			return nil, err
		}
		event.Operation = domain.ChangeOperation(strings.TrimSpace(opRaw))
		event.OccurredAt = parseTS(createdRaw)
		if strings.TrimSpace(metadataRaw) == "" {
			metadataRaw = "{}"
		}
		if err := json.Unmarshal([]byte(metadataRaw), &event.Metadata); err != nil {
			return nil, fmt.Errorf("decode change_events.metadata_json: %w", err)
		}
		if event.Metadata == nil {
			event.Metadata = map[string]string{}
		}
		out = append(out, event)
	}
	return out, rows.Err()
}

// ts handles ts.
func ts(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTS parses input into a normalized form.
func parseTS(v string) time.Time {
	ts, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}
	}
	return ts.UTC()
}
