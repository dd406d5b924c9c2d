package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/docflow/internal/core/domain"
	"github.com/custodia-labs/docflow/internal/core/ports/driven"
)

// timeLayout sorts lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// eventStore implements driven.EventStore.
type eventStore struct {
	store *Store
}

var _ driven.EventStore = (*eventStore)(nil)

// Save stores or replaces an event record.
func (s *eventStore) Save(ctx context.Context, record domain.EventRecord) error {
	ev := record.Event
	if ev.ID == "" {
		return fmt.Errorf("%w: event id is empty", domain.ErrInvalidInput)
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshalling event: %w", err)
	}

	var docType, confidence any
	if ev.Classification != nil {
		docType = string(ev.Classification.DocumentType)
		confidence = ev.Classification.Confidence
	}

	_, err = s.store.db.ExecContext(ctx, `
		INSERT INTO events (id, run_id, status, filename, original_path, document_type,
			confidence, archived_path, archive_error, payload, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			run_id = excluded.run_id,
			status = excluded.status,
			filename = excluded.filename,
			original_path = excluded.original_path,
			document_type = excluded.document_type,
			confidence = excluded.confidence,
			archived_path = excluded.archived_path,
			archive_error = excluded.archive_error,
			payload = excluded.payload,
			recorded_at = excluded.recorded_at
	`, ev.ID, record.RunID, string(ev.Status), ev.Filename, ev.SourceReference,
		docType, confidence, nullString(record.ArchivedPath), nullString(record.ArchiveError),
		string(payload), formatTime(record.RecordedAt))

	if err != nil {
		return fmt.Errorf("saving event: %w", err)
	}
	return nil
}

// Get retrieves an event record by ID.
func (s *eventStore) Get(ctx context.Context, id string) (*domain.EventRecord, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT run_id, archived_path, archive_error, payload, recorded_at
		FROM events WHERE id = ?
	`, id)

	rec, err := scanEventRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns records newest first.
func (s *eventStore) List(ctx context.Context, filter domain.EventFilter) ([]domain.EventRecord, error) {
	query := `SELECT run_id, archived_path, archive_error, payload, recorded_at FROM events`
	var args []any
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY recorded_at DESC, id DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var records []domain.EventRecord //nolint:prealloc // size unknown from query
	for rows.Next() {
		rec, err := scanEventRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return records, nil
}

// ==================== Helper Functions ====================

type scanner interface {
	Scan(dest ...any) error
}

func scanEventRecord(row scanner) (*domain.EventRecord, error) {
	var rec domain.EventRecord
	var archivedPath, archiveError sql.NullString
	var payload, recordedAt string

	if err := row.Scan(&rec.RunID, &archivedPath, &archiveError, &payload, &recordedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	if err := json.Unmarshal([]byte(payload), &rec.Event); err != nil {
		return nil, fmt.Errorf("unmarshalling event: %w", err)
	}
	rec.ArchivedPath = archivedPath.String
	rec.ArchiveError = archiveError.String
	if t, err := time.Parse(timeLayout, recordedAt); err == nil {
		rec.RecordedAt = t
	}

	return &rec, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nullString returns nil for empty strings.
func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
