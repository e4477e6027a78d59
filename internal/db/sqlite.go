// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/pupitre/internal/seating"
)

// SQLite implements seating.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SaveSession replaces the stored session atomically. The previous session is
// wiped inside the same transaction, so a failed save never leaves a partial
// mix of old and new rows.
func (s *SQLite) SaveSession(ctx context.Context, session *seating.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"history_seats", "history", "seats", "students", "session"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO session (id, rows, cols, history_index) VALUES (1, ?, ?, ?)`,
		session.Rows, session.Cols, session.HistoryIndex,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO students (uuid, name, external_id, gender, height, notes) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing students statement: %w", err)
	}
	for _, st := range session.Students {
		if _, err := stmt.ExecContext(ctx, st.UUID, st.Name, st.ExternalID, string(st.Gender), st.Height, st.Notes); err != nil {
			_ = stmt.Close()
			return fmt.Errorf("inserting student %s: %w", st.UUID, err)
		}
	}
	if err := stmt.Close(); err != nil {
		return fmt.Errorf("closing students statement: %w", err)
	}

	if err := insertSeats(ctx, tx, "seats", -1, session.Seats); err != nil {
		return err
	}

	for i, entry := range session.History {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO history (position, action, recorded_at) VALUES (?, ?, ?)`,
			i, entry.Action, entry.Timestamp.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("inserting history entry %d: %w", i, err)
		}
		if err := insertSeats(ctx, tx, "history_seats", i, entry.Seats); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// insertSeats writes a flat seat list into either the live seats table or a
// history snapshot. position is -1 for the live table, which has no position
// column.
func insertSeats(ctx context.Context, tx *sql.Tx, table string, position int, seats []seating.SessionSeat) error {
	var query string
	if position < 0 {
		query = `INSERT INTO seats (row, col, deleted, student_uuid) VALUES (?, ?, ?, ?)`
	} else {
		query = `INSERT INTO history_seats (position, row, col, deleted, student_uuid) VALUES (?, ?, ?, ?, ?)`
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing %s statement: %w", table, err)
	}
	defer func() { _ = stmt.Close() }()

	for _, seat := range seats {
		var uuid any
		if seat.StudentUUID != "" {
			uuid = seat.StudentUUID
		}
		if position < 0 {
			_, err = stmt.ExecContext(ctx, seat.Row, seat.Col, seat.Deleted, uuid)
		} else {
			_, err = stmt.ExecContext(ctx, position, seat.Row, seat.Col, seat.Deleted, uuid)
		}
		if err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}

	return nil
}

// LoadSession returns the stored session, or nil if none was saved yet.
func (s *SQLite) LoadSession(ctx context.Context) (*seating.Session, error) {
	session := &seating.Session{}
	err := s.db.QueryRowContext(ctx,
		`SELECT rows, cols, history_index FROM session WHERE id = 1`,
	).Scan(&session.Rows, &session.Cols, &session.HistoryIndex)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	session.Students, err = s.loadStudents(ctx)
	if err != nil {
		return nil, err
	}

	session.Seats, err = s.loadSeats(ctx, -1)
	if err != nil {
		return nil, err
	}

	session.History, err = s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SQLite) loadStudents(ctx context.Context) ([]seating.Student, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT uuid, name, external_id, gender, height, notes FROM students ORDER BY name, uuid`)
	if err != nil {
		return nil, fmt.Errorf("querying students: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var students []seating.Student
	for rows.Next() {
		var st seating.Student
		var gender string
		if err := rows.Scan(&st.UUID, &st.Name, &st.ExternalID, &gender, &st.Height, &st.Notes); err != nil {
			return nil, fmt.Errorf("scanning student: %w", err)
		}
		st.Gender = seating.Gender(gender)
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}

	return students, nil
}

// loadSeats reads one flat seat list. position is -1 for the live seats
// table, otherwise it selects one history snapshot.
func (s *SQLite) loadSeats(ctx context.Context, position int) ([]seating.SessionSeat, error) {
	var rows *sql.Rows
	var err error
	if position < 0 {
		rows, err = s.db.QueryContext(ctx,
			`SELECT row, col, deleted, student_uuid FROM seats ORDER BY row, col`)
	} else {
		rows, err = s.db.QueryContext(ctx,
			`SELECT row, col, deleted, student_uuid FROM history_seats WHERE position = ? ORDER BY row, col`,
			position)
	}
	if err != nil {
		return nil, fmt.Errorf("querying seats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var seats []seating.SessionSeat
	for rows.Next() {
		var seat seating.SessionSeat
		var uuid sql.NullString
		if err := rows.Scan(&seat.Row, &seat.Col, &seat.Deleted, &uuid); err != nil {
			return nil, fmt.Errorf("scanning seat: %w", err)
		}
		seat.StudentUUID = uuid.String
		seats = append(seats, seat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating seats: %w", err)
	}

	return seats, nil
}

func (s *SQLite) loadHistory(ctx context.Context) ([]seating.SessionHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT position, action, recorded_at FROM history ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}

	type flatEntry struct {
		position int
		action   string
		recorded string
	}
	var flat []flatEntry
	for rows.Next() {
		var e flatEntry
		if err := rows.Scan(&e.position, &e.action, &e.recorded); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		flat = append(flat, e)
	}
	if err := rows.Close(); err != nil {
		return nil, fmt.Errorf("closing history rows: %w", err)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	var entries []seating.SessionHistoryEntry
	for _, e := range flat {
		ts, err := time.Parse(time.RFC3339Nano, e.recorded)
		if err != nil {
			return nil, fmt.Errorf("parsing history timestamp: %w", err)
		}
		seats, err := s.loadSeats(ctx, e.position)
		if err != nil {
			return nil, err
		}
		entries = append(entries, seating.SessionHistoryEntry{
			Action:    e.action,
			Timestamp: ts,
			Seats:     seats,
		})
	}

	return entries, nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
