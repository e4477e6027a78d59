package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS session (
			id            INTEGER PRIMARY KEY CHECK(id = 1),
			rows          INTEGER NOT NULL,
			cols          INTEGER NOT NULL,
			history_index INTEGER NOT NULL DEFAULT -1
		);

		CREATE TABLE IF NOT EXISTS students (
			uuid        TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			external_id TEXT NOT NULL DEFAULT '',
			gender      TEXT NOT NULL DEFAULT 'unset' CHECK(gender IN ('unset', 'male', 'female')),
			height      INTEGER NOT NULL DEFAULT 0,
			notes       TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS seats (
			row          INTEGER NOT NULL,
			col          INTEGER NOT NULL,
			deleted      BOOLEAN NOT NULL DEFAULT 0,
			student_uuid TEXT REFERENCES students(uuid),
			PRIMARY KEY (row, col)
		);

		CREATE TABLE IF NOT EXISTS history (
			position    INTEGER PRIMARY KEY,
			action      TEXT NOT NULL,
			recorded_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS history_seats (
			position     INTEGER NOT NULL REFERENCES history(position),
			row          INTEGER NOT NULL,
			col          INTEGER NOT NULL,
			deleted      BOOLEAN NOT NULL DEFAULT 0,
			student_uuid TEXT,
			PRIMARY KEY (position, row, col)
		);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating session tables: %w", err)
	}

	return nil
}
