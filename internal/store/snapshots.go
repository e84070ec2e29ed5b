package store

import (
	"database/sql"
	"fmt"

	"github.com/rhyrak/go-pick/pkg/model"
)

// SaveSnapshot replaces the stored table of term.
func (db *DB) SaveSnapshot(term string, sessions []model.Session) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM snapshot_sessions WHERE term = ?", term); err != nil {
		return fmt.Errorf("clearing snapshot: %w", err)
	}
	stmt, err := tx.Prepare(
		`INSERT INTO snapshot_sessions (term, position, course, course_name, credits, instructor, room, days, start_time, end_time, max_enrollment, total_enrollment)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, s := range sessions {
		if _, err := stmt.Exec(term, i, s.FullCode, s.CourseName, s.Credits, s.Instructor, s.Room,
			s.Days, s.StartTime, s.EndTime, s.MaxEnrollment, s.TotalEnrollment); err != nil {
			return fmt.Errorf("inserting session %d: %w", i, err)
		}
	}

	if _, err := tx.Exec(
		"INSERT INTO snapshots (term, taken_at) VALUES (?, CURRENT_TIMESTAMP) ON CONFLICT(term) DO UPDATE SET taken_at = excluded.taken_at",
		term,
	); err != nil {
		return fmt.Errorf("recording snapshot: %w", err)
	}
	return tx.Commit()
}

// LoadSnapshot returns the stored table of term. ok is false when no
// snapshot was ever taken.
func (db *DB) LoadSnapshot(term string) (sessions []model.Session, ok bool, err error) {
	var found int
	err = db.QueryRow("SELECT 1 FROM snapshots WHERE term = ?", term).Scan(&found)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading snapshot: %w", err)
	}

	rows, err := db.Query(
		`SELECT course, course_name, credits, instructor, room, days, start_time, end_time, max_enrollment, total_enrollment
		 FROM snapshot_sessions WHERE term = ? ORDER BY position ASC`,
		term,
	)
	if err != nil {
		return nil, false, fmt.Errorf("querying snapshot: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.FullCode, &s.CourseName, &s.Credits, &s.Instructor, &s.Room,
			&s.Days, &s.StartTime, &s.EndTime, &s.MaxEnrollment, &s.TotalEnrollment); err != nil {
			return nil, false, fmt.Errorf("scanning snapshot: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, true, rows.Err()
}
