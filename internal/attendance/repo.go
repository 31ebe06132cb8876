package attendance

import (
	"context"
	"database/sql"
	"fmt"

	"attendease/internal/model"
)

// Repository persists attendance records in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// MarkBatch upserts one record per student for a session and date inside a
// single transaction. A record that already exists for (student, session,
// date) has its status, marker and remarks overwritten, so re-marking is
// idempotent. The whole batch applies or none of it does.
func (r *Repository) MarkBatch(ctx context.Context, sessionID int, date string, markedBy int, records []MarkRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, rec := range records {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO attendance (student_id, session_id, date, status, marked_by, remarks)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (student_id, session_id, date)
			DO UPDATE SET status = EXCLUDED.status, marked_by = EXCLUDED.marked_by, remarks = EXCLUDED.remarks
		`, rec.StudentID, sessionID, date, rec.Status, markedBy, rec.Remarks)
		if err != nil {
			return fmt.Errorf("mark student %d: %w", rec.StudentID, err)
		}
	}
	return tx.Commit()
}

// ByStudent returns a student's history, newest first, capped at 50 records.
func (r *Repository) ByStudent(ctx context.Context, studentID int) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.student_id, a.session_id, a.date::text, a.status,
			COALESCE(a.marked_by, 0), a.remarks, a.created_at,
			ss.day_of_week, sub.name AS subject_name, sub.code AS subject_code
		FROM attendance a
		JOIN sessions ss ON a.session_id = ss.id
		JOIN subjects sub ON ss.subject_id = sub.id
		WHERE a.student_id = $1
		ORDER BY a.date DESC, ss.start_time
		LIMIT 50
	`, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.SessionID, &rec.Date, &rec.Status,
			&rec.MarkedBy, &rec.Remarks, &rec.CreatedAt,
			&rec.DayOfWeek, &rec.SubjectName, &rec.SubjectCode); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// BySessionDate returns the marked records of one session on one date with
// student names joined, ordered by roll number.
func (r *Repository) BySessionDate(ctx context.Context, sessionID int, date string) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.student_id, a.session_id, a.date::text, a.status,
			COALESCE(a.marked_by, 0), a.remarks, a.created_at,
			s.name AS student_name, s.roll_number
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		WHERE a.session_id = $1 AND a.date = $2
		ORDER BY s.roll_number
	`, sessionID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.SessionID, &rec.Date, &rec.Status,
			&rec.MarkedBy, &rec.Remarks, &rec.CreatedAt,
			&rec.StudentName, &rec.RollNumber); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// Recent returns the global activity feed, newest first, capped at 100.
func (r *Repository) Recent(ctx context.Context) ([]model.AttendanceRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.student_id, a.session_id, a.date::text, a.status,
			COALESCE(a.marked_by, 0), a.remarks, a.created_at,
			s.name AS student_name, s.roll_number,
			sub.name AS subject_name, ss.day_of_week
		FROM attendance a
		JOIN students s ON a.student_id = s.id
		JOIN sessions ss ON a.session_id = ss.id
		JOIN subjects sub ON ss.subject_id = sub.id
		ORDER BY a.date DESC, a.created_at DESC
		LIMIT 100
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.AttendanceRecord
	for rows.Next() {
		var rec model.AttendanceRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.SessionID, &rec.Date, &rec.Status,
			&rec.MarkedBy, &rec.Remarks, &rec.CreatedAt,
			&rec.StudentName, &rec.RollNumber, &rec.SubjectName, &rec.DayOfWeek); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, rows.Err()
}

// SessionRoster returns every student enrolled in the course owning the
// session, left-joined with any record for that exact session and date so
// already-marked statuses pre-populate.
func (r *Repository) SessionRoster(ctx context.Context, sessionID int, date string) ([]model.RosterEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT DISTINCT s.id, s.name, s.roll_number, a.status AS attendance_status, a.remarks
		FROM students s
		JOIN subjects sub ON s.course_id = sub.course_id
		JOIN sessions ss ON ss.subject_id = sub.id
		LEFT JOIN attendance a ON s.id = a.student_id AND a.session_id = $1 AND a.date = $2
		WHERE ss.id = $1
		ORDER BY s.roll_number
	`, sessionID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.RosterEntry
	for rows.Next() {
		var e model.RosterEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.RollNumber, &e.AttendanceStatus, &e.Remarks); err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, rows.Err()
}
