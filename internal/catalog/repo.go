package catalog

import (
	"context"
	"database/sql"

	"attendease/internal/model"
)

// Repository reads the static reference data: courses, subjects and the
// weekly timetable.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// ListCourses returns all courses with their enrolled-student counts.
func (r *Repository) ListCourses(ctx context.Context) ([]model.Course, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.code, c.description, c.created_at, COUNT(s.id) AS student_count
		FROM courses c
		LEFT JOIN students s ON c.id = s.course_id
		GROUP BY c.id
		ORDER BY c.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Description, &c.CreatedAt, &c.StudentCount); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// ListSubjects returns subjects with their course and teacher names,
// optionally filtered by course.
func (r *Repository) ListSubjects(ctx context.Context, courseID string) ([]model.Subject, error) {
	query := `
		SELECT s.id, s.name, s.code, s.course_id, s.teacher_id, s.created_at,
			COALESCE(c.name, '') AS course_name,
			COALESCE(u.full_name, '') AS teacher_name
		FROM subjects s
		LEFT JOIN courses c ON s.course_id = c.id
		LEFT JOIN users u ON s.teacher_id = u.id`
	var args []any
	if courseID != "" {
		query += `
		WHERE s.course_id = $1`
		args = append(args, courseID)
	}
	query += `
		ORDER BY s.name`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Subject
	for rows.Next() {
		var s model.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.CourseID, &s.TeacherID, &s.CreatedAt,
			&s.CourseName, &s.TeacherName); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// dayOrderExpr maps the textual day-of-week to an ordinal so MON..SAT sort
// chronologically; anything unexpected sorts last.
const dayOrderExpr = `CASE ss.day_of_week
			WHEN 'MON' THEN 1 WHEN 'TUE' THEN 2 WHEN 'WED' THEN 3
			WHEN 'THU' THEN 4 WHEN 'FRI' THEN 5 WHEN 'SAT' THEN 6
			ELSE 7
		END`

// ListTimetable returns sessions joined with subject, teacher and course,
// optionally filtered by day and/or course, in day-then-time order.
func (r *Repository) ListTimetable(ctx context.Context, day, courseID string) ([]model.Session, error) {
	query := `
		SELECT ss.id, ss.subject_id, ss.day_of_week, ss.start_time, ss.end_time, ss.room, ss.created_at,
			sub.name AS subject_name, sub.code AS subject_code,
			u.full_name AS teacher_name, c.name AS course_name
		FROM sessions ss
		JOIN subjects sub ON ss.subject_id = sub.id
		JOIN users u ON sub.teacher_id = u.id
		JOIN courses c ON sub.course_id = c.id`
	var args []any
	var clauses []string
	if day != "" {
		args = append(args, day)
		clauses = append(clauses, "ss.day_of_week = $1")
	}
	if courseID != "" {
		args = append(args, courseID)
		if len(args) == 1 {
			clauses = append(clauses, "sub.course_id = $1")
		} else {
			clauses = append(clauses, "sub.course_id = $2")
		}
	}
	for i, clause := range clauses {
		if i == 0 {
			query += `
		WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += `
		ORDER BY ` + dayOrderExpr + `, ss.start_time`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Session
	for rows.Next() {
		var s model.Session
		if err := rows.Scan(&s.ID, &s.SubjectID, &s.DayOfWeek, &s.StartTime, &s.EndTime, &s.Room, &s.CreatedAt,
			&s.SubjectName, &s.SubjectCode, &s.TeacherName, &s.CourseName); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
