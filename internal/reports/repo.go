package reports

import (
	"context"
	"database/sql"

	"attendease/internal/model"
)

// Repository computes the aggregate queries behind the dashboard and the
// reports endpoints. Everything is derived on demand; nothing is cached.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// DashboardStats aggregates entity totals, today's marking counts, the
// overall present percentage and the five lowest-percentage students.
// Students with no marked records are excluded from the bottom-5.
func (r *Repository) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	stats := &model.DashboardStats{LowAttendanceStudents: []model.LowAttendanceRow{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM students),
			(SELECT COUNT(*) FROM courses),
			(SELECT COUNT(*) FROM subjects)
	`).Scan(&stats.TotalStudents, &stats.TotalCourses, &stats.TotalSubjects)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FILTER (WHERE status = 'present'), COUNT(*)
		FROM attendance WHERE date = CURRENT_DATE
	`).Scan(&stats.TodayPresent, &stats.TodayTotal)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COALESCE(
			ROUND(
				COUNT(*) FILTER (WHERE status = 'present')::numeric /
				NULLIF(COUNT(*)::numeric, 0) * 100,
				1
			), 0
		)::float8
		FROM attendance
	`).Scan(&stats.AvgAttendance)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.roll_number,
			ROUND(
				COUNT(*) FILTER (WHERE a.status = 'present')::numeric /
				NULLIF(COUNT(a.id)::numeric, 0) * 100,
				1
			)::float8 AS percentage
		FROM students s
		LEFT JOIN attendance a ON s.id = a.student_id
		GROUP BY s.id, s.name, s.roll_number
		HAVING COUNT(a.id) > 0
		ORDER BY percentage ASC
		LIMIT 5
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var row model.LowAttendanceRow
		if err := rows.Scan(&row.ID, &row.Name, &row.RollNumber, &row.Percentage); err != nil {
			return nil, err
		}
		stats.LowAttendanceStudents = append(stats.LowAttendanceStudents, row)
	}
	return stats, rows.Err()
}

// LowAttendance lists students whose present percentage is below threshold,
// worst first. Students with zero marked records never appear.
func (r *Repository) LowAttendance(ctx context.Context, threshold float64) ([]model.LowAttendanceStudent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT s.id, s.name, s.roll_number, COALESCE(c.name, '') AS course_name,
			COUNT(a.id) AS total_classes,
			COUNT(*) FILTER (WHERE a.status = 'present') AS present_count,
			ROUND(
				COUNT(*) FILTER (WHERE a.status = 'present')::numeric /
				NULLIF(COUNT(a.id)::numeric, 0) * 100,
				1
			)::float8 AS percentage
		FROM students s
		LEFT JOIN courses c ON s.course_id = c.id
		LEFT JOIN attendance a ON s.id = a.student_id
		GROUP BY s.id, s.name, s.roll_number, c.name
		HAVING COUNT(a.id) > 0 AND
			COUNT(*) FILTER (WHERE a.status = 'present')::numeric /
			NULLIF(COUNT(a.id)::numeric, 0) * 100 < $1
		ORDER BY percentage ASC
	`, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.LowAttendanceStudent
	for rows.Next() {
		var row model.LowAttendanceStudent
		if err := rows.Scan(&row.ID, &row.Name, &row.RollNumber, &row.CourseName,
			&row.TotalClasses, &row.PresentCount, &row.Percentage); err != nil {
			return nil, err
		}
		res = append(res, row)
	}
	return res, rows.Err()
}

// AttendanceSummary buckets marked records per day, newest first, over the
// most recent 30 recorded days, optionally scoped to one course.
func (r *Repository) AttendanceSummary(ctx context.Context, courseID string) ([]model.SummaryBucket, error) {
	query := `
		SELECT a.date::text,
			COUNT(*) FILTER (WHERE a.status = 'present') AS present,
			COUNT(*) FILTER (WHERE a.status = 'absent') AS absent,
			COUNT(*) AS total
		FROM attendance a`
	var args []any
	if courseID != "" {
		query += `
		JOIN students s ON a.student_id = s.id
		WHERE s.course_id = $1`
		args = append(args, courseID)
	}
	query += `
		GROUP BY a.date
		ORDER BY a.date DESC
		LIMIT 30`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.SummaryBucket
	for rows.Next() {
		var b model.SummaryBucket
		if err := rows.Scan(&b.Date, &b.Present, &b.Absent, &b.Total); err != nil {
			return nil, err
		}
		res = append(res, b)
	}
	return res, rows.Err()
}

// StudentSubjectStats breaks one student's attendance down per subject across
// every subject of their course, including subjects with nothing marked yet.
func (r *Repository) StudentSubjectStats(ctx context.Context, studentID, courseID int) ([]model.SubjectStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sub.name AS subject_name,
			COUNT(a.id) AS total_classes,
			COUNT(*) FILTER (WHERE a.status = 'present') AS present,
			COALESCE(
				ROUND(
					COUNT(*) FILTER (WHERE a.status = 'present')::numeric /
					NULLIF(COUNT(a.id)::numeric, 0) * 100,
					1
				), 0
			)::float8 AS percentage
		FROM subjects sub
		JOIN sessions ss ON ss.subject_id = sub.id
		LEFT JOIN attendance a ON a.session_id = ss.id AND a.student_id = $1
		WHERE sub.course_id = $2
		GROUP BY sub.id, sub.name
		ORDER BY sub.name
	`, studentID, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.SubjectStat
	for rows.Next() {
		var st model.SubjectStat
		if err := rows.Scan(&st.SubjectName, &st.TotalClasses, &st.Present, &st.Percentage); err != nil {
			return nil, err
		}
		res = append(res, st)
	}
	return res, rows.Err()
}
