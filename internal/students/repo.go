package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"attendease/internal/model"
)

// Repository persists students in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Filter narrows a student listing. Search wins over CourseID when both are
// set; CourseID "all" means no course filter.
type Filter struct {
	CourseID string
	Search   string
}

// percentageExpr computes a student's present percentage over all marked
// records, 0 when nothing is marked yet.
const percentageExpr = `COALESCE(
			ROUND(
				COUNT(*) FILTER (WHERE a.status = 'present')::numeric /
				NULLIF(COUNT(a.id)::numeric, 0) * 100,
				1
			), 0
		)::float8`

// List returns students with their course and attendance percentage, ordered
// by roll number.
func (r *Repository) List(ctx context.Context, f Filter) ([]model.Student, error) {
	query := `
		SELECT s.id, s.roll_number, s.name, s.email, s.course_id, s.created_at,
			COALESCE(c.name, '') AS course_name,
			COALESCE(c.code, '') AS course_code,
			` + percentageExpr + ` AS attendance_percentage
		FROM students s
		LEFT JOIN courses c ON s.course_id = c.id
		LEFT JOIN attendance a ON s.id = a.student_id`
	var args []any
	switch {
	case f.Search != "":
		query += `
		WHERE LOWER(s.name) LIKE LOWER($1) OR LOWER(s.roll_number) LIKE LOWER($1)`
		args = append(args, "%"+f.Search+"%")
	case f.CourseID != "" && f.CourseID != "all":
		query += `
		WHERE s.course_id = $1`
		args = append(args, f.CourseID)
	}
	query += `
		GROUP BY s.id, c.name, c.code
		ORDER BY s.roll_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []model.Student
	for rows.Next() {
		var s model.Student
		if err := rows.Scan(&s.ID, &s.RollNumber, &s.Name, &s.Email, &s.CourseID, &s.CreatedAt,
			&s.CourseName, &s.CourseCode, &s.AttendancePercentage); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}

// Create inserts a student and returns the stored row.
func (r *Repository) Create(ctx context.Context, s model.Student) (model.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO students (roll_number, name, email, course_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, s.RollNumber, s.Name, s.Email, s.CourseID)
	if err := row.Scan(&s.ID, &s.CreatedAt); err != nil {
		return model.Student{}, err
	}
	return s, nil
}

// Delete removes a student together with their attendance rows. Both deletes
// run in one transaction so a failure never leaves orphaned attendance.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendance WHERE student_id = $1`, id); err != nil {
		return fmt.Errorf("delete attendance for student %d: %w", id, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return tx.Commit()
}

// ErrNotFound is returned when the targeted student does not exist.
var ErrNotFound = errors.New("student not found")

// Import inserts rows one by one, skipping roll-number duplicates silently.
// The returned count includes only rows actually inserted.
func (r *Repository) Import(ctx context.Context, batch []model.Student) (int, error) {
	imported := 0
	for _, s := range batch {
		res, err := r.db.ExecContext(ctx, `
			INSERT INTO students (roll_number, name, email, course_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (roll_number) DO NOTHING
		`, s.RollNumber, s.Name, s.Email, s.CourseID)
		if err != nil {
			return imported, err
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			imported++
		}
	}
	return imported, nil
}

// Get returns one student with the course name joined, or nil when absent.
func (r *Repository) Get(ctx context.Context, id int) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.roll_number, s.name, s.email, s.course_id, s.created_at,
			COALESCE(c.name, '') AS course_name
		FROM students s
		LEFT JOIN courses c ON s.course_id = c.id
		WHERE s.id = $1
	`, id)
	var s model.Student
	if err := row.Scan(&s.ID, &s.RollNumber, &s.Name, &s.Email, &s.CourseID, &s.CreatedAt, &s.CourseName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}
