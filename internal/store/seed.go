package store

import (
	"context"
	"database/sql"
	"fmt"

	"attendease/internal/auth"
)

// SeedDemo populates demo users, courses, subjects, timetable sessions and
// students inside one transaction. Every insert is conflict-safe, so seeding
// is idempotent and can run against a populated database.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	users := []struct {
		username, password, fullName, role string
	}{
		{"admin", "admin123", "System Admin", "admin"},
		{"teacher", "teacher123", "John Teacher", "teacher"},
	}
	for _, u := range users {
		digest, err := auth.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash password for %s: %w", u.username, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO users (username, password_hash, full_name, role)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (username) DO NOTHING
		`, u.username, digest, u.fullName, u.role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.username, err)
		}
	}

	courses := []struct {
		name, code, description string
	}{
		{"B.Tech Computer Science", "BTCS", "Computer Science and Engineering"},
		{"B.Tech Information Technology", "BTIT", "Information Technology"},
		{"B.Tech Electronics", "BTEC", "Electronics and Communication"},
	}
	for _, c := range courses {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO courses (name, code, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (code) DO NOTHING
		`, c.name, c.code, c.description)
		if err != nil {
			return fmt.Errorf("seed course %s: %w", c.code, err)
		}
	}

	var teacherID int
	if err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE username = 'teacher'`).Scan(&teacherID); err != nil {
		return fmt.Errorf("lookup seed teacher: %w", err)
	}
	var btcsID int
	if err := tx.QueryRowContext(ctx, `SELECT id FROM courses WHERE code = 'BTCS'`).Scan(&btcsID); err != nil {
		return fmt.Errorf("lookup seed course: %w", err)
	}

	subjects := []struct {
		name, code string
	}{
		{"Data Structures and Algorithms I", "DSA-I"},
		{"Database Systems", "DBS"},
		{"Operating Systems", "OS"},
	}
	for _, s := range subjects {
		var subjectID int
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM subjects WHERE code = $1 AND course_id = $2
		`, s.code, btcsID).Scan(&subjectID)
		if err == sql.ErrNoRows {
			err = tx.QueryRowContext(ctx, `
				INSERT INTO subjects (name, code, course_id, teacher_id)
				VALUES ($1, $2, $3, $4)
				RETURNING id
			`, s.name, s.code, btcsID, teacherID).Scan(&subjectID)
		}
		if err != nil {
			return fmt.Errorf("seed subject %s: %w", s.code, err)
		}
		if err := seedSessions(ctx, tx, subjectID, s.code); err != nil {
			return err
		}
	}

	students := []struct {
		name, roll, email string
	}{
		{"Aarav Sharma", "CS2024001", "aarav@student.edu"},
		{"Priya Patel", "CS2024002", "priya@student.edu"},
		{"Rahul Kumar", "CS2024003", "rahul@student.edu"},
		{"Sneha Gupta", "CS2024004", "sneha@student.edu"},
		{"Vikram Singh", "CS2024005", "vikram@student.edu"},
		{"Ananya Reddy", "CS2024006", "ananya@student.edu"},
		{"Arjun Nair", "CS2024007", "arjun@student.edu"},
		{"Kavya Iyer", "CS2024008", "kavya@student.edu"},
		{"Rohan Mehta", "CS2024009", "rohan@student.edu"},
		{"Ishita Joshi", "CS2024010", "ishita@student.edu"},
	}
	for _, s := range students {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO students (roll_number, name, email, course_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (roll_number) DO NOTHING
		`, s.roll, s.name, s.email, btcsID)
		if err != nil {
			return fmt.Errorf("seed student %s: %w", s.roll, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}

var seedSlots = map[string][]struct {
	day, start, end, room string
}{
	"DSA-I": {{"MON", "09:00", "10:00", "A-101"}, {"WED", "11:00", "12:00", "A-101"}},
	"DBS":   {{"TUE", "10:00", "11:00", "B-204"}, {"THU", "09:00", "10:00", "B-204"}},
	"OS":    {{"FRI", "14:00", "15:00", "A-102"}, {"SAT", "10:00", "11:00", "A-102"}},
}

func seedSessions(ctx context.Context, tx *sql.Tx, subjectID int, subjectCode string) error {
	for _, slot := range seedSlots[subjectCode] {
		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM sessions
				WHERE subject_id = $1 AND day_of_week = $2 AND start_time = $3
			)
		`, subjectID, slot.day, slot.start).Scan(&exists)
		if err != nil {
			return fmt.Errorf("check session %s %s: %w", subjectCode, slot.day, err)
		}
		if exists {
			continue
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO sessions (subject_id, day_of_week, start_time, end_time, room)
			VALUES ($1, $2, $3, $4, $5)
		`, subjectID, slot.day, slot.start, slot.end, slot.room)
		if err != nil {
			return fmt.Errorf("seed session %s %s: %w", subjectCode, slot.day, err)
		}
	}
	return nil
}
