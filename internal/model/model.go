package model

import "time"

// User is an authenticating account (admin or teacher).
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Roles recognised by the authorization checks.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// Attendance statuses accepted when marking.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// Course is static reference data created by seeding.
type Course struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Code         string    `json:"code"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	StudentCount int       `json:"student_count"`
}

// Subject belongs to a course and is taught by one user.
type Subject struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	CourseID    int       `json:"course_id"`
	TeacherID   int       `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`
	CourseName  string    `json:"course_name"`
	TeacherName string    `json:"teacher_name"`
}

// Session is a recurring weekly timetable slot, not a calendar date.
// Start and end times are stored as HH:MM strings so lexical order matches
// chronological order.
type Session struct {
	ID          int       `json:"id"`
	SubjectID   int       `json:"subject_id"`
	DayOfWeek   string    `json:"day_of_week"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
	Room        string    `json:"room"`
	CreatedAt   time.Time `json:"created_at"`
	SubjectName string    `json:"subject_name"`
	SubjectCode string    `json:"subject_code"`
	TeacherName string    `json:"teacher_name"`
	CourseName  string    `json:"course_name"`
}

// Student is enrolled in exactly one course.
type Student struct {
	ID                   int       `json:"id"`
	RollNumber           string    `json:"roll_number"`
	Name                 string    `json:"name"`
	Email                string    `json:"email"`
	CourseID             int       `json:"course_id"`
	CreatedAt            time.Time `json:"created_at"`
	CourseName           string    `json:"course_name,omitempty"`
	CourseCode           string    `json:"course_code,omitempty"`
	AttendancePercentage float64   `json:"attendance_percentage"`
}

// AttendanceRecord is unique per (student, session, date). Dates travel as
// YYYY-MM-DD strings end to end.
type AttendanceRecord struct {
	ID        int       `json:"id"`
	StudentID int       `json:"student_id"`
	SessionID int       `json:"session_id"`
	Date      string    `json:"date"`
	Status    string    `json:"status"`
	MarkedBy  int       `json:"marked_by"`
	Remarks   string    `json:"remarks"`
	CreatedAt time.Time `json:"created_at"`

	// Joined columns, populated per query shape.
	StudentName string `json:"student_name,omitempty"`
	RollNumber  string `json:"roll_number,omitempty"`
	SubjectName string `json:"subject_name,omitempty"`
	SubjectCode string `json:"subject_code,omitempty"`
	DayOfWeek   string `json:"day_of_week,omitempty"`
}

// RosterEntry is one student in a session's marking roster; attendance fields
// are nil until a record exists for the requested date.
type RosterEntry struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	RollNumber       string  `json:"roll_number"`
	AttendanceStatus *string `json:"attendance_status"`
	Remarks          *string `json:"remarks"`
}

// LowAttendanceRow is a dashboard top-5 entry.
type LowAttendanceRow struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	RollNumber string  `json:"roll_number"`
	Percentage float64 `json:"percentage"`
}

// LowAttendanceStudent is a reports row with full counts.
type LowAttendanceStudent struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	RollNumber   string  `json:"roll_number"`
	CourseName   string  `json:"course_name"`
	TotalClasses int     `json:"total_classes"`
	PresentCount int     `json:"present_count"`
	Percentage   float64 `json:"percentage"`
}

// DashboardStats is the /stats payload.
type DashboardStats struct {
	TotalStudents         int                `json:"totalStudents"`
	TotalCourses          int                `json:"totalCourses"`
	TotalSubjects         int                `json:"totalSubjects"`
	TodayPresent          int                `json:"todayPresent"`
	TodayTotal            int                `json:"todayTotal"`
	AvgAttendance         float64            `json:"avgAttendance"`
	LowAttendanceStudents []LowAttendanceRow `json:"lowAttendanceStudents"`
}

// SummaryBucket is one day of the attendance-summary report.
type SummaryBucket struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Total   int    `json:"total"`
}

// SubjectStat is one subject's slice of a student's attendance.
type SubjectStat struct {
	SubjectName  string  `json:"subject_name"`
	TotalClasses int     `json:"total_classes"`
	Present      int     `json:"present"`
	Percentage   float64 `json:"percentage"`
}

// ValidStatus reports whether s is an accepted attendance status.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusAbsent || s == StatusLate
}
