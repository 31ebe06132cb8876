// Package handler wires the HTTP surface to the SQL-backed stores. Handlers
// depend on small interfaces so tests can substitute mocks.
package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendease/internal/attendance"
	"attendease/internal/model"
	"attendease/internal/students"
)

// UserStore resolves login credentials.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// StudentStore covers the student roster operations.
type StudentStore interface {
	List(ctx context.Context, f students.Filter) ([]model.Student, error)
	Create(ctx context.Context, s model.Student) (model.Student, error)
	Delete(ctx context.Context, id int) error
	Import(ctx context.Context, batch []model.Student) (int, error)
	Get(ctx context.Context, id int) (*model.Student, error)
}

// CatalogStore reads courses, subjects and the timetable.
type CatalogStore interface {
	ListCourses(ctx context.Context) ([]model.Course, error)
	ListSubjects(ctx context.Context, courseID string) ([]model.Subject, error)
	ListTimetable(ctx context.Context, day, courseID string) ([]model.Session, error)
}

// AttendanceStore serves the attendance read shapes.
type AttendanceStore interface {
	ByStudent(ctx context.Context, studentID int) ([]model.AttendanceRecord, error)
	BySessionDate(ctx context.Context, sessionID int, date string) ([]model.AttendanceRecord, error)
	Recent(ctx context.Context) ([]model.AttendanceRecord, error)
	SessionRoster(ctx context.Context, sessionID int, date string) ([]model.RosterEntry, error)
}

// AttendanceMarker applies validated marking batches.
type AttendanceMarker interface {
	Mark(ctx context.Context, sessionID int, date string, markedBy int, records []attendance.MarkRecord) (int, error)
}

// ReportStore computes dashboard and report aggregates.
type ReportStore interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	LowAttendance(ctx context.Context, threshold float64) ([]model.LowAttendanceStudent, error)
	AttendanceSummary(ctx context.Context, courseID string) ([]model.SummaryBucket, error)
	StudentSubjectStats(ctx context.Context, studentID, courseID int) ([]model.SubjectStat, error)
}

// TokenConfig carries what Login needs to issue session tokens.
type TokenConfig struct {
	SigningKey string
	Issuer     string
	TTL        time.Duration
}

// Handler holds every store the HTTP surface touches.
type Handler struct {
	users      UserStore
	students   StudentStore
	catalog    CatalogStore
	attendance AttendanceStore
	marker     AttendanceMarker
	reports    ReportStore
	token      TokenConfig
}

// New creates a handler.
func New(users UserStore, students StudentStore, catalog CatalogStore,
	att AttendanceStore, marker AttendanceMarker, reports ReportStore, token TokenConfig) *Handler {
	return &Handler{
		users:      users,
		students:   students,
		catalog:    catalog,
		attendance: att,
		marker:     marker,
		reports:    reports,
		token:      token,
	}
}

// internalError answers 500 with the raw error message in the details field,
// matching the observed client contract.
func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error", "details": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
