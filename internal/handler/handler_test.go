package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"attendease/internal/attendance"
	"attendease/internal/auth"
	"attendease/internal/handler"
	"attendease/internal/model"
	"attendease/internal/students"
)

const (
	testKey    = "test-key"
	testIssuer = "attendease"
)

// --- mock stores ---

type mockUsers struct {
	user *model.User
	err  error
}

func (m *mockUsers) GetByUsername(_ context.Context, _ string) (*model.User, error) {
	return m.user, m.err
}

type mockStudents struct {
	list       []model.Student
	lastFilter students.Filter
	created    model.Student
	createErr  error
	deleteErr  error
	deletedID  int
	imported   int
	lastBatch  []model.Student
	student    *model.Student
}

func (m *mockStudents) List(_ context.Context, f students.Filter) ([]model.Student, error) {
	m.lastFilter = f
	return m.list, nil
}

func (m *mockStudents) Create(_ context.Context, s model.Student) (model.Student, error) {
	if m.createErr != nil {
		return model.Student{}, m.createErr
	}
	m.created = s
	s.ID = 42
	return s, nil
}

func (m *mockStudents) Delete(_ context.Context, id int) error {
	m.deletedID = id
	return m.deleteErr
}

func (m *mockStudents) Import(_ context.Context, batch []model.Student) (int, error) {
	m.lastBatch = batch
	return m.imported, nil
}

func (m *mockStudents) Get(_ context.Context, _ int) (*model.Student, error) {
	return m.student, nil
}

type mockCatalog struct {
	courses      []model.Course
	subjects     []model.Subject
	sessions     []model.Session
	lastDay      string
	lastCourseID string
}

func (m *mockCatalog) ListCourses(_ context.Context) ([]model.Course, error) {
	return m.courses, nil
}

func (m *mockCatalog) ListSubjects(_ context.Context, courseID string) ([]model.Subject, error) {
	m.lastCourseID = courseID
	return m.subjects, nil
}

func (m *mockCatalog) ListTimetable(_ context.Context, day, courseID string) ([]model.Session, error) {
	m.lastDay = day
	m.lastCourseID = courseID
	return m.sessions, nil
}

type mockAttendance struct {
	records   []model.AttendanceRecord
	roster    []model.RosterEntry
	lastCall  string
	studentID int
	sessionID int
	date      string
}

func (m *mockAttendance) ByStudent(_ context.Context, studentID int) ([]model.AttendanceRecord, error) {
	m.lastCall = "byStudent"
	m.studentID = studentID
	return m.records, nil
}

func (m *mockAttendance) BySessionDate(_ context.Context, sessionID int, date string) ([]model.AttendanceRecord, error) {
	m.lastCall = "bySession"
	m.sessionID = sessionID
	m.date = date
	return m.records, nil
}

func (m *mockAttendance) Recent(_ context.Context) ([]model.AttendanceRecord, error) {
	m.lastCall = "recent"
	return m.records, nil
}

func (m *mockAttendance) SessionRoster(_ context.Context, sessionID int, date string) ([]model.RosterEntry, error) {
	m.lastCall = "roster"
	m.sessionID = sessionID
	m.date = date
	return m.roster, nil
}

type mockMarker struct {
	count     int
	err       error
	sessionID int
	date      string
	markedBy  int
	records   []attendance.MarkRecord
}

func (m *mockMarker) Mark(_ context.Context, sessionID int, date string, markedBy int, records []attendance.MarkRecord) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.sessionID = sessionID
	m.date = date
	m.markedBy = markedBy
	m.records = records
	return m.count, nil
}

type mockReports struct {
	stats        *model.DashboardStats
	low          []model.LowAttendanceStudent
	threshold    float64
	summary      []model.SummaryBucket
	lastCourseID string
	subjectStats []model.SubjectStat
	studentID    int
	courseID     int
}

func (m *mockReports) DashboardStats(_ context.Context) (*model.DashboardStats, error) {
	return m.stats, nil
}

func (m *mockReports) LowAttendance(_ context.Context, threshold float64) ([]model.LowAttendanceStudent, error) {
	m.threshold = threshold
	return m.low, nil
}

func (m *mockReports) AttendanceSummary(_ context.Context, courseID string) ([]model.SummaryBucket, error) {
	m.lastCourseID = courseID
	return m.summary, nil
}

func (m *mockReports) StudentSubjectStats(_ context.Context, studentID, courseID int) ([]model.SubjectStat, error) {
	m.studentID = studentID
	m.courseID = courseID
	return m.subjectStats, nil
}

// --- fixture ---

type fixture struct {
	users      *mockUsers
	students   *mockStudents
	catalog    *mockCatalog
	attendance *mockAttendance
	marker     *mockMarker
	reports    *mockReports
	router     *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fixture{
		users:      &mockUsers{},
		students:   &mockStudents{},
		catalog:    &mockCatalog{},
		attendance: &mockAttendance{},
		marker:     &mockMarker{},
		reports:    &mockReports{},
	}
	h := handler.New(f.users, f.students, f.catalog, f.attendance, f.marker, f.reports,
		handler.TokenConfig{SigningKey: testKey, Issuer: testIssuer, TTL: time.Hour})
	f.router = gin.New()
	handler.Register(f.router, h,
		auth.RequireAuth(testKey, testIssuer),
		auth.RequireAdmin())
	return f
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := auth.Issue(1, "admin", "admin", "System Admin", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	return token
}

func teacherToken(t *testing.T) string {
	t.Helper()
	token, err := auth.Issue(2, "teacher", "teacher", "John Teacher", testIssuer, testKey, time.Hour)
	if err != nil {
		t.Fatalf("issue teacher token: %v", err)
	}
	return token
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// --- cross-cutting behavior ---

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newFixture(t)
	paths := []string{
		"/api/stats", "/api/students", "/api/courses", "/api/subjects",
		"/api/timetable", "/api/attendance", "/api/reports/low-attendance",
	}
	for _, path := range paths {
		if w := f.do(t, http.MethodGet, path, "", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status = %d, want 401", path, w.Code)
		}
	}
}

func TestUnmatchedRouteEchoesPath(t *testing.T) {
	f := newFixture(t)
	w := f.do(t, http.MethodGet, "/api/nope", teacherToken(t), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
		Path  string `json:"path"`
	}
	decodeJSON(t, w, &resp)
	if resp.Error != "Not found" || resp.Path != "/api/nope" {
		t.Errorf("body = %+v, want Not found with path echoed", resp)
	}
}
