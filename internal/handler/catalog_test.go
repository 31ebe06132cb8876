package handler_test

import (
	"net/http"
	"testing"

	"attendease/internal/model"
)

func TestListCourses(t *testing.T) {
	f := newFixture(t)
	f.catalog.courses = []model.Course{
		{ID: 1, Name: "B.Tech Computer Science", Code: "BTCS", StudentCount: 10},
	}

	w := f.do(t, http.MethodGet, "/api/courses", teacherToken(t), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var list []model.Course
	decodeJSON(t, w, &list)
	if len(list) != 1 || list[0].Code != "BTCS" || list[0].StudentCount != 10 {
		t.Errorf("list = %+v", list)
	}
}

func TestListSubjectsCourseFilter(t *testing.T) {
	f := newFixture(t)
	f.do(t, http.MethodGet, "/api/subjects?courseId=1", teacherToken(t), nil)
	if f.catalog.lastCourseID != "1" {
		t.Errorf("courseId = %q, want 1", f.catalog.lastCourseID)
	}
}

func TestTimetableFilters(t *testing.T) {
	f := newFixture(t)
	f.catalog.sessions = []model.Session{
		{ID: 3, DayOfWeek: "MON", StartTime: "09:00", EndTime: "10:00", SubjectCode: "DSA-I"},
	}

	w := f.do(t, http.MethodGet, "/api/timetable?day=MON&courseId=1", teacherToken(t), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if f.catalog.lastDay != "MON" || f.catalog.lastCourseID != "1" {
		t.Errorf("day = %q courseId = %q", f.catalog.lastDay, f.catalog.lastCourseID)
	}
	var list []model.Session
	decodeJSON(t, w, &list)
	if len(list) != 1 || list[0].SubjectCode != "DSA-I" {
		t.Errorf("list = %+v", list)
	}
}
