package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendease/internal/model"
)

// Stats serves the dashboard aggregates.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.reports.DashboardStats(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// LowAttendance lists students below the percentage threshold (default 75).
func (h *Handler) LowAttendance(c *gin.Context) {
	threshold, err := strconv.ParseFloat(c.DefaultQuery("threshold", "75"), 64)
	if err != nil {
		badRequest(c, "invalid threshold")
		return
	}
	list, err := h.reports.LowAttendance(c.Request.Context(), threshold)
	if err != nil {
		internalError(c, err)
		return
	}
	if list == nil {
		list = []model.LowAttendanceStudent{}
	}
	c.JSON(http.StatusOK, list)
}

// AttendanceSummary serves the per-day buckets over the last 30 recorded
// days, optionally scoped to a course.
func (h *Handler) AttendanceSummary(c *gin.Context) {
	buckets, err := h.reports.AttendanceSummary(c.Request.Context(), c.Query("courseId"))
	if err != nil {
		internalError(c, err)
		return
	}
	if buckets == nil {
		buckets = []model.SummaryBucket{}
	}
	c.JSON(http.StatusOK, buckets)
}

// StudentStats serves one student's per-subject breakdown across their
// course.
func (h *Handler) StudentStats(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Query("studentId"))
	if err != nil {
		badRequest(c, "studentId required")
		return
	}
	student, err := h.students.Get(c.Request.Context(), studentID)
	if err != nil {
		internalError(c, err)
		return
	}
	if student == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
		return
	}
	stats, err := h.reports.StudentSubjectStats(c.Request.Context(), student.ID, student.CourseID)
	if err != nil {
		internalError(c, err)
		return
	}
	if stats == nil {
		stats = []model.SubjectStat{}
	}
	c.JSON(http.StatusOK, gin.H{"student": student, "subjectStats": stats})
}
