package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendease/internal/attendance"
	"attendease/internal/auth"
	"attendease/internal/model"
)

// AttendanceDispatch is the legacy multi-shape endpoint: the response shape
// depends on which query parameters are present. New clients should call the
// explicit sub-resources it delegates to.
func (h *Handler) AttendanceDispatch(c *gin.Context) {
	switch {
	case c.Query("studentId") != "":
		h.AttendanceByStudent(c)
	case c.Query("sessionId") != "" && c.Query("date") != "":
		h.AttendanceBySession(c)
	default:
		h.AttendanceRecent(c)
	}
}

// AttendanceByStudent returns one student's history, newest first, capped
// at 50 records.
func (h *Handler) AttendanceByStudent(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Query("studentId"))
	if err != nil {
		badRequest(c, "studentId required")
		return
	}
	records, err := h.attendance.ByStudent(c.Request.Context(), studentID)
	if err != nil {
		internalError(c, err)
		return
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// AttendanceBySession returns the marked records of one session on one date.
func (h *Handler) AttendanceBySession(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Query("sessionId"))
	if err != nil {
		badRequest(c, "sessionId required")
		return
	}
	date := c.Query("date")
	if date == "" {
		badRequest(c, "date required")
		return
	}
	records, err := h.attendance.BySessionDate(c.Request.Context(), sessionID, date)
	if err != nil {
		internalError(c, err)
		return
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	c.JSON(http.StatusOK, records)
}

// AttendanceRecent returns the global activity feed, capped at 100 records.
func (h *Handler) AttendanceRecent(c *gin.Context) {
	records, err := h.attendance.Recent(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	if records == nil {
		records = []model.AttendanceRecord{}
	}
	c.JSON(http.StatusOK, records)
}

type markRequest struct {
	SessionID int                     `json:"sessionId" binding:"required"`
	Date      string                  `json:"date" binding:"required"`
	Records   []attendance.MarkRecord `json:"records" binding:"required"`
}

// MarkAttendance applies a batch of per-student statuses for one session and
// date. Each record is an upsert on (student, session, date), so re-marking
// overwrites. The principal becomes the marker on every record.
func (h *Handler) MarkAttendance(c *gin.Context) {
	var req markRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	claims, ok := auth.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	count, err := h.marker.Mark(c.Request.Context(), req.SessionID, req.Date, claims.UserID, req.Records)
	if err != nil {
		if errors.Is(err, attendance.ErrInvalid) {
			badRequest(c, err.Error())
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": count})
}

// SessionStudents returns the marking roster: every student of the course
// owning the session, with any existing record for that date joined in.
func (h *Handler) SessionStudents(c *gin.Context) {
	sessionID, err := strconv.Atoi(c.Query("sessionId"))
	if err != nil {
		badRequest(c, "sessionId required")
		return
	}
	date := c.Query("date")
	if date == "" {
		badRequest(c, "date required")
		return
	}
	roster, err := h.attendance.SessionRoster(c.Request.Context(), sessionID, date)
	if err != nil {
		internalError(c, err)
		return
	}
	if roster == nil {
		roster = []model.RosterEntry{}
	}
	c.JSON(http.StatusOK, roster)
}
