package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"attendease/internal/model"
)

// ListCourses returns every course with its student count.
func (h *Handler) ListCourses(c *gin.Context) {
	list, err := h.catalog.ListCourses(c.Request.Context())
	if err != nil {
		internalError(c, err)
		return
	}
	if list == nil {
		list = []model.Course{}
	}
	c.JSON(http.StatusOK, list)
}

// ListSubjects returns subjects, optionally filtered by course.
func (h *Handler) ListSubjects(c *gin.Context) {
	list, err := h.catalog.ListSubjects(c.Request.Context(), c.Query("courseId"))
	if err != nil {
		internalError(c, err)
		return
	}
	if list == nil {
		list = []model.Subject{}
	}
	c.JSON(http.StatusOK, list)
}

// Timetable returns sessions ordered by day then start time, optionally
// filtered by day and/or course.
func (h *Handler) Timetable(c *gin.Context) {
	list, err := h.catalog.ListTimetable(c.Request.Context(), c.Query("day"), c.Query("courseId"))
	if err != nil {
		internalError(c, err)
		return
	}
	if list == nil {
		list = []model.Session{}
	}
	c.JSON(http.StatusOK, list)
}
