package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"attendease/internal/model"
	"attendease/internal/students"
)

// ListStudents supports an optional free-text search (name or roll number)
// or a course filter, and always includes the attendance percentage.
func (h *Handler) ListStudents(c *gin.Context) {
	filter := students.Filter{
		CourseID: c.Query("courseId"),
		Search:   c.Query("search"),
	}
	list, err := h.students.List(c.Request.Context(), filter)
	if err != nil {
		internalError(c, err)
		return
	}
	if list == nil {
		list = []model.Student{}
	}
	c.JSON(http.StatusOK, list)
}

type createStudentRequest struct {
	RollNumber string `json:"rollNumber" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email"`
	CourseID   int    `json:"courseId" binding:"required"`
}

// CreateStudent inserts one student. Admin only (enforced by middleware).
func (h *Handler) CreateStudent(c *gin.Context) {
	var req createStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	created, err := h.students.Create(c.Request.Context(), model.Student{
		RollNumber: req.RollNumber,
		Name:       req.Name,
		Email:      req.Email,
		CourseID:   req.CourseID,
	})
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

// DeleteStudent removes a student and their attendance rows. Admin only.
func (h *Handler) DeleteStudent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid student id")
		return
	}
	if err := h.students.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, students.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "student not found"})
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

type importStudentsRequest struct {
	Students []createStudentRequest `json:"students" binding:"required"`
}

// ImportStudents bulk-inserts students, silently skipping duplicate roll
// numbers; the reported count covers only rows actually inserted. Admin only.
func (h *Handler) ImportStudents(c *gin.Context) {
	var req importStudentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	batch := make([]model.Student, 0, len(req.Students))
	for _, s := range req.Students {
		batch = append(batch, model.Student{
			RollNumber: s.RollNumber,
			Name:       s.Name,
			Email:      s.Email,
			CourseID:   s.CourseID,
		})
	}
	imported, err := h.students.Import(c.Request.Context(), batch)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imported": imported})
}
