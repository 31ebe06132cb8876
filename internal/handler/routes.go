package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Register mounts the API routes. Everything except /api/auth/* sits behind
// the auth middleware; write routes on students additionally require admin.
func Register(r *gin.Engine, h *Handler, authMW, adminMW gin.HandlerFunc) {
	api := r.Group("/api")

	api.POST("/auth/login", h.Login)

	protected := api.Group("", authMW)
	{
		protected.GET("/stats", h.Stats)

		protected.GET("/students", h.ListStudents)
		protected.POST("/students", adminMW, h.CreateStudent)
		protected.DELETE("/students/:id", adminMW, h.DeleteStudent)
		protected.POST("/students/import", adminMW, h.ImportStudents)

		protected.GET("/courses", h.ListCourses)
		protected.GET("/subjects", h.ListSubjects)
		protected.GET("/timetable", h.Timetable)

		// Legacy shape-by-query endpoint plus the explicit sub-resources it
		// forwards to.
		protected.GET("/attendance", h.AttendanceDispatch)
		protected.GET("/attendance/by-student", h.AttendanceByStudent)
		protected.GET("/attendance/by-session", h.AttendanceBySession)
		protected.GET("/attendance/recent", h.AttendanceRecent)
		protected.POST("/attendance/mark", h.MarkAttendance)
		protected.GET("/attendance/session-students", h.SessionStudents)

		protected.GET("/reports/low-attendance", h.LowAttendance)
		protected.GET("/reports/attendance-summary", h.AttendanceSummary)
		protected.GET("/reports/student-stats", h.StudentStats)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found", "path": c.Request.URL.Path})
	})
}
