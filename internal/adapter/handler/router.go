package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/classpulse/backend/internal/infrastructure/http/middleware"
	"github.com/classpulse/backend/internal/usecase/auth"
	"github.com/classpulse/backend/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	authService       *auth.Service
	authHandler       *Auth
	courseHandler     *Course
	studentHandler    *Student
	lectureHandler    *Lecture
	attendanceHandler *Attendance
	engagementHandler *Engagement
	liveHandler       *Live
	snapshotHandler   *Snapshot
}

// NewRouter creates a new router with all handlers
func NewRouter(
	cfg *config.Config,
	authService *auth.Service,
	authHandler *Auth,
	courseHandler *Course,
	studentHandler *Student,
	lectureHandler *Lecture,
	attendanceHandler *Attendance,
	engagementHandler *Engagement,
	liveHandler *Live,
	snapshotHandler *Snapshot,
) *Router {
	return &Router{
		cfg:               cfg,
		authService:       authService,
		authHandler:       authHandler,
		courseHandler:     courseHandler,
		studentHandler:    studentHandler,
		lectureHandler:    lectureHandler,
		attendanceHandler: attendanceHandler,
		engagementHandler: engagementHandler,
		liveHandler:       liveHandler,
		snapshotHandler:   snapshotHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)
	rt.setupActivityRoutes(v1)
	rt.setupCourseRoutes(v1)
	rt.setupStudentRoutes(v1)
	rt.setupLectureRoutes(v1)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/register", rt.authHandler.Register)
	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.GET("/google/login", rt.authHandler.GoogleLogin)
	authGroup.GET("/google/callback", rt.authHandler.GoogleCallback)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.POST("/logout", rt.authHandler.Logout)

	authed := authGroup.Group("", middleware.EchoAuth(rt.authService))
	authed.GET("/me", rt.authHandler.Me)
	authed.POST("/logout-all", rt.authHandler.LogoutAll)
}

// setupActivityRoutes configures the session relay routes. These are
// unauthenticated: the presentation window carries no session.
func (rt *Router) setupActivityRoutes(g *echo.Group) {
	g.POST("/activity", rt.liveHandler.PostActivities)
	g.GET("/activity", rt.liveHandler.GetActivities)
	g.DELETE("/activity", rt.liveHandler.EndSession)
}

// setupCourseRoutes configures course and roster routes
func (rt *Router) setupCourseRoutes(g *echo.Group) {
	courseGroup := g.Group("/courses", middleware.EchoAuth(rt.authService))

	courseGroup.POST("", rt.courseHandler.Create)
	courseGroup.GET("", rt.courseHandler.List)
	courseGroup.GET("/:id", rt.courseHandler.Get)
	courseGroup.PUT("/:id", rt.courseHandler.Update)
	courseGroup.DELETE("/:id", rt.courseHandler.Delete)

	courseGroup.GET("/:id/students", rt.courseHandler.Roster)
	courseGroup.POST("/:id/students", rt.courseHandler.Enroll)
	courseGroup.DELETE("/:id/students/:studentId", rt.courseHandler.Unenroll)
}

// setupStudentRoutes configures roster student routes
func (rt *Router) setupStudentRoutes(g *echo.Group) {
	studentGroup := g.Group("/students", middleware.EchoAuth(rt.authService))

	studentGroup.POST("", rt.studentHandler.Create)
	studentGroup.GET("", rt.studentHandler.List)
	studentGroup.GET("/:id", rt.studentHandler.Get)
	studentGroup.PUT("/:id", rt.studentHandler.Update)
	studentGroup.DELETE("/:id", rt.studentHandler.Delete)
}

// setupLectureRoutes configures lecture CRUD, lifecycle, and the per-lecture
// live data routes
func (rt *Router) setupLectureRoutes(g *echo.Group) {
	lectureGroup := g.Group("/lectures", middleware.EchoAuth(rt.authService))

	lectureGroup.POST("", rt.lectureHandler.Create)
	lectureGroup.GET("", rt.lectureHandler.List)
	lectureGroup.GET("/:id", rt.lectureHandler.Get)
	lectureGroup.PUT("/:id", rt.lectureHandler.Update)
	lectureGroup.DELETE("/:id", rt.lectureHandler.Delete)

	// Lifecycle
	lectureGroup.POST("/:id/start", rt.lectureHandler.Start)
	lectureGroup.POST("/:id/pause", rt.lectureHandler.Pause)
	lectureGroup.POST("/:id/resume", rt.lectureHandler.Resume)
	lectureGroup.POST("/:id/end", rt.lectureHandler.End)

	// Per-lecture event feed
	lectureGroup.POST("/:id/events", rt.liveHandler.PostLectureEvent)
	lectureGroup.GET("/:id/events", rt.liveHandler.GetLectureEvents)

	// Detection frames
	lectureGroup.POST("/:id/frames", rt.liveHandler.IngestFrame)
	lectureGroup.POST("/:id/capture", rt.liveHandler.CaptureFrame)

	// Attendance
	lectureGroup.POST("/:id/attendance", rt.attendanceHandler.Record)
	lectureGroup.POST("/:id/attendance/bulk", rt.attendanceHandler.BulkRecord)
	lectureGroup.GET("/:id/attendance", rt.attendanceHandler.List)
	lectureGroup.GET("/:id/attendance/summary", rt.attendanceHandler.Summary)

	// Engagement
	lectureGroup.POST("/:id/engagement/actions", rt.engagementHandler.RecordAction)
	lectureGroup.GET("/:id/engagement", rt.engagementHandler.List)
	lectureGroup.GET("/:id/engagement/leaderboard", rt.engagementHandler.Leaderboard)

	// Snapshots
	if rt.snapshotHandler != nil {
		lectureGroup.POST("/:id/snapshots", rt.snapshotHandler.Upload)
		lectureGroup.GET("/:id/snapshots", rt.snapshotHandler.List)
	} else {
		lectureGroup.POST("/:id/snapshots", rt.notImplemented)
		lectureGroup.GET("/:id/snapshots", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "This endpoint is not available",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
