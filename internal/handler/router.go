package handler

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Handlers groups every HTTP handler served by the API.
type Handlers struct {
	Auth       *AuthHandler
	Class      *ClassHandler
	Student    *StudentHandler
	DailyState *DailyStateHandler
	Note       *NoteHandler
	Behavior   *BehaviorHandler
	Journal    *JournalHandler
	Report     *ReportHandler
	History    *HistoryHandler
	Cleanup    *CleanupHandler
	Health     *HealthHandler
}

// gatedPages maps page routes to the HTML files served behind the session.
var gatedPages = map[string]string{
	"/dashboard":        "dashboard.html",
	"/jurnal-kelas":     "jurnal-kelas.html",
	"/riwayat":          "riwayat.html",
	"/catatan-perilaku": "catatan-perilaku.html",
}

// Register mounts the pages and API routes. Everything except login, logout,
// probes and the public static files sits behind session.
func Register(r *gin.Engine, h Handlers, session gin.HandlerFunc, staticDir string) {
	r.GET("/health", h.Health.Health)
	r.GET("/ready", h.Health.Ready)
	r.GET("/metrics", h.Health.Prometheus)

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login.html")
	})
	for route, file := range gatedPages {
		page := filepath.Join(staticDir, file)
		r.GET(route, session, func(c *gin.Context) {
			c.File(page)
		})
	}

	api := r.Group("/api")
	api.POST("/login", h.Auth.Login)
	api.POST("/logout", h.Auth.Logout)

	gated := api.Group("", session)
	gated.GET("/initial-data", h.DailyState.InitialData)

	gated.GET("/classes", h.Class.List)
	gated.POST("/classes", h.Class.Create)
	gated.PUT("/classes/:id", h.Class.Update)
	gated.DELETE("/classes/:id", h.Class.Delete)

	gated.GET("/students", h.DailyState.List)
	gated.POST("/students", h.Student.Create)
	gated.POST("/students/bulk", h.Student.Bulk)
	gated.PUT("/students/:id", h.Student.Update)
	gated.DELETE("/students/:id", h.Student.Delete)

	gated.PUT("/student/:id/grade", h.DailyState.SetGrade)
	gated.PUT("/student/:id/status", h.DailyState.SetStatus)
	gated.GET("/student/:id/notes", h.Note.List)
	gated.POST("/student/:id/note", h.Note.Create)
	gated.DELETE("/notes/:id", h.Note.Delete)

	gated.GET("/behavior-notes", h.Behavior.List)
	gated.POST("/behavior-notes", h.Behavior.Create)
	gated.GET("/behavior-notes/stats", h.Behavior.Stats)
	gated.GET("/behavior-notes/:id", h.Behavior.Get)
	gated.PUT("/behavior-notes/:id", h.Behavior.Update)
	gated.DELETE("/behavior-notes/:id", h.Behavior.Delete)

	gated.GET("/journals", h.Journal.List)
	gated.POST("/journals", h.Journal.Create)
	gated.PUT("/journals/:id", h.Journal.Update)
	gated.DELETE("/journals/:id", h.Journal.Delete)

	gated.GET("/report/journals-monthly", h.Journal.Monthly)
	gated.GET("/report/excel", h.Report.Monthly)
	gated.GET("/history-summary", h.History.Summary)
	gated.DELETE("/cleanup-daily-data", h.Cleanup.Cleanup)

	if staticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(gin.Dir(staticDir, false))))
	}
}
