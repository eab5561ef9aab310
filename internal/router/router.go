package router

import (
	"time"

	"github.com/Louis-BT/Student-Portal/internal/config"
	"github.com/Louis-BT/Student-Portal/internal/handler"
	"github.com/Louis-BT/Student-Portal/internal/middleware"
	"github.com/Louis-BT/Student-Portal/internal/session"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires handlers, guards and middleware onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, sessions session.Store) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middleware.RequireAuth(cfg.Session, sessions, db)
	requireAdmin := middleware.RequireAdmin(cfg.Session, sessions, db)
	audit := middleware.Audit(db)

	authHandler := handler.NewAuthHandler(db, sessions, cfg)
	profileHandler := handler.NewProfileHandler(db)
	leadershipHandler := handler.NewLeadershipHandler(db)
	libraryHandler := handler.NewLibraryHandler(db, cfg.Upload.Dir)
	newsHandler := handler.NewNewsHandler(db, cfg.News.FeedLimit)
	chatHandler := handler.NewChatHandler(db)
	supportHandler := handler.NewSupportHandler(db)
	adminHandler := handler.NewAdminHandler(db, sessions)

	// ====== auth (no guard) ======
	auth := r.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/forgot-password", authHandler.ForgotPassword)

	api := r.Group("/api")

	// public reads
	api.GET("/library/resources", libraryHandler.ListResources)
	api.GET("/news", newsHandler.List)
	api.GET("/chat", chatHandler.List)

	// login required
	protected := api.Group("")
	protected.Use(requireAuth, audit)

	protected.GET("/user/profile", profileHandler.GetProfile)
	protected.POST("/user/update-profile", profileHandler.UpdateProfile)
	protected.POST("/user/save-gpa", profileHandler.SaveGPA)

	protected.POST("/leadership/apply", leadershipHandler.Apply)
	protected.GET("/leadership/status", leadershipHandler.Status)

	protected.POST("/library/upload", libraryHandler.Upload)
	protected.POST("/chat", chatHandler.Post)
	protected.POST("/support/create", supportHandler.Create)

	// admin only; the guard authenticates on its own
	admin := api.Group("/admin")
	admin.Use(requireAdmin, audit)

	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.DELETE("/users/:id", adminHandler.DeleteUser)
	admin.GET("/leadership/pending", adminHandler.PendingApplications)
	admin.POST("/leadership-review", adminHandler.LeadershipReview)
	admin.GET("/resources", adminHandler.ListResources)
	admin.POST("/resources/approve", adminHandler.ApproveResource)
	admin.DELETE("/resources/:id", adminHandler.DeleteResource)
	admin.POST("/broadcast", adminHandler.Broadcast)
	admin.GET("/support", adminHandler.ListSupportTickets)
	admin.GET("/audit", adminHandler.ListAuditLog)
	admin.DELETE("/reset-system", adminHandler.ResetSystem)

	return r
}
