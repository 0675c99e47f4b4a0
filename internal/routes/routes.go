package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kanban-board-api/internal/handlers"
	"kanban-board-api/internal/middleware"
	"kanban-board-api/internal/report"
	"kanban-board-api/internal/store"
)

// SetupRoutes builds the gin engine with all endpoints wired against the
// given database handle.
func SetupRoutes(db *gorm.DB) *gin.Engine {
	ginRouter := gin.Default()

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Report engine collaborators, constructed once and injected.
	labelResolver := store.NewUserLabelResolver(db)
	assembler := report.NewAssembler(store.NewTaskStore(db), labelResolver)
	reportHandler := handlers.NewReportHandler(assembler)
	userHandler := handlers.NewUserHandler(labelResolver)

	// Health check endpoint
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Kanban board API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/register", handlers.Register)
		api.POST("/login", handlers.Login)
	}

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		protectedRoutes.GET("/me", handlers.Me)

		// Task endpoints
		protectedRoutes.GET("/tasks", handlers.GetTasks)
		protectedRoutes.POST("/tasks", handlers.CreateTask)
		protectedRoutes.PATCH("/tasks/:id", handlers.UpdateTask)
		protectedRoutes.PATCH("/tasks/:id/archive", handlers.ArchiveTask)
		protectedRoutes.DELETE("/tasks/:id", handlers.DeleteTask)

		// Report endpoint
		protectedRoutes.GET("/report", reportHandler.Generate)

		// Board event stream
		protectedRoutes.GET("/ws", handlers.WebSocketHandler)
	}

	// Admin-only routes
	adminRoutes := protectedRoutes.Group("")
	adminRoutes.Use(middleware.RequireAdmin())
	{
		adminRoutes.GET("/users", userHandler.GetAllUsers)
		adminRoutes.PATCH("/users/:id/role", userHandler.UpdateUserRole)
	}

	return ginRouter
}
