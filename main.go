package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"ts-knowledge-base/config"
	"ts-knowledge-base/handlers"
	"ts-knowledge-base/helper"
	"ts-knowledge-base/middleware"
	"ts-knowledge-base/models"
	"ts-knowledge-base/repositories"
	"ts-knowledge-base/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize database
	db := config.InitDB()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	departmentRepo := repositories.NewDepartmentRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	entryRepo := repositories.NewEntryRepository(db)
	revisionRepo := repositories.NewEntryRevisionRepository(db)
	voteRepo := repositories.NewVoteRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	commentVoteRepo := repositories.NewCommentVoteRepository(db)
	attachmentRepo := repositories.NewAttachmentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo, departmentRepo)
	departmentService := services.NewDepartmentService(departmentRepo, userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	tagService := services.NewTagService(tagRepo)
	entryService := services.NewEntryService(db, entryRepo, revisionRepo, categoryRepo, tagRepo)
	voteService := services.NewVoteService(db, entryRepo, voteRepo, commentRepo, commentVoteRepo)
	commentService := services.NewCommentService(db, entryRepo, commentRepo)
	attachmentService := services.NewAttachmentService(attachmentRepo, entryRepo, config.LoadS3Config())

	// Initialize handlers
	httpHelper := &helper.HTTPHelper{}
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	userHandler := handlers.NewUserHandler(userService, departmentService, httpHelper)
	departmentHandler := handlers.NewDepartmentHandler(departmentService, userService, httpHelper)
	categoryHandler := handlers.NewCategoryHandler(categoryService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)
	entryHandler := handlers.NewEntryHandler(entryService, commentService, voteService, userService, httpHelper)
	commentHandler := handlers.NewCommentHandler(commentService, voteService, userService, httpHelper)
	attachmentHandler := handlers.NewAttachmentHandler(attachmentService, userService, httpHelper)

	// Setup router
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// API routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			// Profile
			protected.GET("/profile", authHandler.GetProfile)
			protected.POST("/profile/change-password", authHandler.ChangePassword)

			// Users
			users := protected.Group("/users")
			{
				users.GET("", userHandler.GetUsers)
				users.GET("/:id", userHandler.GetUser)
				users.PUT("/:id", userHandler.UpdateProfile)
				users.PUT("/:id/user-type", middleware.RequireUserType(), userHandler.SetUserType)
				users.PUT("/:id/department", userHandler.AssignDepartment)
			}

			// Departments
			departments := protected.Group("/departments")
			{
				departments.GET("", departmentHandler.GetDepartments)
				departments.GET("/:id", departmentHandler.GetDepartment)
				departments.POST("", middleware.RequireUserType(), departmentHandler.CreateDepartment)
				departments.PUT("/:id", departmentHandler.UpdateDepartment)
				departments.PUT("/:id/team-leader", departmentHandler.SetTeamLeader)
				departments.DELETE("/:id", middleware.RequireUserType(), departmentHandler.DeleteDepartment)
			}

			// Categories
			categories := protected.Group("/categories")
			{
				categories.GET("", categoryHandler.GetCategories)
				categories.GET("/tree", categoryHandler.GetTree)
				categories.GET("/:id", categoryHandler.GetCategory)
				categories.POST("", middleware.RequireUserType(), categoryHandler.CreateCategory)
				categories.PUT("/:id", middleware.RequireUserType(), categoryHandler.UpdateCategory)
				categories.DELETE("/:id", middleware.RequireUserType(), categoryHandler.DeleteCategory)
			}

			// Tags
			tags := protected.Group("/tags")
			{
				tags.GET("", tagHandler.GetTags)
				tags.GET("/:id", tagHandler.GetTag)
				tags.POST("", tagHandler.CreateTag)
			}

			// Entries
			entries := protected.Group("/entries")
			{
				entries.POST("", entryHandler.CreateEntry)
				entries.GET("", entryHandler.GetEntries)
				entries.GET("/:id", entryHandler.GetEntry)
				entries.GET("/slug/:slug", entryHandler.GetEntryBySlug)
				entries.PUT("/:id", entryHandler.UpdateEntry)
				entries.DELETE("/:id", entryHandler.DeleteEntry)
				entries.POST("/:id/vote", entryHandler.VoteEntry)
				entries.POST("/:id/verify", middleware.RequireUserType(models.UserTypeSeniorTech), entryHandler.VerifyEntry)
				entries.GET("/:id/revisions", entryHandler.GetRevisions)
				entries.GET("/:id/comments", commentHandler.GetComments)
				entries.POST("/:id/comments", commentHandler.CreateComment)
				entries.GET("/:id/attachments", attachmentHandler.GetAttachments)
				entries.POST("/:id/attachments", attachmentHandler.CreateAttachment)
			}

			// Comments
			comments := protected.Group("/comments")
			{
				comments.PUT("/:id", commentHandler.UpdateComment)
				comments.DELETE("/:id", commentHandler.DeleteComment)
				comments.POST("/:id/vote", commentHandler.VoteComment)
			}

			// Attachments
			attachments := protected.Group("/attachments")
			{
				attachments.GET("/:id/download", attachmentHandler.GetDownloadURL)
				attachments.DELETE("/:id", attachmentHandler.DeleteAttachment)
			}
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
