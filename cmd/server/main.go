package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/snishiyama/networking-crm/internal/config"
	"github.com/snishiyama/networking-crm/internal/constants"
	"github.com/snishiyama/networking-crm/internal/database"
	"github.com/snishiyama/networking-crm/internal/handlers"
	"github.com/snishiyama/networking-crm/internal/middleware"
	"github.com/snishiyama/networking-crm/internal/repository"
	"github.com/snishiyama/networking-crm/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	if err := database.AddIndexes(database.GetDB()); err != nil {
		log.Fatalf("Failed to add indexes: %v", err)
	}

	// Seed the initial super admin on an empty database
	if cfg.SeedAdmin {
		if err := database.SeedSuperAdmin(database.GetDB()); err != nil {
			log.Fatalf("Failed to seed super admin: %v", err)
		}
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	memberService := services.NewMemberService(memberRepo)
	noteService := services.NewNoteService(noteRepo, memberRepo)
	groupService := services.NewGroupService(groupRepo, memberRepo, userRepo)
	meetingService := services.NewMeetingService(meetingRepo, groupRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	memberHandler := handlers.NewMemberHandler(memberService, noteService)
	groupHandler := handlers.NewGroupHandler(groupService)
	meetingHandler := handlers.NewMeetingHandler(meetingService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Networking CRM API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Member routes (protected)
		members := api.Group("/members")
		members.Use(middleware.RequireAuth())
		{
			members.GET("", memberHandler.ListMembers)
			members.POST("", memberHandler.CreateMember)
			members.GET("/:id", memberHandler.GetMember)
			members.PATCH("/:id", memberHandler.UpdateMember)
			members.DELETE("/:id", memberHandler.DeleteMember)
			members.GET("/:id/history", memberHandler.GetMemberHistory)
			members.GET("/:id/notes", memberHandler.ListMemberNotes)
			members.POST("/:id/notes", memberHandler.CreateMemberNote)
			members.DELETE("/:id/notes/:noteId", memberHandler.DeleteMemberNote)
		}

		// Group routes (protected)
		groups := api.Group("/groups")
		groups.Use(middleware.RequireAuth())
		{
			groups.GET("", groupHandler.ListGroups)
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("/:id", groupHandler.GetGroup)
			groups.PATCH("/:id", groupHandler.UpdateGroup)
			groups.DELETE("/:id", groupHandler.DeleteGroup)
			groups.GET("/:id/members", groupHandler.ListGroupMembers)
			groups.POST("/:id/members", groupHandler.AddGroupMember)
			groups.DELETE("/:id/members/:memberId", groupHandler.RemoveGroupMember)
		}

		// Meeting routes (protected)
		meetings := api.Group("/meetings")
		meetings.Use(middleware.RequireAuth())
		{
			meetings.GET("", meetingHandler.ListMeetings)
			meetings.POST("", meetingHandler.CreateMeeting)
			meetings.GET("/:id", meetingHandler.GetMeeting)
			meetings.PATCH("/:id", meetingHandler.UpdateMeeting)
			meetings.DELETE("/:id", meetingHandler.DeleteMeeting)
			meetings.PATCH("/:id/attendance", meetingHandler.UpdateAttendance)
			meetings.POST("/:id/attendance", meetingHandler.BulkUpdateAttendance)
		}

		// Admin user management (super admins only)
		admin := api.Group("/admin/users")
		admin.Use(middleware.RequireAuth(), middleware.RequireSuperAdmin())
		{
			admin.GET("", userHandler.ListUsers)
			admin.POST("", userHandler.CreateUser)
			admin.GET("/:id", userHandler.GetUser)
			admin.PATCH("/:id", userHandler.UpdateUser)
			admin.DELETE("/:id", userHandler.DeleteUser)
		}

		// Self-service profile (protected)
		settings := api.Group("/settings")
		settings.Use(middleware.RequireAuth())
		{
			settings.GET("/profile", userHandler.GetProfile)
			settings.PATCH("/profile", userHandler.UpdateProfile)
		}
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
