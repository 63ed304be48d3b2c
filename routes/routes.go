package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/admin"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auditlog"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auth"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/document"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/integration"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/invite"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/listing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/messaging"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/notification"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/reports"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/showing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/middleware"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"

	_ "github.com/jessiehunter4/good-tenants-mvp-sub000/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Services bundles what main needs beyond the HTTP surface.
type Services struct {
	Notification notification.Service
}

// SetupRoutes wires every module and returns the engine plus the handles the
// bootstrap needs (the notification service feeds the Kafka consumer).
func SetupRoutes(r *gin.Engine, cfg *config.Config, db *gorm.DB, store *utils.ObjectStore) (*gin.Engine, *Services) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.AuditMiddleware())

	// repositories
	auditRepo := auditlog.NewRepository(db)
	userRepo := auth.NewRepository(db)
	profileRepo := profile.NewRepository(db)
	listingRepo := listing.NewRepository(db)
	inviteRepo := invite.NewRepository(db)
	messagingRepo := messaging.NewRepository(db)
	showingRepo := showing.NewRepository(db)
	documentRepo := document.NewRepository(db)
	integrationRepo := integration.NewRepository(db)
	notificationRepo := notification.NewRepository(db)
	reportRepo := reports.NewReportRepository(db)

	// services
	auditSvc := auditlog.NewService(auditRepo)
	authSvc := auth.NewService(userRepo, profileRepo, cfg)
	profileSvc := profile.NewService(profileRepo, auditSvc, store)
	listingSvc := listing.NewService(listingRepo, auditSvc)
	dispatcher := integration.NewDispatcher(integrationRepo)
	inviteSvc := invite.NewService(inviteRepo, listingSvc, profileRepo, auditSvc, dispatcher)
	hub := messaging.NewHub()
	messagingSvc := messaging.NewService(messagingRepo, hub, authSvc)
	showingSvc := showing.NewService(showingRepo, listingSvc, auditSvc)
	documentSvc := document.NewService(documentRepo, store)
	integrationSvc := integration.NewService(integrationRepo)
	notificationSvc := notification.NewService(notificationRepo, authSvc)
	adminSvc := admin.NewService(profileSvc, userRepo, inviteRepo, listingRepo)
	reportSvc := reports.NewReportService(reportRepo, reports.NewReportExporter(), auditSvc)

	// handlers
	authHandler := auth.NewHandler(authSvc)
	profileHandler := profile.NewHandler(profileSvc)
	listingHandler := listing.NewHandler(listingSvc)
	inviteHandler := invite.NewHandler(inviteSvc)
	messagingHandler := messaging.NewHandler(messagingSvc, hub, messagingRepo, cfg)
	showingHandler := showing.NewHandler(showingSvc)
	documentHandler := document.NewHandler(documentSvc)
	integrationHandler := integration.NewHandler(integrationSvc)
	notificationHandler := notification.NewHandler(notificationSvc)
	adminHandler := admin.NewHandler(adminSvc)
	auditHandler := auditlog.NewHandler(auditSvc)
	reportHandler := reports.NewHandler(reportSvc)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// websocket subscriptions authenticate via query token, outside the
	// regular auth middleware
	r.GET("/ws/threads/:id", messagingHandler.Subscribe)

	api := r.Group("/api/v1")
	api.Use(middleware.RateLimiter())

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/forgot-password", authHandler.ForgotPassword)
		authGroup.POST("/reset-password", authHandler.ResetPassword)
		authGroup.GET("/roles", authHandler.GetPublicRoles)
	}

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg, authSvc))
	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/logout", authHandler.Logout)

		profileRoutes := protected.Group("/profiles")
		{
			profileRoutes.GET("/me", profileHandler.Me)
			profileRoutes.POST("/me/image", profileHandler.UploadImage)
			profileRoutes.POST("/onboard/tenant", middleware.RBACMiddleware(middleware.RoleTenant), profileHandler.OnboardTenant)
			profileRoutes.POST("/onboard/agent", middleware.RBACMiddleware(middleware.RoleAgent), profileHandler.OnboardAgent)
			profileRoutes.POST("/onboard/landlord", middleware.RBACMiddleware(middleware.RoleLandlord), profileHandler.OnboardLandlord)
		}

		protected.GET("/directory/tenants",
			middleware.RequireVerified(middleware.PermViewTenantDirectory),
			profileHandler.Directory)

		listingRoutes := protected.Group("/listings")
		{
			listingRoutes.GET("", middleware.RequirePermission(middleware.PermViewPropertyDetails), listingHandler.Browse)
			listingRoutes.GET("/:id", middleware.RequirePermission(middleware.PermViewPropertyDetails), listingHandler.Get)
			listingRoutes.GET("/mine", middleware.RequirePermission(middleware.PermManageProperties), listingHandler.Mine)
			listingRoutes.POST("", middleware.RequirePermission(middleware.PermCreateListing), listingHandler.Create)
			listingRoutes.PUT("/:id", middleware.RequirePermission(middleware.PermManageProperties), listingHandler.Update)
			listingRoutes.DELETE("/:id", middleware.RequirePermission(middleware.PermManageProperties), listingHandler.Deactivate)
			listingRoutes.PUT("/:id/featured", middleware.RBACMiddleware(middleware.RoleAdmin), listingHandler.SetFeatured)
		}

		inviteRoutes := protected.Group("/invites")
		{
			inviteRoutes.POST("", inviteHandler.Send)
			inviteRoutes.PUT("/:id/respond", inviteHandler.Respond)
			inviteRoutes.GET("/received", inviteHandler.Received)
			inviteRoutes.GET("/sent", inviteHandler.Sent)
		}

		messageRoutes := protected.Group("/messages")
		{
			messageRoutes.POST("/threads", messagingHandler.CreateThread)
			messageRoutes.GET("/threads", messagingHandler.Threads)
			messageRoutes.GET("/threads/:id", messagingHandler.Messages)
			messageRoutes.POST("/threads/:id", messagingHandler.SendMessage)
		}

		showingRoutes := protected.Group("/showings")
		{
			showingRoutes.POST("", showingHandler.Request)
			showingRoutes.GET("", showingHandler.Mine)
			showingRoutes.PUT("/:id/status", showingHandler.UpdateStatus)
		}

		documentRoutes := protected.Group("/documents")
		documentRoutes.Use(middleware.RBACMiddleware(middleware.RoleTenant))
		{
			documentRoutes.POST("", documentHandler.Upload)
			documentRoutes.GET("", documentHandler.Mine)
			documentRoutes.DELETE("/:id", documentHandler.Delete)
		}

		notificationRoutes := protected.Group("/notifications")
		{
			notificationRoutes.GET("", notificationHandler.List)
			notificationRoutes.PUT("/:id/read", notificationHandler.MarkRead)
			notificationRoutes.PUT("/read-all", notificationHandler.MarkAllRead)
		}

		integrationRoutes := protected.Group("/integrations")
		{
			integrationRoutes.GET("", integrationHandler.List)
			integrationRoutes.POST("/requests", integrationHandler.Request)
		}

		protected.GET("/reports/:type",
			middleware.RequirePermission(middleware.PermAccessAnalytics),
			reportHandler.Get)

		adminRoutes := protected.Group("/admin")
		adminRoutes.Use(middleware.RBACMiddleware(middleware.RoleAdmin))
		{
			adminRoutes.GET("/stats", middleware.RequirePermission(middleware.PermViewAdminDashboard), adminHandler.Stats)
			adminRoutes.GET("/verifications", adminHandler.VerificationQueue)
			adminRoutes.POST("/verifications/verify", adminHandler.Verify)
			adminRoutes.POST("/verifications/upgrade", adminHandler.Upgrade)
			adminRoutes.GET("/users", middleware.RequirePermission(middleware.PermManageUsers), adminHandler.Users)
			adminRoutes.PUT("/users/:id/status", middleware.RequirePermission(middleware.PermManageUsers), adminHandler.SetUserStatus)
			adminRoutes.POST("/invites/mint", authHandler.MintAdminInvite)
			adminRoutes.GET("/auditlogs", auditHandler.List)
			adminRoutes.GET("/integrations/requests", integrationHandler.ListRequests)
			adminRoutes.PUT("/integrations/requests/:id", integrationHandler.DecideRequest)
			adminRoutes.GET("/integrations/:id/usage", integrationHandler.Usage)
			adminRoutes.GET("/integrations/:id/deliveries", integrationHandler.Deliveries)
		}
	}

	return r, &Services{Notification: notificationSvc}
}
