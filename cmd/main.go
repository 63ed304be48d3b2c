package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/jessiehunter4/good-tenants-mvp-sub000/config"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/database"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auditlog"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/auth"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/document"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/integration"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/invite"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/listing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/messaging"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/notification"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/profile"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/internal/showing"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/routes"
	"github.com/jessiehunter4/good-tenants-mvp-sub000/utils"
)

// @title Good Tenants API
// @version 1.0
// @description Rental matchmaking platform: tenants, agents, landlords and the invites between them.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := utils.InitRedis(cfg); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}
	utils.InitializeKafka(cfg)
	utils.InitEmail(cfg)

	store, err := utils.NewObjectStore(cfg)
	if err != nil {
		log.Printf("⚠️ Object storage unavailable: %v", err)
		log.Println("ℹ️ Continuing without uploads (profile images and documents disabled)")
		store = nil
	}

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.UserRole{},
		&auth.User{},
		&profile.TenantProfile{},
		&profile.AgentProfile{},
		&profile.LandlordProfile{},
		&listing.Listing{},
		&invite.Invite{},
		&messaging.MessageThread{},
		&messaging.ThreadParticipant{},
		&messaging.Message{},
		&showing.PropertyShowing{},
		&document.ApplicationDocument{},
		&integration.Integration{},
		&integration.IntegrationRequest{},
		&integration.IntegrationUsage{},
		&integration.IntegrationAuditLog{},
		&notification.Notification{},
		&auditlog.AuditLog{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Seed roles & bootstrap admin
	if err := auth.SeedUserRoles(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed roles: %v", err))
	}
	if err := auth.SeedAdminUser(db); err != nil {
		panic(fmt.Sprintf("❌ Failed to seed admin: %v", err))
	}

	// Register the invite webhook endpoint from config
	if err := integration.EnsureInviteWebhook(integration.NewRepository(db), cfg); err != nil {
		log.Printf("⚠️ Could not register invite webhook: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router, svcs := routes.SetupRoutes(router, cfg, db, store)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go notification.StartKafkaConsumer(ctx, cfg, svcs.Notification)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("❌ Server exited: %v", err)
	}

	utils.CloseKafka()
	utils.CloseRedis()
}
