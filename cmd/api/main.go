package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GGlistano/backbolt/api/routes"
	"github.com/GGlistano/backbolt/internal/config"
	"github.com/GGlistano/backbolt/internal/handlers"
	"github.com/GGlistano/backbolt/internal/repositories"
	mongorepo "github.com/GGlistano/backbolt/internal/repositories/mongodb"
	"github.com/GGlistano/backbolt/internal/services"
	"github.com/GGlistano/backbolt/pkg/mailer"
	"github.com/GGlistano/backbolt/pkg/mongodb"
	"github.com/GGlistano/backbolt/pkg/paygateway"
	"github.com/GGlistano/backbolt/pkg/token"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load .env for local development; deployed environments inject real vars
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		logrus.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logrus.Errorf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)

	// Initialize repositories
	var purchaseRepo repositories.PurchaseRepository = mongorepo.NewPurchaseRepository(db)
	var upsellRepo repositories.UpsellRepository = mongorepo.NewUpsellRepository(db)

	// Initialize external clients
	gatewayClient := paygateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.ClientID, map[string]paygateway.Wallet{
		services.MethodMpesa: {ID: cfg.Gateway.MpesaWalletID, Token: cfg.Gateway.MpesaToken},
		services.MethodEmola: {ID: cfg.Gateway.EmolaWalletID, Token: cfg.Gateway.EmolaToken},
	})
	tokenService := token.NewService(cfg.JWT.Secret)
	receiptMailer := mailer.New(cfg.Email.SMTPHost, cfg.Email.SMTPPort, cfg.Email.User, cfg.Email.Password)

	// Initialize services and handlers
	funnelService := services.NewFunnelService(purchaseRepo, upsellRepo, gatewayClient, tokenService, receiptMailer, cfg.Funnel.BaseURL)
	funnelHandler := handlers.NewFunnelHandler(funnelService)

	// Setup router
	router := routes.SetupRouter(cfg, funnelHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logrus.Infof("Server starting on port %s", cfg.Server.Port)

	// Run server in a goroutine so that it doesn't block
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %s", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exiting")
}
