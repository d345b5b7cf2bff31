package main

import (
	"net/http"

	"go.uber.org/zap"

	"promotube-be/internal/config"
	"promotube-be/internal/db"
	"promotube-be/internal/logger"
	"promotube-be/internal/metrics"
	"promotube-be/internal/middleware"
	"promotube-be/internal/order"
	"promotube-be/internal/packages"
	"promotube-be/internal/payment"
	"promotube-be/internal/payment/webhook"
	"promotube-be/internal/transport"
	"promotube-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	gateway := payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.RazorpayWebhookSecret)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	pkgRepo := packages.NewRepository(database)
	pkgSvc := packages.NewService(pkgRepo)

	payRepo := payment.NewRepository(database)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, payRepo, gateway, pkgSvc)

	authHandler := transport.NewAuthHandler(userSvc)
	pkgHandler := transport.NewPackageHandler(pkgSvc)
	orderHandler := transport.NewOrderHandler(orderSvc, gateway)
	payHandler := transport.NewPaymentHandler(orderSvc, gateway)
	refundHandler := transport.NewRefundHandler(orderSvc)
	webhookHandler := webhook.NewWebhookHandler(orderSvc, gateway, payRepo)

	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/packages", pkgHandler.List)

	mux.Handle("POST /api/orders", middleware.RequireAuth(http.HandlerFunc(orderHandler.Checkout)))
	mux.Handle("GET /api/orders", middleware.RequireAuth(http.HandlerFunc(orderHandler.List)))
	mux.Handle("GET /api/orders/{id}", middleware.RequireAuth(http.HandlerFunc(orderHandler.Get)))

	mux.HandleFunc("POST /api/payment/verify", payHandler.Verify)
	mux.HandleFunc("GET /api/payment/key", payHandler.Key)

	mux.Handle("POST /api/admin/refunds", middleware.RequireAdmin(http.HandlerFunc(refundHandler.Create)))
	mux.Handle("GET /api/admin/refunds/{id}", middleware.RequireAdmin(http.HandlerFunc(refundHandler.Status)))

	// Provider callbacks authenticate by signature, not by session.
	mux.HandleFunc("POST /webhook/razorpay", webhookHandler.PaymentWebhookHandler)

	mux.Handle("GET /metrics", metrics.Handler())

	handler := logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.CORS(
				middleware.RateLimitMiddleware(
					middleware.AuthMiddleware(mux)))))

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}

	logger.L().Info("server listening", zap.String("port", port), zap.String("env", cfg.AppEnv))
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
