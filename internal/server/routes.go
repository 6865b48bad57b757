package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"familyservices/internal/db"
	"familyservices/internal/email"
	"familyservices/internal/handlers/api"
	"familyservices/internal/middleware"
	"familyservices/internal/workflow"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, notifier *email.Notifier) {
	authMiddleware := middleware.NewAuthMiddleware(database)

	wf := workflow.New(database, notifier)

	authHandler := api.NewAuthHandler(database, s.Cfg, notifier)
	profileHandler := api.NewProfileHandler(database)
	childHandler := api.NewChildHandler(database)
	servicesHandler := api.NewServicesHandler(database)
	paymentHandler := api.NewPaymentHandler(database)
	adminHandler := api.NewAdminHandler(database, notifier)
	requestHandler := api.NewRequestHandler(wf)
	healthHandler := api.NewHealthHandler(database)

	// Auth routes
	auth := s.App.Group("/api/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/new-password", authHandler.NewPassword)

	// Family routes
	user := s.App.Group("/api/user", authMiddleware.RequireAuth)
	user.Get("/profile", profileHandler.Show)
	user.Post("/change-password", authHandler.ChangePassword)

	// Direct writes, applied immediately
	user.Post("/update-profile-direct", profileHandler.UpdateDirect)
	user.Post("/update-services-direct", servicesHandler.UpdateDirect)
	user.Post("/update-child-direct/:id", childHandler.UpdateDirect)
	user.Post("/add-child-direct", childHandler.AddDirect)
	user.Post("/update-payment-direct", paymentHandler.UpdateDirect)

	// Staged writes, queued for admin review
	user.Post("/update-profile", profileHandler.RequestUpdate)
	user.Post("/update-services", servicesHandler.RequestUpdate)
	user.Post("/update-child", childHandler.RequestUpdate)
	user.Post("/add-child", childHandler.RequestAdd)

	// Admin routes
	admin := s.App.Group("/api/admin", authMiddleware.RequireAuth, authMiddleware.RequireAdmin)
	admin.Get("/update-requests", requestHandler.List)
	admin.Post("/update-requests/:id/process", requestHandler.Process)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Get("/users/:id", adminHandler.GetUser)
	admin.Post("/users/:id/approval", adminHandler.SetApproval)
	admin.Post("/users/:id/status", adminHandler.SetStatus)

	// Ops
	s.App.Get("/healthz", healthHandler.Check)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
