package handler

import (
	"github.com/gastos-app/gastos-backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, rateLimiter *middleware.RateLimiter, authHandler *AuthHandler, profileHandler *ProfileHandler, expenseHandler *ExpenseHandler, categoryHandler *CategoryHandler, budgetHandler *BudgetHandler, dashboardHandler *DashboardHandler, receiptHandler *ReceiptHandler) {
	// API version 1
	api := e.Group("/api/v1")
	api.Use(authMiddleware.Authenticate())
	api.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Auth routes
	auth := api.Group("/auth")
	auth.POST("/callback", authHandler.Callback)
	auth.GET("/me", authHandler.Me)

	// Profile (financial settings) routes
	profile := api.Group("/profile")
	profile.GET("", profileHandler.GetProfile)
	profile.PUT("", profileHandler.UpdateProfile)

	// Expense routes
	expenses := api.Group("/expenses")
	expenses.POST("", expenseHandler.Create)
	expenses.GET("", expenseHandler.List)
	expenses.GET("/export/csv", expenseHandler.ExportCSV)
	expenses.GET("/export/xlsx", expenseHandler.ExportXLSX)
	expenses.GET("/:id", expenseHandler.Get)
	expenses.PUT("/:id", expenseHandler.Update)
	expenses.DELETE("/:id", expenseHandler.Delete)
	expenses.POST("/:id/receipt", receiptHandler.Attach)
	expenses.GET("/:id/receipt", receiptHandler.Download)
	expenses.DELETE("/:id/receipt", receiptHandler.Remove)

	// Category routes
	categories := api.Group("/categories")
	categories.POST("", categoryHandler.Create)
	categories.GET("", categoryHandler.List)
	categories.POST("/seed", categoryHandler.Seed)
	categories.GET("/:id", categoryHandler.Get)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)
	categories.GET("/:id/can-delete", categoryHandler.CanDelete)

	// Budget routes
	budgets := api.Group("/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/:id", budgetHandler.Get)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	// Dashboard routes
	dashboard := api.Group("/dashboard")
	dashboard.GET("", dashboardHandler.GetDashboard)
}
