package router

import (
	"github.com/gin-gonic/gin"

	"factuur/internal/config"
	"factuur/internal/handler"
	"factuur/internal/middleware"
	"factuur/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	expenseH *handler.ExpenseHandler,
	incomeH *handler.IncomeHandler,
	reportH *handler.ReportHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	// Anonymous generation: render a PDF without persisting anything.
	v1.POST("/invoices/generate", invoiceH.Generate)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	// Invoice routes
	invoices := protected.Group("/invoices")
	invoices.POST("", invoiceH.Store)
	invoices.POST("/send", invoiceH.Send)
	invoices.GET("", invoiceH.List)
	invoices.GET("/export", invoiceH.ExportCSV)
	invoices.GET("/:id", invoiceH.GetByID)
	invoices.GET("/:id/pdf", invoiceH.Download)
	invoices.PATCH("/:id/status", invoiceH.UpdateStatus)
	invoices.DELETE("/:id", invoiceH.Delete)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", expenseH.Create)
	expenses.GET("", expenseH.List)
	expenses.GET("/:id", expenseH.GetByID)
	expenses.PUT("/:id", expenseH.Update)
	expenses.DELETE("/:id", expenseH.Delete)

	// Income routes
	income := protected.Group("/income")
	income.POST("", incomeH.Create)
	income.GET("", incomeH.List)
	income.GET("/:id", incomeH.GetByID)
	income.PUT("/:id", incomeH.Update)
	income.DELETE("/:id", incomeH.Delete)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/overview", reportH.FinancialOverview)

	return r
}
