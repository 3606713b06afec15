// Package router sets up the HTTP routing for the application.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/ledger/internal/integration/entrypoint/controller"
	"github.com/finance-tracker/ledger/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	accountController     *controller.AccountController
	categoryController    *controller.CategoryController
	ruleController        *controller.CategoryRuleController
	transactionController *controller.TransactionController
	creditCardController  *controller.CreditCardController
	debtController        *controller.DebtController
	investmentController  *controller.InvestmentController
	dashboardController   *controller.DashboardController
	rateLimiter           *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies. A nil rate
// limiter disables rate limiting.
func NewRouter(
	healthController *controller.HealthController,
	accountController *controller.AccountController,
	categoryController *controller.CategoryController,
	ruleController *controller.CategoryRuleController,
	transactionController *controller.TransactionController,
	creditCardController *controller.CreditCardController,
	debtController *controller.DebtController,
	investmentController *controller.InvestmentController,
	dashboardController *controller.DashboardController,
	rateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		accountController:     accountController,
		categoryController:    categoryController,
		ruleController:        ruleController,
		transactionController: transactionController,
		creditCardController:  creditCardController,
		debtController:        debtController,
		investmentController:  investmentController,
		dashboardController:   dashboardController,
		rateLimiter:           rateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	// Set Gin mode based on environment
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	r.engine = gin.New()
	r.engine.Use(gin.Recovery())
	if environment != "test" {
		r.engine.Use(gin.Logger())
	}

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes. Every route requires a
// bearer token; writes are rate limited per user.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	v1.Use(r.authMiddleware.Authenticate(), r.limitWrites())

	accounts := v1.Group("/accounts")
	{
		accounts.GET("", r.accountController.List)
		accounts.POST("", r.accountController.Create)
		accounts.GET("/:id", r.accountController.Get)
		accounts.PATCH("/:id", r.accountController.Update)
		accounts.DELETE("/:id", r.accountController.Deactivate)
		accounts.GET("/:id/balance", r.accountController.Balance)
	}
	v1.GET("/statement", r.accountController.Statement)

	categories := v1.Group("/categories")
	{
		categories.GET("", r.categoryController.List)
		categories.POST("", r.categoryController.Create)
		categories.PATCH("/:id", r.categoryController.Update)
		categories.DELETE("/:id", r.categoryController.Delete)
	}

	rules := v1.Group("/category-rules")
	{
		rules.GET("", r.ruleController.List)
		rules.POST("", r.ruleController.Create)
		rules.POST("/test", r.ruleController.Test)
		rules.PATCH("/:id", r.ruleController.Update)
		rules.DELETE("/:id", r.ruleController.Delete)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", r.transactionController.List)
		transactions.POST("", r.transactionController.Create)
		transactions.POST("/import", r.transactionController.Import)
		transactions.PATCH("/:id", r.transactionController.Update)
		transactions.DELETE("/:id", r.transactionController.Delete)
		transactions.POST("/:id/complete", r.transactionController.Complete)
		transactions.POST("/:id/revert", r.transactionController.Revert)
	}

	cards := v1.Group("/credit-cards")
	{
		cards.GET("", r.creditCardController.List)
		cards.POST("", r.creditCardController.Create)
		cards.PATCH("/:id", r.creditCardController.Update)
		cards.DELETE("/:id", r.creditCardController.Deactivate)
		cards.GET("/:id/purchases", r.creditCardController.ListPurchases)
		cards.POST("/:id/purchases", r.creditCardController.RecordPurchase)
		cards.DELETE("/:id/purchases/:purchaseId", r.creditCardController.DeletePurchase)
		cards.GET("/:id/invoices/:month", r.creditCardController.GetInvoice)
		cards.POST("/:id/invoices/:month/pay", r.creditCardController.PayInvoice)
	}

	debts := v1.Group("/debts")
	{
		debts.GET("", r.debtController.List)
		debts.POST("", r.debtController.Create)
		debts.GET("/:id", r.debtController.Get)
		debts.PATCH("/:id", r.debtController.Update)
		debts.DELETE("/:id", r.debtController.Delete)
		debts.GET("/:id/payments", r.debtController.ListPayments)
		debts.POST("/:id/payments", r.debtController.RecordPayment)
		debts.GET("/:id/schedule", r.debtController.Schedule)
	}

	investments := v1.Group("/investments")
	{
		investments.GET("", r.investmentController.List)
		investments.POST("", r.investmentController.Create)
		investments.PATCH("/:id", r.investmentController.Update)
		investments.DELETE("/:id", r.investmentController.Delete)
		investments.GET("/:id/operations", r.investmentController.ListOperations)
		investments.POST("/:id/operations", r.investmentController.RecordOperation)
	}

	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("", r.dashboardController.Summary)
		dashboard.GET("/categories", r.dashboardController.CategoryBreakdown)
		dashboard.GET("/trends", r.dashboardController.Trends)
	}
}

// limitWrites applies the rate limiter to mutating requests only.
func (r *Router) limitWrites() gin.HandlerFunc {
	if r.rateLimiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := r.rateLimiter.Middleware()
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			limit(c)
		}
	}
}
