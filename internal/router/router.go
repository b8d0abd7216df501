// Package router assembles the HTTP API: services over the record stores,
// their handlers, and the middleware chain.
package router

import (
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	apperrors "github.com/Gangulr/finace/internal/errors"
	"github.com/Gangulr/finace/internal/handlers"
	"github.com/Gangulr/finace/internal/middleware"
	"github.com/Gangulr/finace/internal/services"
	"github.com/Gangulr/finace/internal/store"
)

// Options configures the API.
type Options struct {
	Stores store.Set
	Health handlers.Pinger
	Tokens *middleware.TokenManager
	Clock  services.Clock

	RequireAuth     bool
	SecureCookie    bool
	CORSOrigin      string
	AuthRateLimit   float64 // requests per second per IP; 0 disables
	MetricsAPIKey   string
	SummaryCacheTTL time.Duration
}

// New builds the gin engine serving every route.
func New(opts Options) *gin.Engine {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.SummaryCacheTTL <= 0 {
		opts.SummaryCacheTTL = 5 * time.Minute
	}

	summaryService := services.NewSummaryService(opts.Stores, opts.SummaryCacheTTL)
	userService := services.NewUserService(opts.Stores.Users)
	budgetService := services.NewBudgetService(opts.Stores.Budgets, opts.Clock, summaryService)
	expenseService := services.NewExpenseService(opts.Stores.Expenses, opts.Clock, summaryService)
	incomeService := services.NewIncomeService(opts.Stores.Incomes, opts.Clock, summaryService)

	access := handlers.Access{RequireAuth: opts.RequireAuth}
	authHandler := handlers.NewAuthHandler(userService, opts.Tokens, opts.SecureCookie)
	budgetHandler := handlers.NewBudgetHandler(budgetService, access)
	expenseHandler := handlers.NewExpenseHandler(expenseService, access)
	incomeHandler := handlers.NewIncomeHandler(incomeService, access)
	summaryHandler := handlers.NewSummaryHandler(summaryService, access)
	healthHandler := handlers.NewHealthHandler(opts.Health)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(opts.CORSOrigin))
	router.Use(middleware.ErrorHandler())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", middleware.APIKeyMiddleware(opts.MetricsAPIKey), gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.GET("/health", healthHandler.Health)

	// Auth routes
	auth := api.Group("/auth")
	if opts.AuthRateLimit > 0 {
		limiter := middleware.NewIPRateLimiter(opts.AuthRateLimit, burstFor(opts.AuthRateLimit))
		auth.Use(middleware.RateLimit(limiter))
	}
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/signout", authHandler.Signout)
	auth.GET("/me", middleware.AuthMiddleware(opts.Tokens, true), authHandler.GetProfile)

	// Record routes. Without RequireAuth a token is optional and only
	// supplies a default owner.
	records := api.Group("", middleware.AuthMiddleware(opts.Tokens, opts.RequireAuth))

	budgets := records.Group("/budgets")
	budgets.POST("/create", budgetHandler.CreateBudget)
	budgets.POST("/validate", budgetHandler.ValidateBudget)
	budgets.GET("/:userId", budgetHandler.GetBudgets)
	budgets.GET("/get/:id", budgetHandler.GetBudget)
	budgets.PUT("/update/:id", budgetHandler.UpdateBudget)
	budgets.DELETE("/delete/:id", budgetHandler.DeleteBudget)

	expenses := records.Group("/expenses")
	expenses.POST("/create", expenseHandler.CreateExpense)
	expenses.POST("/validate", expenseHandler.ValidateExpense)
	expenses.GET("/Eitem/:userId", expenseHandler.GetExpenses)
	expenses.GET("/get/:id", expenseHandler.GetExpense)
	expenses.PUT("/update/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/delete/:id", expenseHandler.DeleteExpense)

	incomes := records.Group("/incomes")
	incomes.POST("/create", incomeHandler.CreateIncome)
	incomes.POST("/validate", incomeHandler.ValidateIncome)
	incomes.GET("/Items/:userId", incomeHandler.GetIncomes)
	incomes.GET("/get/:id", incomeHandler.GetIncome)
	incomes.PUT("/update/:id", incomeHandler.UpdateIncome)
	incomes.DELETE("/delete/:id", incomeHandler.DeleteIncome)

	records.GET("/summary/:userId", summaryHandler.GetSummary)

	router.NoRoute(func(c *gin.Context) {
		notFound := apperrors.WithMessage(apperrors.ErrNotFound, "Route not found")
		c.JSON(http.StatusNotFound, notFound.Envelope())
	})

	return router
}

// burstFor lets a client spend two seconds' worth of requests at once.
func burstFor(rps float64) int {
	return int(math.Max(1, math.Ceil(rps*2)))
}
