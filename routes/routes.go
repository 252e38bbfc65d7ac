package routes

import (
	"net/http"
	"time"

	"github.com/Govind-619/BuyMeAChai/controllers"
	"github.com/Govind-619/BuyMeAChai/identity"
	"github.com/Govind-619/BuyMeAChai/middleware"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/gin-gonic/gin"
)

// Options configures the router
type Options struct {
	Controller   *controllers.ChaiController
	Identity     identity.Provider
	AdminUserIDs []string
	CORSOrigin   string
	Production   bool

	// PaymentSimulator exposes /api/dev/simulate-payment, which signs payments
	// with the gateway secret. Ignored in production.
	PaymentSimulator bool

	APIRateLimit      int
	APIRateWindow     time.Duration
	PaymentRateLimit  int
	PaymentRateWindow time.Duration
}

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter(opts Options) *gin.Engine {
	router := gin.New()

	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.CORSMiddleware(opts.CORSOrigin))
	router.Use(utils.SecurityHeadersMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Buy Me a Chai API is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	apiLimiter := utils.NewRateLimiter(opts.APIRateLimit, opts.APIRateWindow,
		"Too many requests from this IP, please try again later.")
	paymentLimiter := utils.NewRateLimiter(opts.PaymentRateLimit, opts.PaymentRateWindow,
		"Too many payment requests, please try again later.")

	api := router.Group("/api")
	api.Use(apiLimiter.Middleware())
	{
		initPublicRoutes(api, opts)
		initUserRoutes(api, opts, paymentLimiter)
		initAdminRoutes(api, opts)
		if opts.PaymentSimulator && !opts.Production {
			initDevRoutes(api, opts)
		}
	}

	return router
}

func initPublicRoutes(api *gin.RouterGroup, opts Options) {
	ctl := opts.Controller
	api.GET("/messages", ctl.ListMessages)
	api.GET("/pricing", ctl.GetPricing)
}

func initUserRoutes(api *gin.RouterGroup, opts Options, paymentLimiter *utils.RateLimiter) {
	ctl := opts.Controller
	user := api.Group("")
	user.Use(middleware.AuthMiddleware(opts.Identity))
	{
		user.POST("/create-order", paymentLimiter.Middleware(), ctl.CreateOrder)
		user.POST("/verify-payment", paymentLimiter.Middleware(), ctl.VerifyPayment)
		user.GET("/contributions/:id/receipt", ctl.DownloadReceipt)
	}
}

func initAdminRoutes(api *gin.RouterGroup, opts Options) {
	ctl := opts.Controller
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(opts.Identity), middleware.AdminMiddleware(opts.AdminUserIDs))
	{
		admin.GET("/contributions/export", ctl.ExportContributions)
	}
}

// initDevRoutes registers helpers that must never be reachable in production
func initDevRoutes(api *gin.RouterGroup, opts Options) {
	dev := api.Group("/dev")
	dev.Use(middleware.AuthMiddleware(opts.Identity))
	{
		dev.GET("/simulate-payment", opts.Controller.SimulatePayment)
	}
}
