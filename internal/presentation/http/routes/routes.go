package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/restropos-api/internal/config"
	"github.com/sangkips/restropos-api/internal/presentation/http/handler"
	"github.com/sangkips/restropos-api/internal/presentation/http/middleware"
	"github.com/sangkips/restropos-api/internal/storage"
	"github.com/sangkips/restropos-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Item     *handler.ItemHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	HeldBill *handler.HeldBillHandler
	Settings *handler.SettingsHandler
	Menu     *handler.MenuHandler
	Report   *handler.ReportHandler
	Printer  *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Sessions *utils.SessionManager
	Cfg      *config.Config
	Store    storage.Store
}

// Setup creates the Gin router and registers all routes. Register-facing
// routes (catalog reads, cart, checkout, held bills) are open on the shop
// floor; management routes sit behind the admin PIN session.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	v1 := router.Group("/api/v1")
	v1.Use(rateLimiter.Middleware())
	{
		registerRegisterRoutes(v1, h, deps)

		admin := v1.Group("")
		admin.Use(middleware.AdminAuth(deps.Sessions))
		registerAdminRoutes(admin, h)
	}

	return router
}

// registerRegisterRoutes wires the order-taking surface used at the counter.
func registerRegisterRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	auth := v1.Group("/auth")
	{
		auth.POST("/pin", h.Auth.Login)
	}

	v1.GET("/items", h.Item.List)
	v1.GET("/items/:id", h.Item.Get)
	v1.GET("/categories", h.Category.List)
	v1.GET("/settings", h.Settings.Get)

	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.Add)
		cart.PATCH("/items/:itemId", h.Cart.ChangeQuantity)
		cart.DELETE("/items/:itemId", h.Cart.Remove)
		cart.DELETE("", h.Cart.Clear)
	}

	orders := v1.Group("/orders")
	{
		// Checkout retries must not double-bill, so it sits behind the
		// idempotency guard.
		guard := middleware.NewIdempotencyGuard(deps.Store)
		orders.POST("", guard.Middleware(), h.Order.Checkout)
		orders.GET("", h.Order.List)
		orders.GET("/:id", h.Order.Get)
		orders.GET("/:id/receipt", h.Order.Receipt)
		orders.POST("/:id/print", h.Order.Print)
	}

	held := v1.Group("/held-bills")
	{
		held.GET("", h.HeldBill.List)
		held.POST("", h.HeldBill.Hold)
		held.POST("/:id/resume", h.HeldBill.Resume)
		held.DELETE("/:id", h.HeldBill.Delete)
	}

	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.Status)
		printerGroup.POST("/test", h.Printer.Test)
	}
}

// registerAdminRoutes wires the management surface behind the admin PIN.
func registerAdminRoutes(admin *gin.RouterGroup, h *Handlers) {
	admin.POST("/auth/pin/change", h.Auth.ChangePin)

	items := admin.Group("/items")
	{
		items.POST("", h.Item.Create)
		items.PUT("/:id", h.Item.Update)
		items.POST("/:id/toggle", h.Item.Toggle)
		items.DELETE("/:id", h.Item.Delete)
	}

	categories := admin.Group("/categories")
	{
		categories.POST("", h.Category.Create)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	admin.PUT("/settings", h.Settings.Update)

	menu := admin.Group("/menu")
	{
		menu.POST("/import", h.Menu.Import)
		menu.GET("/export", h.Menu.Export)
	}

	reports := admin.Group("/reports")
	{
		reports.GET("", h.Report.Get)
		reports.GET("/excel", h.Report.ExportExcel)
		reports.POST("/send", h.Report.Send)
	}
}
