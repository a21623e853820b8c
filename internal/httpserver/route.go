package httpserver

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pearline_shop/internal/models"
	middleware "github.com/Skotchmaster/pearline_shop/pkg/middleware/auth"
)

type Deps struct {
	CartHandler       *CartHTTP
	QuoteHandler      *QuoteHTTP
	AdminQuoteHandler *AdminQuoteHTTP
	ProductHandler    *ProductHTTP
	MessageHandler    *MessageHTTP
	AuthHandler       *AuthHTTP
	UserHandler       *UserHTTP
	JWTSecret         []byte
	// Ready backs /health/ready; nil means always ready.
	Ready func(ctx context.Context) error
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error {
		if d.Ready != nil {
			if err := d.Ready(c.Request().Context()); err != nil {
				return c.NoContent(http.StatusServiceUnavailable)
			}
		}
		return c.NoContent(http.StatusOK)
	})

	authMW := middleware.NewAuth(d.JWTSecret)
	adminOnly := middleware.RequireRoles(models.RoleAdmin, models.RoleSuperAdmin)
	superOnly := middleware.RequireRoles(models.RoleSuperAdmin)

	api := e.Group("/api/v1")

	// public
	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)
	api.POST("/auth/refresh", d.AuthHandler.Refresh)
	api.POST("/auth/logout", d.AuthHandler.LogOut)
	api.POST("/admin/auth/login", d.AuthHandler.AdminLogin)
	api.POST("/contact/send", d.MessageHandler.Send)

	api.GET("/products", d.ProductHandler.List)
	api.GET("/products/search", d.ProductHandler.Search)
	api.GET("/products/category/:id", d.ProductHandler.ListByCategory)
	api.GET("/products/:barcode", d.ProductHandler.Get)
	api.GET("/categories", d.ProductHandler.ListCategories)

	// signed in
	api.GET("/auth/whoami", d.AuthHandler.WhoAmI, authMW.RequireAuth)
	api.DELETE("/auth/delete-account", d.AuthHandler.DeleteAccount, authMW.RequireAuth)

	profile := api.Group("/profile", authMW.RequireAuth)
	profile.GET("", d.UserHandler.GetProfile)
	profile.PUT("", d.UserHandler.UpdateProfile)
	profile.PUT("/change-password", d.UserHandler.ChangePassword)

	cart := api.Group("/cart", authMW.RequireAuth)
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("/add", d.CartHandler.AddToCart)
	cart.DELETE("/remove/:barcode", d.CartHandler.RemoveFromCart)
	cart.DELETE("/clear", d.CartHandler.ClearCart)

	quote := api.Group("/quote", authMW.RequireAuth)
	quote.POST("/submit", d.QuoteHandler.Submit)
	quote.GET("/my", d.QuoteHandler.ListMine)
	quote.GET("/:id", d.QuoteHandler.GetMine)

	// admin
	admin := api.Group("/admin", authMW.RequireAuth, adminOnly)
	admin.POST("/auth/create-admin", d.AuthHandler.CreateAdmin, superOnly)

	quotes := admin.Group("/quotes")
	quotes.GET("", d.AdminQuoteHandler.List)
	quotes.GET("/all", d.AdminQuoteHandler.ListAll)
	quotes.GET("/export", d.AdminQuoteHandler.Export)
	quotes.GET("/statuses", d.AdminQuoteHandler.Statuses)
	quotes.GET("/user/:userId", d.AdminQuoteHandler.ListByUser)
	quotes.GET("/:id", d.AdminQuoteHandler.Get)
	quotes.PUT("/:id/status", d.AdminQuoteHandler.SetStatus)
	quotes.DELETE("/all", d.AdminQuoteHandler.DeleteAll)
	quotes.DELETE("/:id", d.AdminQuoteHandler.Delete)

	products := admin.Group("/products")
	products.POST("", d.ProductHandler.Create)
	products.POST("/bulk", d.ProductHandler.BulkImport)
	products.POST("/import", d.ProductHandler.ImportXLSX)
	products.PATCH("/:barcode", d.ProductHandler.Patch)
	products.DELETE("/:barcode", d.ProductHandler.Delete)
	products.DELETE("/category/:id", d.ProductHandler.DeleteByCategory)
	admin.POST("/categories", d.ProductHandler.CreateCategory)

	messages := admin.Group("/messages")
	messages.GET("", d.MessageHandler.List)
	messages.GET("/:id", d.MessageHandler.Get)
	messages.DELETE("", d.MessageHandler.DeleteAll)
	messages.DELETE("/:id", d.MessageHandler.Delete)

	users := admin.Group("/users")
	users.GET("", d.UserHandler.List)
	users.GET("/:id", d.UserHandler.Get)
	users.DELETE("/:id", d.UserHandler.Delete)
}
