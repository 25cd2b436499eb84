package httpserver

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/techstore-lab/techstore/internal/handlers"
	authmw "github.com/techstore-lab/techstore/internal/middleware/auth"
)

type Deps struct {
	DB             *gorm.DB
	Auth           *authmw.Middleware
	AuthHandler    *handlers.AuthHandler
	ProductHandler *handlers.ProductHandler
	ReviewHandler  *handlers.ReviewHandler
	PageHandler    *handlers.PageHandler
	WebDir         string
}

func Register(e *echo.Echo, d *Deps) {
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	auth := e.Group("/auth")
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.LogOut)
	auth.GET("/status", d.AuthHandler.Status, d.Auth.RequireLogin)
	auth.POST("/change-password", d.AuthHandler.ChangePassword, d.Auth.RequireLogin)

	api := e.Group("/api")
	api.GET("/products", d.ProductHandler.GetProducts)
	api.GET("/products/search", d.ProductHandler.SearchProducts)
	// Delete stays public: the lab exercises an unguarded destructive route.
	api.DELETE("/products/:id", d.ProductHandler.DeleteProduct)

	api.POST("/products/pending", d.ReviewHandler.Submit)
	// Legacy storefront clients still POST directly to /api/products;
	// those land in the pending queue too.
	api.POST("/products", d.ReviewHandler.Submit)

	api.GET("/pending-products", d.ReviewHandler.ListPending, d.Auth.RequireLogin)
	api.POST("/pending-products/:id/approve", d.ReviewHandler.Approve, d.Auth.RequireLogin)
	api.DELETE("/pending-products/:id", d.ReviewHandler.Reject, d.Auth.RequireLogin)

	e.GET("/", d.PageHandler.Home)
	e.GET("/home-new.html", d.PageHandler.HomeNew)
	e.GET("/login", d.PageHandler.LoginPage)
	e.GET("/dashboard", d.PageHandler.Dashboard, d.Auth.RequireLogin)
	e.GET("/admin/queue", d.PageHandler.AdminQueue, d.Auth.AdminOnly)

	static := e.Group("", blockDashboard)
	static.Static("/", d.WebDir)
}

// blockDashboard keeps the protected page out of the static file path;
// /dashboard with a valid session is the only way in.
func blockDashboard(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if strings.HasSuffix(c.Request().URL.Path, "dashboard.html") {
			return c.String(http.StatusForbidden, "Access denied. Please login first.")
		}
		return next(c)
	}
}

// CustomValidator wraps validator for echo.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
