package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"pizzeria/internal/auth"
	"pizzeria/internal/config"
	"pizzeria/internal/handler"
)

// Register wires routes and middleware. Public reads stay open; everything
// mutating or identity-scoped goes through the token middleware, and role
// checks happen inside the handlers before any mutation.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenService *auth.TokenService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	franchiseHandler *handler.FranchiseHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")
	authRequired := auth.Middleware(tokenService)

	// Session lifecycle
	api.POST("/auth", authHandler.Register)
	api.PUT("/auth", authHandler.Login)
	api.DELETE("/auth", authHandler.Logout, authRequired)

	// Profiles
	api.GET("/user/me", userHandler.Me, authRequired)
	api.PUT("/user/:id", userHandler.Update, authRequired)

	// Franchise hierarchy
	api.POST("/franchise", franchiseHandler.Create, authRequired)
	api.GET("/franchise", franchiseHandler.List)
	api.POST("/franchise/:franchiseId/store", franchiseHandler.CreateStore, authRequired)

	// Menu and orders
	api.GET("/order/menu", orderHandler.Menu)
	api.PUT("/order/menu", orderHandler.AddMenuItem, authRequired)
	api.POST("/order", orderHandler.Create, authRequired)
	api.GET("/order", orderHandler.History, authRequired)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
