package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/staffhub/staffhub/internal/middleware"
	"github.com/staffhub/staffhub/internal/tokens"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	UserHandler     *UserHTTP
	PositionHandler *PositionHTTP
	Tokens          *tokens.Issuer
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	authMw := middleware.NewSimpleAuth(d.Tokens)

	e.POST("/register", d.AuthHandler.Register)
	e.POST("/login", d.AuthHandler.Login)
	e.POST("/refresh", d.AuthHandler.Refresh)

	private := e.Group("")
	private.Use(authMw.RequireAuth)
	private.POST("/logout", d.AuthHandler.Logout)

	private.GET("/users", d.UserHandler.List)
	private.GET("/users/:id", d.UserHandler.Get)
	private.PATCH("/users/:id", d.UserHandler.Update)
	private.DELETE("/users/:id", d.UserHandler.Delete)

	positions := e.Group("/positions")
	positions.GET("", d.PositionHandler.List)
	positions.GET("/:position_id", d.PositionHandler.Get)

	mutating := positions.Group("", authMw.RequireAuth)
	mutating.POST("", d.PositionHandler.Create)
	mutating.PUT("/:position_id", d.PositionHandler.Update)
	mutating.DELETE("/:position_id", d.PositionHandler.Delete)
	mutating.DELETE("", d.PositionHandler.DeleteAll)
}
