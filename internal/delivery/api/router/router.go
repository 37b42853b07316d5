// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"bookshelf/internal/delivery/api/middleware"
	"bookshelf/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	BookHandler    *handler.BookHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	bookHandler    *handler.BookHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		bookHandler:    params.BookHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
	}

	booksGroup := e.Group("/books", r.authMiddleware.Authenticate)
	{
		booksGroup.POST("", r.bookHandler.Create)
		booksGroup.GET("", r.bookHandler.FindAll)
		booksGroup.GET("/:id", r.bookHandler.FindOne)
		booksGroup.PUT("/:id", r.bookHandler.Update)
		booksGroup.DELETE("/:id", r.bookHandler.Remove)
	}

	usersGroup := e.Group("/users", r.authMiddleware.Authenticate)
	{
		usersGroup.POST("", r.userHandler.Create)
		usersGroup.GET("", r.userHandler.FindAll)
		usersGroup.GET("/:id", r.userHandler.FindOne)
		usersGroup.PATCH("/:id", r.userHandler.Update)
		usersGroup.PATCH("/:id/password", r.userHandler.UpdatePassword)
		usersGroup.DELETE("/:id", r.userHandler.Remove)
	}
}
