package routes

import (
	"time"

	"coinfolio/api/handler"
	"coinfolio/api/middleware"
	"coinfolio/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Users          *handler.UserHandler
	AuthMiddleware middleware.AuthMiddleware
	RegisterRate   *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, userHandler *handler.UserHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		Users:          userHandler,
		AuthMiddleware: authMiddleware,
		RegisterRate:   middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	requireAuth := r.AuthMiddleware.RequireAuth
	requireAdmin := middleware.RequireRole(entity.RoleAdmin)

	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())
	e.POST("/auth/registration", r.Auth.Register, r.RegisterRate.Middleware())

	e.GET("/me", r.Users.Me, requireAuth)
	e.POST("/users/2fa/setup", r.Users.SetupTwoFactor, requireAuth)
	e.POST("/users/2fa/enable", r.Users.EnableTwoFactor, requireAuth)
	e.POST("/users/2fa/disable", r.Users.DisableTwoFactor, requireAuth)

	e.GET("/users", r.Users.List, requireAuth, requireAdmin)
	e.GET("/users/:id", r.Users.Get, requireAuth)
	e.PUT("/users/:id", r.Users.Update, requireAuth)
	e.DELETE("/users/:id", r.Users.Delete, requireAuth, requireAdmin)

	e.POST("/users/role", r.Users.AddRole, requireAuth, requireAdmin)
	e.DELETE("/users/role", r.Users.RemoveRole, requireAuth, requireAdmin)
	e.POST("/users/ban", r.Users.Ban, requireAuth, requireAdmin)
	e.POST("/users/:id/unban", r.Users.Unban, requireAuth, requireAdmin)
	e.POST("/users/:id/verify-email", r.Users.VerifyEmail, requireAuth, requireAdmin)
}
