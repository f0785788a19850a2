package auth

import (
	"go-empdir/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/signin", middleware.RateLimitByIP(0.5, 5), h.SignIn)
	r.POST("/token/refresh", middleware.RateLimitByIP(0.5, 5), h.Refresh)
	r.POST("/signout", middleware.AuthMiddleware(), middleware.RateLimitByUser(2, 5), h.SignOut)
}
