package company

import (
	"go-empdir/internal/middleware"
	"go-empdir/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	h *Handler,
	rbacService rbac.Service,
) {
	companies := r.Group("/companies")

	companies.Use(middleware.AuthMiddleware())

	{
		companies.GET("", middleware.RBACAuthorize(rbacService, "company", "read"), h.GetAll)
		companies.POST("", middleware.RBACAuthorize(rbacService, "company", "write"), h.Create)
		companies.GET("/:id", middleware.RBACAuthorize(rbacService, "company", "read"), h.GetById)
		companies.PUT("/:id", middleware.RBACAuthorize(rbacService, "company", "write"), h.Update)
		companies.DELETE("/:id", middleware.RBACAuthorize(rbacService, "company", "write"), h.Delete)
	}
}
