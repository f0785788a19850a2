package department

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
	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetAll)
		departments.POST("", middleware.RBACAuthorize(rbacService, "department", "write"), h.Create)
		departments.GET("/:id", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetById)
		departments.PUT("/:id", middleware.RBACAuthorize(rbacService, "department", "write"), h.Update)
		departments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "department", "write"), h.Delete)
	}

	companies := r.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("/:id/departments", middleware.RBACAuthorize(rbacService, "department", "read"), h.GetAllByCompany)
	}
}
