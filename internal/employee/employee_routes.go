package employee

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
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetAll)
		employees.POST("", middleware.RBACAuthorize(rbacService, "employee", "write"), h.Create)
		employees.GET("/:id", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetById)
		employees.PUT("/:id", middleware.RBACAuthorize(rbacService, "employee", "write"), h.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(rbacService, "employee", "write"), h.Delete)
	}

	departments := r.Group("/departments")
	departments.Use(middleware.AuthMiddleware())
	{
		departments.GET("/:id/employees", middleware.RBACAuthorize(rbacService, "employee", "read"), h.GetAllByDepartment)
	}

	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("", middleware.RBACAuthorize(rbacService, "profile", "read"), h.GetProfile)
		profile.PUT("", middleware.RBACAuthorize(rbacService, "profile", "update"), h.UpdateProfile)
	}
}
