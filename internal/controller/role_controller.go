package controller

import (
	"school_planner_backend/internal/model"
	"school_planner_backend/internal/service"
	"school_planner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RoleController struct {
	RoleService *service.RoleService
}

func NewRoleController(roleService *service.RoleService) *RoleController {
	return &RoleController{RoleService: roleService}
}

// AssignRoleRequest
// swagger:model AssignRoleRequest
type AssignRoleRequest struct {
	Role model.UserRole `json:"role" binding:"required,oneof=admin user guest"`
}

func callerPrincipal(ctx *gin.Context) string {
	if user := util.GetUserFromContext(ctx); user != nil {
		return user.PrincipalID
	}
	return ""
}

// GetCallerRole godoc
// @Summary Get the caller's role
// @Description Anonymous callers are guests
// @Tags role
// @Produce json
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Router /role [get]
func (c *RoleController) GetCallerRole(ctx *gin.Context) {
	role, err := c.RoleService.CallerRole(ctx.Request.Context(), callerPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"role": role})
}

// IsCallerAdmin godoc
// @Summary Whether the caller is an admin
// @Tags role
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=map[string]interface{}}
// @Router /role/admin [get]
func (c *RoleController) IsCallerAdmin(ctx *gin.Context) {
	isAdmin, err := c.RoleService.IsAdmin(ctx.Request.Context(), callerPrincipal(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"admin": isAdmin})
}

// AssignRole godoc
// @Summary Assign a role to a principal
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param principal path string true "principal id"
// @Param request body AssignRoleRequest true "role"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /admin/roles/{principal} [put]
func (c *RoleController) AssignRole(ctx *gin.Context) {
	var req AssignRoleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.RoleService.AssignRole(ctx.Request.Context(), callerPrincipal(ctx), ctx.Param("principal"), req.Role)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
