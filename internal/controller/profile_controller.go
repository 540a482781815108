package controller

import (
	"school_planner_backend/internal/service"
	"school_planner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
	RoleService    *service.RoleService
}

func NewProfileController(profileService *service.ProfileService, roleService *service.RoleService) *ProfileController {
	return &ProfileController{ProfileService: profileService, RoleService: roleService}
}

// ProfileRequest
// swagger:model ProfileRequest
type ProfileRequest struct {
	Name string `json:"name" binding:"required,notblank,max=100"`
}

// GetCallerProfile godoc
// @Summary Get the caller's profile
// @Description data is null when the caller has never saved a profile
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Router /profile [get]
func (c *ProfileController) GetCallerProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	profile, err := c.ProfileService.Get(ctx.Request.Context(), user.PrincipalID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// SaveCallerProfile godoc
// @Summary Create or replace the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ProfileRequest true "profile"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /profile [put]
func (c *ProfileController) SaveCallerProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProfileService.Save(ctx.Request.Context(), user.PrincipalID, req.Name); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetUserProfile godoc
// @Summary Get another principal's profile
// @Description Only the principal itself or an admin may read it
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Param principal path string true "principal id"
// @Success 200 {object} util.Response{data=model.UserProfile}
// @Failure 403 {object} util.Response
// @Router /users/{principal}/profile [get]
func (c *ProfileController) GetUserProfile(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	target := ctx.Param("principal")

	if target != user.PrincipalID {
		isAdmin, err := c.RoleService.IsAdmin(ctx.Request.Context(), user.PrincipalID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		if !isAdmin {
			util.Forbidden(ctx)
			return
		}
	}

	profile, err := c.ProfileService.Get(ctx.Request.Context(), target)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
