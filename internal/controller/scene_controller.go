package controller

import (
	"school_planner_backend/internal/service"
	"school_planner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SceneController struct {
	SceneService *service.SceneService
}

func NewSceneController(sceneService *service.SceneService) *SceneController {
	return &SceneController{SceneService: sceneService}
}

// ListScenes godoc
// @Summary List the background scenes
// @Tags scene
// @Produce json
// @Success 200 {object} util.Response{data=[]model.SceneInfo}
// @Router /scenes [get]
func (c *SceneController) ListScenes(ctx *gin.Context) {
	util.Success(ctx, c.SceneService.Catalog())
}
