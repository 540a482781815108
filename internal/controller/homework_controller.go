package controller

import (
	"school_planner_backend/internal/model"
	"school_planner_backend/internal/service"
	"school_planner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HomeworkController struct {
	HomeworkService *service.HomeworkService
}

func NewHomeworkController(homeworkService *service.HomeworkService) *HomeworkController {
	return &HomeworkController{HomeworkService: homeworkService}
}

// HomeworkRequest is the full item body for create and update. An id in the
// body is ignored.
// swagger:model HomeworkRequest
type HomeworkRequest struct {
	Title     string               `json:"title" binding:"required,notblank,max=255"`
	Subject   string               `json:"subject" binding:"required,notblank,max=100"`
	Completed bool                 `json:"completed"`
	DueDate   int64                `json:"dueDate"`
	Notes     model.Option[string] `json:"notes" swaggertype:"string"`
}

func (r HomeworkRequest) toModel() model.Homework {
	return model.Homework{
		Title:     r.Title,
		Subject:   r.Subject,
		Completed: r.Completed,
		DueDate:   r.DueDate,
		Notes:     r.Notes,
	}
}

// List godoc
// @Summary List the caller's homework
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Homework}
// @Failure 401 {object} util.Response
// @Router /homework [get]
func (c *HomeworkController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	items, err := c.HomeworkService.List(ctx.Request.Context(), user.PrincipalID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

// Get godoc
// @Summary Get one homework item
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "homework id"
// @Success 200 {object} util.Response{data=model.Homework}
// @Failure 404 {object} util.Response
// @Router /homework/{id} [get]
func (c *HomeworkController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	hw, err := c.HomeworkService.Get(ctx.Request.Context(), user.PrincipalID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, hw)
}

// Create godoc
// @Summary Add a homework item
// @Tags homework
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body HomeworkRequest true "homework"
// @Success 201 {object} util.Response{data=map[string]interface{}}
// @Failure 400 {object} util.Response
// @Router /homework [post]
func (c *HomeworkController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req HomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id, err := c.HomeworkService.Create(ctx.Request.Context(), user.PrincipalID, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": id})
}

// Update godoc
// @Summary Replace a homework item
// @Tags homework
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "homework id"
// @Param request body HomeworkRequest true "homework"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /homework/{id} [put]
func (c *HomeworkController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req HomeworkRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.HomeworkService.Update(ctx.Request.Context(), user.PrincipalID, id, req.toModel()); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete a homework item
// @Tags homework
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "homework id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /homework/{id} [delete]
func (c *HomeworkController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.HomeworkService.Delete(ctx.Request.Context(), user.PrincipalID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
