package controller

import (
	"school_planner_backend/internal/model"
	"school_planner_backend/internal/service"
	"school_planner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TimetableController struct {
	TimetableService *service.TimetableService
}

func NewTimetableController(timetableService *service.TimetableService) *TimetableController {
	return &TimetableController{TimetableService: timetableService}
}

// TimeOfDayRequest uses pointers so that 00:00 is distinguishable from a missing field.
type TimeOfDayRequest struct {
	Hour   *int `json:"hour" binding:"required,min=0,max=23"`
	Minute *int `json:"minute" binding:"required,min=0,max=59"`
}

func (t TimeOfDayRequest) toModel() model.TimeOfDay {
	return model.TimeOfDay{Hour: *t.Hour, Minute: *t.Minute}
}

// TimetableEntryRequest
// swagger:model TimetableEntryRequest
type TimetableEntryRequest struct {
	Day       string               `json:"day" binding:"required,weekday"`
	Subject   string               `json:"subject" binding:"required,notblank,max=100"`
	StartTime TimeOfDayRequest     `json:"startTime" binding:"required"`
	EndTime   TimeOfDayRequest     `json:"endTime" binding:"required"`
	Location  model.Option[string] `json:"location" swaggertype:"string"`
}

func (r TimetableEntryRequest) toModel() model.TimetableEntry {
	day, _ := model.ParseDay(r.Day)
	return model.TimetableEntry{
		Day:       day,
		Subject:   r.Subject,
		StartTime: r.StartTime.toModel(),
		EndTime:   r.EndTime.toModel(),
		Location:  r.Location,
	}
}

// List godoc
// @Summary List timetable entries
// @Description Without day, every entry; with day, that day's entries ordered by start time
// @Tags timetable
// @Produce json
// @Security ApiKeyAuth
// @Param day query string false "Monday..Sunday"
// @Success 200 {object} util.Response{data=[]model.TimetableEntry}
// @Failure 400 {object} util.Response
// @Router /timetable [get]
func (c *TimetableController) List(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var (
		entries []model.TimetableEntry
		err     error
	)
	if dayParam := ctx.Query("day"); dayParam != "" {
		day, parseErr := model.ParseDay(dayParam)
		if parseErr != nil {
			util.BadRequest(ctx, parseErr.Error())
			return
		}
		entries, err = c.TimetableService.ListByDay(ctx.Request.Context(), user.PrincipalID, day)
	} else {
		entries, err = c.TimetableService.List(ctx.Request.Context(), user.PrincipalID)
	}
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Get godoc
// @Summary Get one timetable entry
// @Tags timetable
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "entry id"
// @Success 200 {object} util.Response{data=model.TimetableEntry}
// @Failure 404 {object} util.Response
// @Router /timetable/{id} [get]
func (c *TimetableController) Get(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	entry, err := c.TimetableService.Get(ctx.Request.Context(), user.PrincipalID, id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, entry)
}

// Create godoc
// @Summary Add a timetable entry
// @Tags timetable
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body TimetableEntryRequest true "entry"
// @Success 201 {object} util.Response{data=map[string]interface{}}
// @Failure 400 {object} util.Response
// @Router /timetable [post]
func (c *TimetableController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req TimetableEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id, err := c.TimetableService.Create(ctx.Request.Context(), user.PrincipalID, req.toModel())
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": id})
}

// Update godoc
// @Summary Replace a timetable entry
// @Tags timetable
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "entry id"
// @Param request body TimetableEntryRequest true "entry"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /timetable/{id} [put]
func (c *TimetableController) Update(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req TimetableEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.TimetableService.Update(ctx.Request.Context(), user.PrincipalID, id, req.toModel()); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// Delete godoc
// @Summary Delete a timetable entry
// @Tags timetable
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "entry id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /timetable/{id} [delete]
func (c *TimetableController) Delete(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.TimetableService.Delete(ctx.Request.Context(), user.PrincipalID, id); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
