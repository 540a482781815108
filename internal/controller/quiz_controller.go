package controller

import (
	"school_planner_backend/internal/model"
	"school_planner_backend/internal/service"
	"school_planner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// QuizProgressRequest carries the already merged record; the server stores it as is.
// swagger:model QuizProgressRequest
type QuizProgressRequest struct {
	AttemptsCount uint64 `json:"attemptsCount"`
	BestScore     uint64 `json:"bestScore"`
	LastScore     uint64 `json:"lastScore"`
}

// GetProgress godoc
// @Summary Get the caller's quiz progress
// @Description data is null before the first finished quiz
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.QuizProgress}
// @Router /quiz/progress [get]
func (c *QuizController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	progress, err := c.QuizService.GetProgress(ctx.Request.Context(), user.PrincipalID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// SaveProgress godoc
// @Summary Overwrite the caller's quiz progress
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body QuizProgressRequest true "progress"
// @Success 200 {object} util.Response
// @Router /quiz/progress [put]
func (c *QuizController) SaveProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)

	var req QuizProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress := model.QuizProgress{
		AttemptsCount: req.AttemptsCount,
		BestScore:     req.BestScore,
		LastScore:     req.LastScore,
	}
	if err := c.QuizService.SaveProgress(ctx.Request.Context(), user.PrincipalID, progress); err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
