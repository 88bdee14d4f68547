package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
)

type FeedbackController struct {
	feedbackService service.FeedbackService
}

func NewFeedbackController(feedbackService service.FeedbackService) *FeedbackController {
	return &FeedbackController{feedbackService: feedbackService}
}

// CreateFeedback godoc
// @Summary Generate and record feedback for an interview attempt
// @Description Builds the rubric prompt from the transcript, requests schema-conformant feedback and persists it. Supplying feedbackId overwrites that record in full.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param interview_id path string true "Interview ID"
// @Param body body dto.CreateFeedbackRequest true "Transcript and optional feedbackId"
// @Success 200 {object} dto.CreateFeedbackResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /interviews/{interview_id}/feedback [post]
func (c *FeedbackController) CreateFeedback(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		respondError(ctx, service.ErrAuthRequired)
		return
	}

	var req dto.CreateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateFeedback: failed to bind JSON")
		respondBindError(ctx, err)
		return
	}
	req.InterviewID = ctx.Param("interview_id")

	resp, err := c.feedbackService.CreateFeedback(user.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetFeedback godoc
// @Summary Get the caller's feedback for an interview
// @Tags Feedback
// @Produce json
// @Param interview_id path string true "Interview ID"
// @Success 200 {object} dto.GetFeedbackResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /interviews/{interview_id}/feedback [get]
func (c *FeedbackController) GetFeedback(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		respondError(ctx, service.ErrAuthRequired)
		return
	}

	resp, err := c.feedbackService.GetFeedbackByInterviewID(ctx.Param("interview_id"), user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GenerateTips godoc
// @Summary Generate improvement tips for one rubric category
// @Description Returns at most six non-empty trimmed tip lines in generation order.
// @Tags Feedback
// @Accept json
// @Produce json
// @Param body body dto.GenerateTipsRequest true "Category context"
// @Success 200 {object} dto.TipsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedback/tips [post]
func (c *FeedbackController) GenerateTips(ctx *gin.Context) {
	var req dto.GenerateTipsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	resp, err := c.feedbackService.GenerateCategoryTips(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AskQuestion godoc
// @Summary Ask a free-text question about feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param body body dto.AskQuestionRequest true "Interview id and question"
// @Success 200 {object} dto.AskQuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedback/ask [post]
func (c *FeedbackController) AskQuestion(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		respondError(ctx, service.ErrAuthRequired)
		return
	}

	var req dto.AskQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	resp, err := c.feedbackService.AskFeedbackQuestion(user.ID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAnalytics godoc
// @Summary Summarize the caller's recent feedback
// @Description Average score, improvement trend and strongest/weakest category over the last ten records.
// @Tags Feedback
// @Produce json
// @Success 200 {object} dto.FeedbackAnalyticsResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /feedback/analytics [get]
func (c *FeedbackController) GetAnalytics(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		respondError(ctx, service.ErrAuthRequired)
		return
	}

	resp, err := c.feedbackService.GetFeedbackAnalytics(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
