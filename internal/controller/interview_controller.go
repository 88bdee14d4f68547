package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
)

type InterviewController struct {
	interviewService service.InterviewService
}

func NewInterviewController(interviewService service.InterviewService) *InterviewController {
	return &InterviewController{interviewService: interviewService}
}

// Generate godoc
// @Summary Generate AI interview questions
// @Description Generates between 5 and 50 questions for a role and persists the finalized interview.
// @Tags Interviews
// @Accept json
// @Produce json
// @Param body body dto.GenerateInterviewRequest true "Role, level, type, skills, amount and user id"
// @Success 200 {object} dto.GenerateInterviewResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /interviews/generate [post]
func (c *InterviewController) Generate(ctx *gin.Context) {
	var req dto.GenerateInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Generate: failed to bind JSON")
		respondBindError(ctx, err)
		return
	}

	resp, err := c.interviewService.GenerateInterview(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Capabilities godoc
// @Summary Describe the interview generation API
// @Description Static discovery response listing supported levels and types.
// @Tags Interviews
// @Produce json
// @Success 200 {object} dto.CapabilityResponse
// @Router /interviews/generate [get]
func (c *InterviewController) Capabilities(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.CapabilityResponse{
		Success:     true,
		Message:     "Universal Interview Generation API",
		Description: "Generate interview questions for any profession or field",
		Endpoints: dto.CapabilityEndpoints{
			POST:            "Generate new interview questions for any role",
			SupportedLevels: service.SupportedLevels,
			SupportedTypes:  service.SupportedTypes,
			SupportedFields: "Any profession or industry",
		},
	})
}

// GetMyInterviews godoc
// @Summary List the caller's interviews
// @Description Returns the authenticated user's interviews, newest first.
// @Tags Interviews
// @Produce json
// @Success 200 {object} dto.InterviewListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/my [get]
func (c *InterviewController) GetMyInterviews(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		respondError(ctx, service.ErrAuthRequired)
		return
	}

	interviews, err := c.interviewService.GetInterviewsByUserID(user.ID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.InterviewListResponse{Success: true, Interviews: interviews})
}

// GetLatestInterviews godoc
// @Summary List the practice pool
// @Description Finalized interviews authored by other users, newest first, capped by limit (default 20).
// @Tags Interviews
// @Produce json
// @Param limit query int false "Maximum number of interviews to return"
// @Success 200 {object} dto.InterviewListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /interviews/latest [get]
func (c *InterviewController) GetLatestInterviews(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		respondError(ctx, service.ErrAuthRequired)
		return
	}

	limit := 0
	if limitStr := ctx.Query("limit"); limitStr != "" {
		val, err := strconv.Atoi(limitStr)
		if err != nil || val <= 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: "Invalid limit"})
			return
		}
		limit = val
	}

	interviews, err := c.interviewService.GetLatestInterviews(user.ID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.InterviewListResponse{Success: true, Interviews: interviews})
}

// GetInterviewDetails godoc
// @Summary Get one interview
// @Tags Interviews
// @Produce json
// @Param interview_id path string true "Interview ID"
// @Success 200 {object} dto.InterviewResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /interviews/{interview_id} [get]
func (c *InterviewController) GetInterviewDetails(ctx *gin.Context) {
	interview, err := c.interviewService.GetInterviewByID(ctx.Param("interview_id"))
	if err != nil {
		log.Warn().Err(err).Str("interviewID", ctx.Param("interview_id")).Msg("GetInterviewDetails: not found or service error")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Success: false, Error: "Interview not found"})
		return
	}
	ctx.JSON(http.StatusOK, interview)
}
