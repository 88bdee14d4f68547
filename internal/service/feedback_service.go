package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	feedbackVersion      = "2.0"
	defaultInterviewRole = "Software Developer"
	defaultInterviewType = "Technical Interview"
	maxTips              = 6
	analyticsWindow      = 10
)

// FeedbackService owns the feedback pipeline: prompt construction, structured
// generation, schema validation and the recorder, plus the tips and free-text
// Q&A flows.
type FeedbackService interface {
	CreateFeedback(userID string, req dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error)
	GetFeedbackByInterviewID(interviewID, userID string) (*dto.GetFeedbackResponse, error)
	GenerateCategoryTips(req dto.GenerateTipsRequest) (*dto.TipsResponse, error)
	AskFeedbackQuestion(userID string, req dto.AskQuestionRequest) (*dto.AskQuestionResponse, error)
	GetFeedbackAnalytics(userID string) (*dto.FeedbackAnalyticsResponse, error)
}

type feedbackService struct {
	feedbackRepo  repository.FeedbackRepository
	promptService PromptService
	geminiService GeminiLLMService
	validator     FeedbackValidator
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	promptService PromptService,
	geminiService GeminiLLMService,
	validator FeedbackValidator,
) FeedbackService {
	return &feedbackService{
		feedbackRepo:  feedbackRepo,
		promptService: promptService,
		geminiService: geminiService,
		validator:     validator,
	}
}

// CreateFeedback runs prompt → structured generation → validation → record.
// When req.FeedbackID is set the record at that id is replaced entirely;
// otherwise a fresh id is allocated. Generation and persistence are two
// sequential steps with no rollback: if the write fails the generated content
// is lost and the caller resubmits.
func (s *feedbackService) CreateFeedback(userID string, req dto.CreateFeedbackRequest) (*dto.CreateFeedbackResponse, error) {
	if req.InterviewID == "" || userID == "" {
		return nil, fmt.Errorf("%w: interview id and user id are required", ErrValidation)
	}

	interviewRole := req.InterviewRole
	if interviewRole == "" {
		interviewRole = defaultInterviewRole
	}
	interviewType := req.InterviewType
	if interviewType == "" {
		interviewType = defaultInterviewType
	}

	prompt, system := s.promptService.BuildFeedbackPrompt(req.Transcript, interviewRole, interviewType)

	generated, err := s.geminiService.GenerateStructuredFeedback(prompt, system)
	if err != nil {
		log.Error().Err(err).Str("interviewID", req.InterviewID).Msg("CreateFeedback: structured generation failed")
		return nil, err
	}

	if err := s.validator.Validate(generated); err != nil {
		log.Warn().Err(err).Str("interviewID", req.InterviewID).Msg("CreateFeedback: generated feedback rejected by schema validation")
		return nil, err
	}

	feedback := model.Feedback{
		InterviewID: req.InterviewID,
		UserID:      userID,
		Metadata: model.FeedbackMetadata{
			InterviewRole:    interviewRole,
			InterviewType:    interviewType,
			TranscriptLength: len(req.Transcript),
			GeneratedAt:      time.Now().UTC().Format(time.RFC3339),
			Version:          feedbackVersion,
		},
		CreatedAt: time.Now().UTC(),
	}
	if err := copier.Copy(&feedback, generated); err != nil {
		return nil, fmt.Errorf("%w: failed to map generated feedback: %s", ErrGeneration, err.Error())
	}

	if req.FeedbackID != "" {
		feedback.ID = req.FeedbackID
		err = s.feedbackRepo.Upsert(&feedback)
	} else {
		feedback.ID = uuid.NewString()
		err = s.feedbackRepo.Create(&feedback)
	}
	if err != nil {
		log.Error().Err(err).Str("feedbackID", feedback.ID).Msg("CreateFeedback: failed to persist feedback")
		return nil, fmt.Errorf("%w: failed to save feedback: %s", ErrPersistence, err.Error())
	}

	resp, err := toFeedbackResponse(&feedback)
	if err != nil {
		return nil, err
	}
	return &dto.CreateFeedbackResponse{
		Success:    true,
		FeedbackID: feedback.ID,
		Feedback:   resp,
	}, nil
}

// GetFeedbackByInterviewID returns the feedback for the pair, or a successful
// response with a nil feedback when none exists.
func (s *feedbackService) GetFeedbackByInterviewID(interviewID, userID string) (*dto.GetFeedbackResponse, error) {
	feedback, err := s.feedbackRepo.FindByInterviewAndUser(interviewID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch feedback: %s", ErrPersistence, err.Error())
	}
	if feedback == nil {
		return &dto.GetFeedbackResponse{Success: true, Feedback: nil}, nil
	}
	resp, err := toFeedbackResponse(feedback)
	if err != nil {
		return nil, err
	}
	return &dto.GetFeedbackResponse{Success: true, Feedback: resp}, nil
}

// GenerateCategoryTips produces up to six improvement tips for one rubric
// category. The raw model text is split into lines, each trimmed, empty
// lines dropped, and the result truncated to six entries in original order.
func (s *feedbackService) GenerateCategoryTips(req dto.GenerateTipsRequest) (*dto.TipsResponse, error) {
	prompt, system := s.promptService.BuildTipsPrompt(req)

	text, err := s.geminiService.GenerateText(prompt, system)
	if err != nil {
		log.Error().Err(err).Str("category", req.CategoryName).Msg("GenerateCategoryTips: text generation failed")
		return nil, err
	}

	return &dto.TipsResponse{Success: true, Tips: SplitTips(text)}, nil
}

// SplitTips applies the only post-processing rule of the tips flow: split on
// newlines, trim each line, drop empties, cap at six.
func SplitTips(text string) []string {
	tips := make([]string, 0, maxTips)
	for _, line := range strings.Split(text, "\n") {
		tip := strings.TrimSpace(line)
		if tip == "" {
			continue
		}
		tips = append(tips, tip)
		if len(tips) == maxTips {
			break
		}
	}
	return tips
}

// AskFeedbackQuestion answers a free-text question about the caller's
// feedback for an interview.
func (s *feedbackService) AskFeedbackQuestion(userID string, req dto.AskQuestionRequest) (*dto.AskQuestionResponse, error) {
	feedback, err := s.feedbackRepo.FindByInterviewAndUser(req.InterviewID, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch feedback: %s", ErrPersistence, err.Error())
	}
	if feedback == nil {
		return nil, fmt.Errorf("%w: no feedback exists for this interview", ErrValidation)
	}

	interviewRole := req.InterviewRole
	if interviewRole == "" {
		interviewRole = feedback.Metadata.InterviewRole
	}

	feedbackResp, err := toFeedbackResponse(feedback)
	if err != nil {
		return nil, err
	}
	prompt, system := s.promptService.BuildQuestionPrompt(feedbackResp, req.Question, interviewRole)

	text, err := s.geminiService.GenerateText(prompt, system)
	if err != nil {
		log.Error().Err(err).Str("interviewID", req.InterviewID).Msg("AskFeedbackQuestion: text generation failed")
		return nil, err
	}

	return &dto.AskQuestionResponse{Success: true, Response: strings.TrimSpace(text)}, nil
}

// GetFeedbackAnalytics summarizes the caller's last ten feedback records.
func (s *feedbackService) GetFeedbackAnalytics(userID string) (*dto.FeedbackAnalyticsResponse, error) {
	feedbacks, err := s.feedbackRepo.FindAllByUserID(userID, analyticsWindow)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch feedback history: %s", ErrPersistence, err.Error())
	}

	resp := &dto.FeedbackAnalyticsResponse{
		Success:         true,
		FeedbackHistory: make([]dto.FeedbackResponse, 0, len(feedbacks)),
	}
	if len(feedbacks) == 0 {
		return resp, nil
	}

	total := 0.0
	categoryTotals := map[string]float64{}
	categoryCounts := map[string]int{}
	for i := range feedbacks {
		total += feedbacks[i].TotalScore
		for _, cat := range feedbacks[i].CategoryScores {
			categoryTotals[cat.Name] += cat.Score
			categoryCounts[cat.Name]++
		}
		fr, convErr := toFeedbackResponse(&feedbacks[i])
		if convErr != nil {
			return nil, convErr
		}
		resp.FeedbackHistory = append(resp.FeedbackHistory, *fr)
	}

	resp.AverageScore = total / float64(len(feedbacks))
	if len(feedbacks) > 1 {
		// Records are newest first.
		resp.ImprovementTrend = feedbacks[0].TotalScore - feedbacks[len(feedbacks)-1].TotalScore
	}

	bestAvg, worstAvg := -1.0, 101.0
	for name, sum := range categoryTotals {
		avg := sum / float64(categoryCounts[name])
		if avg > bestAvg {
			bestAvg = avg
			resp.StrongestCategory = name
		}
		if avg < worstAvg {
			worstAvg = avg
			resp.WeakestCategory = name
		}
	}

	return resp, nil
}

func toFeedbackResponse(feedback *model.Feedback) (*dto.FeedbackResponse, error) {
	var resp dto.FeedbackResponse
	if err := copier.Copy(&resp, feedback); err != nil {
		log.Error().Err(err).Str("feedbackID", feedback.ID).Msg("Failed to copy feedback model to DTO")
		return nil, fmt.Errorf("%w: error preparing feedback response: %s", ErrPersistence, err.Error())
	}
	return &resp, nil
}
