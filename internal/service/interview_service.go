package service

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	minQuestionAmount   = 5
	maxQuestionAmount   = 50
	defaultPoolLimit    = 20
	minutesPerQuestion  = 3
	parseFailureMessage = "Failed to parse AI response. Try again or reduce the number of questions."
)

var interviewCovers = []string{
	"adobe", "amazon", "facebook", "hostinger", "pinterest", "quora",
	"reddit", "skype", "spotify", "telegram", "tiktok", "yahoo",
}

// InterviewService generates question sets and serves the retrieval
// accessors over interviews.
type InterviewService interface {
	GenerateInterview(req dto.GenerateInterviewRequest) (*dto.GenerateInterviewResponse, error)
	GetInterviewByID(id string) (*dto.InterviewResponse, error)
	GetInterviewsByUserID(userID string) ([]dto.InterviewResponse, error)
	GetLatestInterviews(userID string, limit int) ([]dto.InterviewResponse, error)
}

type interviewService struct {
	interviewRepo repository.InterviewRepository
	promptService PromptService
	geminiService GeminiLLMService
}

func NewInterviewService(
	interviewRepo repository.InterviewRepository,
	promptService PromptService,
	geminiService GeminiLLMService,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		promptService: promptService,
		geminiService: geminiService,
	}
}

// GenerateInterview validates the request, asks the model for a JSON array of
// questions and persists the finalized interview. Nothing is written when
// validation, generation or parsing fails.
func (s *interviewService) GenerateInterview(req dto.GenerateInterviewRequest) (*dto.GenerateInterviewResponse, error) {
	relevantSkills := req.Skills
	if relevantSkills == "" {
		relevantSkills = req.Techstack
	}

	if req.Role == "" || req.Level == "" || req.Type == "" || relevantSkills == "" || req.UserID == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrValidation)
	}
	if req.Amount < minQuestionAmount || req.Amount > maxQuestionAmount {
		return nil, fmt.Errorf("%w: amount must be between %d and %d", ErrValidation, minQuestionAmount, maxQuestionAmount)
	}

	prompt := s.promptService.BuildInterviewPrompt(req, relevantSkills)

	log.Info().Str("role", req.Role).Str("field", req.Field).Msg("Generating interview questions")
	raw, err := s.geminiService.GenerateText(prompt, "")
	if err != nil {
		log.Error().Err(err).Str("role", req.Role).Msg("GenerateInterview: text generation failed")
		return nil, err
	}

	questions, err := parseQuestions(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("GenerateInterview: failed to parse generated questions")
		return nil, fmt.Errorf("%w: %s", ErrGeneration, parseFailureMessage)
	}

	skills := splitSkills(relevantSkills)
	field := req.Field
	if field == "" {
		field = "General"
	}
	userName := req.UserName
	if userName == "" {
		userName = "User"
	}

	interview := model.Interview{
		Role:       req.Role,
		Field:      field,
		Level:      req.Level,
		Type:       req.Type,
		Skills:     skills,
		Techstack:  skills,
		Questions:  questions,
		UserID:     req.UserID,
		UserName:   userName,
		Finalized:  true,
		CoverImage: randomInterviewCover(),
		Metadata: model.InterviewMetadata{
			QuestionCount:     len(questions),
			EstimatedDuration: len(questions) * minutesPerQuestion,
			Difficulty:        req.Level,
			Tags:              interviewTags(req.Role, req.Field, req.Level, req.Type),
		},
	}

	if err := s.interviewRepo.Create(&interview); err != nil {
		log.Error().Err(err).Str("role", req.Role).Msg("GenerateInterview: failed to persist interview")
		return nil, fmt.Errorf("%w: failed to save interview: %s", ErrPersistence, err.Error())
	}
	log.Info().Str("interviewID", interview.ID).Int("questions", len(questions)).Msg("Interview saved")

	return &dto.GenerateInterviewResponse{
		Success:       true,
		InterviewID:   interview.ID,
		QuestionCount: len(questions),
		Message:       "Interview questions generated successfully!",
	}, nil
}

func (s *interviewService) GetInterviewByID(id string) (*dto.InterviewResponse, error) {
	interview, err := s.interviewRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: interview not found: %s", ErrPersistence, err.Error())
	}
	return toInterviewResponse(interview)
}

// GetInterviewsByUserID returns the caller's interviews, newest first, with
// techstack normalized to a non-nil slice.
func (s *interviewService) GetInterviewsByUserID(userID string) ([]dto.InterviewResponse, error) {
	interviews, err := s.interviewRepo.FindAllByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch interviews: %s", ErrPersistence, err.Error())
	}
	return toInterviewResponses(interviews)
}

// GetLatestInterviews returns the practice pool: up to limit finalized
// interviews authored by other users, newest first.
func (s *interviewService) GetLatestInterviews(userID string, limit int) ([]dto.InterviewResponse, error) {
	if limit <= 0 {
		limit = defaultPoolLimit
	}
	interviews, err := s.interviewRepo.FindLatestExcludingUser(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch practice pool: %s", ErrPersistence, err.Error())
	}
	return toInterviewResponses(interviews)
}

// parseQuestions strips markdown fences, parses a JSON array of strings and
// requires every element to be non-empty after trimming.
func parseQuestions(raw string) ([]string, error) {
	var questions []string
	if err := json.Unmarshal([]byte(StripCodeFences(raw)), &questions); err != nil {
		return nil, fmt.Errorf("invalid questions format: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("invalid questions format: empty array")
	}
	for i, q := range questions {
		trimmed := strings.TrimSpace(q)
		if trimmed == "" {
			return nil, fmt.Errorf("invalid questions format: question %d is empty", i+1)
		}
		questions[i] = trimmed
	}
	return questions, nil
}

func splitSkills(relevantSkills string) []string {
	parts := strings.Split(relevantSkills, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		if skill := strings.TrimSpace(part); skill != "" {
			skills = append(skills, skill)
		}
	}
	return skills
}

func interviewTags(values ...string) []string {
	tags := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			tags = append(tags, v)
		}
	}
	return tags
}

func randomInterviewCover() string {
	return "/covers/" + interviewCovers[rand.Intn(len(interviewCovers))] + ".png"
}

func toInterviewResponse(interview *model.Interview) (*dto.InterviewResponse, error) {
	var resp dto.InterviewResponse
	if err := copier.Copy(&resp, interview); err != nil {
		log.Error().Err(err).Str("interviewID", interview.ID).Msg("Failed to copy interview model to DTO")
		return nil, fmt.Errorf("%w: error preparing interview response: %s", ErrPersistence, err.Error())
	}
	if resp.Techstack == nil {
		resp.Techstack = []string{}
	}
	if resp.Skills == nil {
		resp.Skills = []string{}
	}
	return &resp, nil
}

func toInterviewResponses(interviews []model.Interview) ([]dto.InterviewResponse, error) {
	resps := make([]dto.InterviewResponse, 0, len(interviews))
	for i := range interviews {
		resp, err := toInterviewResponse(&interviews[i])
		if err != nil {
			return nil, err
		}
		resps = append(resps, *resp)
	}
	return resps, nil
}
