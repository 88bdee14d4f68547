package dto

import "time"

// ErrorResponse is the uniform failure envelope. Every operation failure is
// converted into this shape at the controller boundary.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type GenerateInterviewResponse struct {
	Success       bool   `json:"success"`
	InterviewID   string `json:"interviewId"`
	QuestionCount int    `json:"questionCount"`
	Message       string `json:"message"`
}

// CapabilityResponse is the static discovery document served on GET.
type CapabilityResponse struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	Description string              `json:"description"`
	Endpoints   CapabilityEndpoints `json:"endpoints"`
}

type CapabilityEndpoints struct {
	POST            string   `json:"POST"`
	SupportedLevels []string `json:"supportedLevels"`
	SupportedTypes  []string `json:"supportedTypes"`
	SupportedFields string   `json:"supportedFields"`
}

type InterviewMetadataResponse struct {
	QuestionCount     int      `json:"questionCount"`
	EstimatedDuration int      `json:"estimatedDuration"`
	Difficulty        string   `json:"difficulty"`
	Tags              []string `json:"tags"`
}

type InterviewResponse struct {
	ID         string                    `json:"id"`
	Role       string                    `json:"role"`
	Field      string                    `json:"field"`
	Level      string                    `json:"level"`
	Type       string                    `json:"type"`
	Skills     []string                  `json:"skills"`
	Techstack  []string                  `json:"techstack"`
	Questions  []string                  `json:"questions"`
	UserID     string                    `json:"userId"`
	UserName   string                    `json:"userName,omitempty"`
	Finalized  bool                      `json:"finalized"`
	CoverImage string                    `json:"coverImage,omitempty"`
	Metadata   InterviewMetadataResponse `json:"metadata"`
	CreatedAt  time.Time                 `json:"createdAt"`
	UpdatedAt  time.Time                 `json:"updatedAt"`
}

type InterviewListResponse struct {
	Success    bool                `json:"success"`
	Interviews []InterviewResponse `json:"interviews"`
}

type CategoryScoreResponse struct {
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	Comment   string   `json:"comment"`
	KeyPoints []string `json:"keyPoints,omitempty"`
	Priority  string   `json:"priority,omitempty"`
}

type FeedbackMetadataResponse struct {
	InterviewRole    string `json:"interviewRole"`
	InterviewType    string `json:"interviewType"`
	TranscriptLength int    `json:"transcriptLength"`
	GeneratedAt      string `json:"generatedAt"`
	Version          string `json:"version"`
}

type FeedbackResponse struct {
	ID                  string                   `json:"id"`
	InterviewID         string                   `json:"interviewId"`
	UserID              string                   `json:"userId"`
	TotalScore          float64                  `json:"totalScore"`
	CategoryScores      []CategoryScoreResponse  `json:"categoryScores"`
	Strengths           []string                 `json:"strengths"`
	AreasForImprovement []string                 `json:"areasForImprovement"`
	FinalAssessment     string                   `json:"finalAssessment"`
	DetailedInsights    *GeneratedInsights       `json:"detailedInsights,omitempty"`
	NextSteps           []string                 `json:"nextSteps,omitempty"`
	IndustryBenchmark   *GeneratedBenchmark      `json:"industryBenchmark,omitempty"`
	Metadata            FeedbackMetadataResponse `json:"metadata"`
	CreatedAt           time.Time                `json:"createdAt"`
}

type CreateFeedbackResponse struct {
	Success    bool              `json:"success"`
	FeedbackID string            `json:"feedbackId"`
	Feedback   *FeedbackResponse `json:"feedback,omitempty"`
}

type GetFeedbackResponse struct {
	Success  bool              `json:"success"`
	Feedback *FeedbackResponse `json:"feedback"`
}

type TipsResponse struct {
	Success bool     `json:"success"`
	Tips    []string `json:"tips"`
}

type AskQuestionResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response"`
}

type FeedbackAnalyticsResponse struct {
	Success           bool               `json:"success"`
	AverageScore      float64            `json:"averageScore"`
	ImprovementTrend  float64            `json:"improvementTrend"`
	StrongestCategory string             `json:"strongestCategory"`
	WeakestCategory   string             `json:"weakestCategory"`
	FeedbackHistory   []FeedbackResponse `json:"feedbackHistory"`
}

type UserResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	ProfileURL *string `json:"profileURL,omitempty"`
}

type AuthResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	User    *UserResponse `json:"user,omitempty"`
}
