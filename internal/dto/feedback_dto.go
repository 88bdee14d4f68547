package dto

// GeneratedFeedback is the schema the structured generation call must
// conform to. Validation is strict: out-of-range scores and unknown enum
// values reject the whole object, they are never clamped.
type GeneratedFeedback struct {
	TotalScore          float64                  `json:"totalScore" validate:"min=0,max=100"`
	CategoryScores      []GeneratedCategoryScore `json:"categoryScores" validate:"required,min=1,dive"`
	Strengths           []string                 `json:"strengths" validate:"required"`
	AreasForImprovement []string                 `json:"areasForImprovement" validate:"required"`
	FinalAssessment     string                   `json:"finalAssessment" validate:"required"`
	DetailedInsights    *GeneratedInsights       `json:"detailedInsights,omitempty"`
	NextSteps           []string                 `json:"nextSteps,omitempty"`
	IndustryBenchmark   *GeneratedBenchmark      `json:"industryBenchmark,omitempty"`
}

type GeneratedCategoryScore struct {
	Name      string   `json:"name" validate:"required"`
	Score     float64  `json:"score" validate:"min=0,max=100"`
	Comment   string   `json:"comment" validate:"required"`
	KeyPoints []string `json:"keyPoints,omitempty"`
	Priority  string   `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
}

type GeneratedInsights struct {
	CommunicationStyle     string `json:"communicationStyle,omitempty"`
	TechnicalDepth         string `json:"technicalDepth,omitempty"`
	ProblemSolvingApproach string `json:"problemSolvingApproach,omitempty"`
	OverallReadiness       string `json:"overallReadiness,omitempty"`
}

type GeneratedBenchmark struct {
	PerformanceLevel string `json:"performanceLevel" validate:"required,oneof=below_average average above_average excellent"`
	Comparison       string `json:"comparison"`
}
