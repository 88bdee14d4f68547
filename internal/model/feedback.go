package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryScore is one entry of the fixed five-category rubric. Order within
// Feedback.CategoryScores is display-significant and preserved as generated.
type CategoryScore struct {
	Name      string   `json:"name"`
	Score     float64  `json:"score"`
	Comment   string   `json:"comment"`
	KeyPoints []string `json:"keyPoints,omitempty"`
	Priority  string   `json:"priority,omitempty"` // high, medium, low
}

type DetailedInsights struct {
	CommunicationStyle     string `json:"communicationStyle,omitempty"`
	TechnicalDepth         string `json:"technicalDepth,omitempty"`
	ProblemSolvingApproach string `json:"problemSolvingApproach,omitempty"`
	OverallReadiness       string `json:"overallReadiness,omitempty"`
}

type IndustryBenchmark struct {
	PerformanceLevel string `json:"performanceLevel"` // below_average, average, above_average, excellent
	Comparison       string `json:"comparison"`
}

// FeedbackMetadata records the generation context for a feedback document.
type FeedbackMetadata struct {
	InterviewRole    string `json:"interviewRole"`
	InterviewType    string `json:"interviewType"`
	TranscriptLength int    `json:"transcriptLength"`
	GeneratedAt      string `json:"generatedAt"`
	Version          string `json:"version"`
}

// Feedback is written once (or overwritten in full when an explicit id is
// supplied) and read-only afterwards. The (InterviewID, UserID) pair is the
// intended uniqueness key but is not enforced at the storage level; reads
// bound the result with LIMIT 1, newest first.
type Feedback struct {
	ID                  string             `gorm:"primarykey" json:"id"`
	InterviewID         string             `gorm:"not null;index" json:"interviewId"`
	UserID              string             `gorm:"not null;index" json:"userId"`
	TotalScore          float64            `gorm:"not null" json:"totalScore"`
	CategoryScores      []CategoryScore    `gorm:"serializer:json" json:"categoryScores"`
	Strengths           []string           `gorm:"serializer:json" json:"strengths"`
	AreasForImprovement []string           `gorm:"serializer:json" json:"areasForImprovement"`
	FinalAssessment     string             `gorm:"type:text" json:"finalAssessment"`
	DetailedInsights    *DetailedInsights  `gorm:"serializer:json" json:"detailedInsights,omitempty"`
	NextSteps           []string           `gorm:"serializer:json" json:"nextSteps,omitempty"`
	IndustryBenchmark   *IndustryBenchmark `gorm:"serializer:json" json:"industryBenchmark,omitempty"`
	Metadata            FeedbackMetadata   `gorm:"serializer:json" json:"metadata"`
	CreatedAt           time.Time          `gorm:"index" json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
	DeletedAt           gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
