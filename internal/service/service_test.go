package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Session{}, &model.Interview{}, &model.Feedback{}))
	return db
}

// fakeGemini stands in for the Gemini backend so service tests stay
// deterministic and offline.
type fakeGemini struct {
	structured    *dto.GeneratedFeedback
	structuredErr error
	text          string
	textErr       error
	lastPrompt    string
	lastSystem    string
}

func (f *fakeGemini) GenerateStructuredFeedback(prompt, system string) (*dto.GeneratedFeedback, error) {
	f.lastPrompt = prompt
	f.lastSystem = system
	if f.structuredErr != nil {
		return nil, f.structuredErr
	}
	return f.structured, nil
}

func (f *fakeGemini) GenerateText(prompt, system string) (string, error) {
	f.lastPrompt = prompt
	f.lastSystem = system
	if f.textErr != nil {
		return "", f.textErr
	}
	return f.text, nil
}

func validGeneratedFeedback() *dto.GeneratedFeedback {
	scores := make([]dto.GeneratedCategoryScore, 0, len(FeedbackCategories))
	for i, name := range FeedbackCategories {
		scores = append(scores, dto.GeneratedCategoryScore{
			Name:     name,
			Score:    float64(70 + i),
			Comment:  "Solid showing with room to grow",
			Priority: "medium",
		})
	}
	return &dto.GeneratedFeedback{
		TotalScore:          72,
		CategoryScores:      scores,
		Strengths:           []string{"Clear structure", "Good examples"},
		AreasForImprovement: []string{"Go deeper on system design"},
		FinalAssessment:     "A capable candidate who needs more depth in design discussions.",
		IndustryBenchmark: &dto.GeneratedBenchmark{
			PerformanceLevel: "average",
			Comparison:       "On par with typical candidates at this level",
		},
	}
}
