package repository

import (
	"testing"
	"time"

	"github.com/prepwise/prepwise/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFeedback(t *testing.T, repo FeedbackRepository, id, interviewID, userID string, score float64, createdAt time.Time) {
	t.Helper()
	require.NoError(t, repo.Create(&model.Feedback{
		ID:          id,
		InterviewID: interviewID,
		UserID:      userID,
		TotalScore:  score,
		CategoryScores: []model.CategoryScore{
			{Name: "Communication Skills", Score: score, Comment: "ok"},
		},
		FinalAssessment: "ok",
		CreatedAt:       createdAt,
	}))
}

func TestFeedbackRoundTripPreservesNestedFields(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))

	feedback := &model.Feedback{
		ID:          "fb-1",
		InterviewID: "interview-1",
		UserID:      "user-1",
		TotalScore:  77,
		CategoryScores: []model.CategoryScore{
			{Name: "Technical Knowledge", Score: 80, Comment: "Strong fundamentals", Priority: "low"},
			{Name: "Confidence & Clarity", Score: 70, Comment: "Hesitant at times", Priority: "high"},
		},
		Strengths:           []string{"Concise answers"},
		AreasForImprovement: []string{"Quantify impact"},
		FinalAssessment:     "Good showing",
		IndustryBenchmark:   &model.IndustryBenchmark{PerformanceLevel: "above_average", Comparison: "Ahead of peers"},
		Metadata: model.FeedbackMetadata{
			InterviewRole:    "Backend Engineer",
			InterviewType:    "Technical Interview",
			TranscriptLength: 12,
			GeneratedAt:      "2026-08-01T12:00:00Z",
			Version:          "2.0",
		},
	}
	require.NoError(t, repo.Create(feedback))

	stored, err := repo.FindByID("fb-1")
	require.NoError(t, err)
	require.Len(t, stored.CategoryScores, 2)
	assert.Equal(t, "Technical Knowledge", stored.CategoryScores[0].Name)
	assert.Equal(t, "high", stored.CategoryScores[1].Priority)
	require.NotNil(t, stored.IndustryBenchmark)
	assert.Equal(t, "above_average", stored.IndustryBenchmark.PerformanceLevel)
	assert.Equal(t, 12, stored.Metadata.TranscriptLength)
	assert.Equal(t, "2.0", stored.Metadata.Version)
}

func TestFeedbackUpsertCreatesWhenMissing(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&model.Feedback{
		ID:          "fb-1",
		InterviewID: "interview-1",
		UserID:      "user-1",
		TotalScore:  60,
	}))

	stored, err := repo.FindByID("fb-1")
	require.NoError(t, err)
	assert.Equal(t, 60.0, stored.TotalScore)
}

// Upserting an existing id replaces the row; the second payload wins and no
// duplicate appears.
func TestFeedbackUpsertOverwritesExistingRow(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))

	require.NoError(t, repo.Upsert(&model.Feedback{
		ID:              "fb-1",
		InterviewID:     "interview-1",
		UserID:          "user-1",
		TotalScore:      60,
		Strengths:       []string{"first attempt"},
		FinalAssessment: "first",
	}))
	require.NoError(t, repo.Upsert(&model.Feedback{
		ID:              "fb-1",
		InterviewID:     "interview-1",
		UserID:          "user-1",
		TotalScore:      85,
		Strengths:       []string{"second attempt"},
		FinalAssessment: "second",
	}))

	count, err := repo.CountByInterviewAndUser("interview-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	stored, err := repo.FindByID("fb-1")
	require.NoError(t, err)
	assert.Equal(t, 85.0, stored.TotalScore)
	assert.Equal(t, []string{"second attempt"}, stored.Strengths)
	assert.Equal(t, "second", stored.FinalAssessment)
}

func TestFeedbackFindByInterviewAndUserNone(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))

	feedback, err := repo.FindByInterviewAndUser("interview-1", "user-1")

	require.NoError(t, err)
	assert.Nil(t, feedback)
}

func TestFeedbackFindByInterviewAndUserScopesToPair(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))
	now := time.Now().UTC()

	seedFeedback(t, repo, "fb-mine", "interview-1", "user-1", 70, now)
	seedFeedback(t, repo, "fb-theirs", "interview-1", "user-2", 90, now)
	seedFeedback(t, repo, "fb-other", "interview-2", "user-1", 50, now)

	feedback, err := repo.FindByInterviewAndUser("interview-1", "user-1")

	require.NoError(t, err)
	require.NotNil(t, feedback)
	assert.Equal(t, "fb-mine", feedback.ID)
}

// With duplicate rows for one pair the read is still deterministic: the
// newest row wins.
func TestFeedbackFindByInterviewAndUserNewestOfDuplicates(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedFeedback(t, repo, "fb-old", "interview-1", "user-1", 60, base)
	seedFeedback(t, repo, "fb-new", "interview-1", "user-1", 80, base.Add(time.Hour))

	feedback, err := repo.FindByInterviewAndUser("interview-1", "user-1")

	require.NoError(t, err)
	require.NotNil(t, feedback)
	assert.Equal(t, "fb-new", feedback.ID)
	assert.Equal(t, 80.0, feedback.TotalScore)
}

func TestFeedbackFindAllByUserIDNewestFirstWithLimit(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedFeedback(t, repo, string(rune('a'+i)), "interview-1", "user-1", float64(50+i), base.Add(time.Duration(i)*time.Hour))
	}
	seedFeedback(t, repo, "other", "interview-1", "user-2", 99, base.Add(10*time.Hour))

	feedbacks, err := repo.FindAllByUserID("user-1", 3)

	require.NoError(t, err)
	require.Len(t, feedbacks, 3)
	assert.Equal(t, "e", feedbacks[0].ID)
	assert.Equal(t, "d", feedbacks[1].ID)
	assert.Equal(t, "c", feedbacks[2].ID)
}

func TestFeedbackCountByInterviewAndUser(t *testing.T) {
	repo := NewFeedbackRepository(newTestDB(t))
	now := time.Now().UTC()

	seedFeedback(t, repo, "fb-1", "interview-1", "user-1", 70, now)
	seedFeedback(t, repo, "fb-2", "interview-1", "user-1", 75, now.Add(time.Minute))
	seedFeedback(t, repo, "fb-3", "interview-1", "user-2", 80, now)

	count, err := repo.CountByInterviewAndUser("interview-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
