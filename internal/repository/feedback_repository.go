package repository

import (
	"github.com/prepwise/prepwise/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeedbackRepository interface {
	Create(feedback *model.Feedback) error
	Upsert(feedback *model.Feedback) error
	FindByID(id string) (*model.Feedback, error)
	FindByInterviewAndUser(interviewID, userID string) (*model.Feedback, error)
	FindAllByUserID(userID string, limit int) ([]model.Feedback, error)
	CountByInterviewAndUser(interviewID, userID string) (int64, error)
}

type feedbackRepository struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepository{db: db}
}

func (r *feedbackRepository) Create(feedback *model.Feedback) error {
	return r.db.Create(feedback).Error
}

// Upsert replaces the record at feedback.ID entirely, creating it when
// missing. Last write wins for repeated ids.
func (r *feedbackRepository) Upsert(feedback *model.Feedback) error {
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(feedback).Error
}

func (r *feedbackRepository) FindByID(id string) (*model.Feedback, error) {
	var feedback model.Feedback
	if err := r.db.First(&feedback, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// FindByInterviewAndUser returns the single feedback for the pair, or
// (nil, nil) when none exists. Should duplicates exist the newest one is
// returned, bounded by LIMIT 1.
func (r *feedbackRepository) FindByInterviewAndUser(interviewID, userID string) (*model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Order("created_at DESC").
		Limit(1).
		Find(&feedbacks).Error
	if err != nil {
		return nil, err
	}
	if len(feedbacks) == 0 {
		return nil, nil
	}
	return &feedbacks[0], nil
}

func (r *feedbackRepository) FindAllByUserID(userID string, limit int) ([]model.Feedback, error) {
	var feedbacks []model.Feedback
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&feedbacks).Error
	return feedbacks, err
}

func (r *feedbackRepository) CountByInterviewAndUser(interviewID, userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Feedback{}).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Count(&count).Error
	return count, err
}
