package repository

import (
	"github.com/prepwise/prepwise/internal/model"
	"gorm.io/gorm"
)

type InterviewRepository interface {
	Create(interview *model.Interview) error
	FindByID(id string) (*model.Interview, error)
	FindAllByUserID(userID string) ([]model.Interview, error)
	FindLatestExcludingUser(userID string, limit int) ([]model.Interview, error)
}

type interviewRepository struct {
	db *gorm.DB
}

func NewInterviewRepository(db *gorm.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

func (r *interviewRepository) Create(interview *model.Interview) error {
	return r.db.Create(interview).Error
}

func (r *interviewRepository) FindByID(id string) (*model.Interview, error) {
	var interview model.Interview
	if err := r.db.First(&interview, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (r *interviewRepository) FindAllByUserID(userID string) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

// FindLatestExcludingUser returns the practice pool: finalized interviews
// authored by anyone except userID, newest first, bounded by limit.
func (r *interviewRepository) FindLatestExcludingUser(userID string, limit int) ([]model.Interview, error) {
	var interviews []model.Interview
	err := r.db.
		Where("finalized = ? AND user_id <> ?", true, userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&interviews).Error
	return interviews, err
}
