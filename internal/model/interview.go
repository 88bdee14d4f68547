package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InterviewMetadata is denormalized display metadata attached at creation time.
type InterviewMetadata struct {
	QuestionCount     int      `json:"questionCount"`
	EstimatedDuration int      `json:"estimatedDuration"` // minutes
	Difficulty        string   `json:"difficulty"`
	Tags              []string `json:"tags"`
}

// Interview is immutable after creation. It is owned by the creating user but
// readable by others through the practice pool (finalized, not the caller's).
type Interview struct {
	ID         string            `gorm:"primarykey" json:"id"`
	Role       string            `gorm:"not null" json:"role"`
	Field      string            `json:"field"`
	Level      string            `gorm:"not null" json:"level"`
	Type       string            `gorm:"not null" json:"type"`
	Skills     []string          `gorm:"serializer:json" json:"skills"`
	Techstack  []string          `gorm:"serializer:json" json:"techstack"`
	Questions  []string          `gorm:"serializer:json" json:"questions"`
	UserID     string            `gorm:"not null;index" json:"userId"`
	UserName   string            `json:"userName"`
	Finalized  bool              `gorm:"not null;index" json:"finalized"`
	CoverImage string            `json:"coverImage,omitempty"`
	Metadata   InterviewMetadata `gorm:"serializer:json" json:"metadata"`
	CreatedAt  time.Time         `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
