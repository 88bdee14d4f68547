package service

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/prepwise/prepwise/internal/dto"
)

// FeedbackValidator accepts a generated feedback object only if every
// required field is present and every constrained field is within domain.
// Violations reject the object outright; nothing is clamped or repaired.
type FeedbackValidator interface {
	Validate(feedback *dto.GeneratedFeedback) error
}

type feedbackValidator struct {
	validate *validator.Validate
}

func NewFeedbackValidator() FeedbackValidator {
	return &feedbackValidator{validate: validator.New()}
}

func (v *feedbackValidator) Validate(feedback *dto.GeneratedFeedback) error {
	if feedback == nil {
		return fmt.Errorf("%w: feedback object is missing", ErrValidation)
	}
	if err := v.validate.Struct(feedback); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}
	return nil
}
