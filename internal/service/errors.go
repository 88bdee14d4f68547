package service

import "errors"

// Error kinds recognized at the controller boundary. Services wrap these with
// fmt.Errorf("%w: ...") so callers can classify with errors.Is and convert to
// the uniform {success:false, error} envelope.
var (
	ErrValidation   = errors.New("validation error")
	ErrGeneration   = errors.New("generation error")
	ErrPersistence  = errors.New("persistence error")
	ErrAuthRequired = errors.New("authentication required")
)
