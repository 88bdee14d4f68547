package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/service"
)

// respondError converts an operation failure into the uniform
// {success:false, error} envelope with the status matching its error kind.
// Nothing propagates as an uncaught fault past this point.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrAuthRequired):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrGeneration), errors.Is(err, service.ErrPersistence):
		status = http.StatusInternalServerError
	}
	ctx.JSON(status, dto.ErrorResponse{Success: false, Error: errorMessage(err)})
}

// errorMessage strips the error-kind prefix so the client sees only the
// human-readable part.
func errorMessage(err error) string {
	msg := err.Error()
	for _, kind := range []error{service.ErrValidation, service.ErrGeneration, service.ErrPersistence} {
		if prefix := kind.Error() + ": "; strings.HasPrefix(msg, prefix) {
			return strings.TrimPrefix(msg, prefix)
		}
	}
	return msg
}

func respondBindError(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Success: false, Error: bindErrorMessage(err)})
}

// bindErrorMessage maps the common binding failures onto the short messages
// the API documents; anything else falls through verbatim.
func bindErrorMessage(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "'Amount'") {
		return "Amount must be between 5 and 50"
	}
	if strings.Contains(msg, "'required'") {
		return "Missing required fields"
	}
	return msg
}
