package service

import (
	"errors"
	"fmt"

	"github.com/alexivanou/geofare/internal/model"
	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrCityNotFound   = errors.New("city not found")
	ErrUnknownCabType = errors.New("unknown cab type")
)

// FieldError attaches per-field details to one of the sentinel errors
type FieldError struct {
	Err     error
	Details []model.ErrorDetail
}

func (e *FieldError) Error() string {
	if len(e.Details) == 0 {
		return e.Err.Error()
	}
	d := e.Details[0]
	return fmt.Sprintf("%s: %s %s", e.Err, d.Field, d.Message)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func fieldError(err error, field, message string) *FieldError {
	return &FieldError{
		Err:     err,
		Details: []model.ErrorDetail{{Field: field, Message: message}},
	}
}

// validationError converts validator output into an ErrInvalidInput
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	details := make([]model.ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, model.ErrorDetail{
			Field:   fe.Field(),
			Message: describe(fe),
		})
	}
	return &FieldError{Err: ErrInvalidInput, Details: details}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
