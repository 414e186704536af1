package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError wraps payload problems so the HTTP layer can map them
// to 400 instead of 500.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields under their JSON names so error details match the
	// payload the client actually sent.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// docdate: YYYY-MM or YYYY-MM-DD
	_ = v.RegisterValidation("docdate", func(fl validator.FieldLevel) bool {
		return checkDocDate(fl.Field().String())
	})

	// enddate: docdate or the literal "Present"
	_ = v.RegisterValidation("enddate", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return value == "Present" || checkDocDate(value)
	})

	return v
}

// DecodeResumeData unmarshals and validates a resume payload. All
// failures come back as *ValidationError with a client-readable detail.
func DecodeResumeData(raw json.RawMessage) (*ResumeData, error) {
	var data ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, NewValidationError("invalid resume data: %v", err)
	}
	if err := validate.Struct(&data); err != nil {
		return nil, NewValidationError("invalid resume data: %s", explain(err))
	}
	return &data, nil
}

// DecodeCoverLetterData unmarshals and validates a cover letter payload.
func DecodeCoverLetterData(raw json.RawMessage) (*CoverLetterData, error) {
	var data CoverLetterData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, NewValidationError("invalid cover letter data: %v", err)
	}
	if err := validate.Struct(&data); err != nil {
		return nil, NewValidationError("invalid cover letter data: %s", explain(err))
	}
	return &data, nil
}

// explain flattens validator errors into a readable single line, e.g.
// "field 'email' failed on 'email'; field 'startDate' failed on 'docdate'".
func explain(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fmt.Sprintf("field '%s' is required", fe.Field()))
		case "email":
			parts = append(parts, fmt.Sprintf("field '%s' must be a valid email address", fe.Field()))
		case "docdate":
			parts = append(parts, fmt.Sprintf("field '%s' must be a date in YYYY-MM or YYYY-MM-DD format", fe.Field()))
		case "enddate":
			parts = append(parts, fmt.Sprintf("field '%s' must be a date in YYYY-MM or YYYY-MM-DD format, or \"Present\"", fe.Field()))
		default:
			parts = append(parts, fmt.Sprintf("field '%s' failed on '%s'", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}
