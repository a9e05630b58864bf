package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
)

var validate = validator.New()

// Validate checks a create payload. All problems are collected so the
// admin sees them in one round trip.
func (p QuestionPayload) Validate() error {
	var errs *multierror.Error

	if err := validate.Struct(p); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = multierror.Append(errs, fieldError(fe))
		}
	}

	if p.QuestionType == TypeVariant {
		if len(p.Variants) == 0 {
			errs = multierror.Append(errs, fmt.Errorf("variant questions need at least one variant"))
		}
		for i, v := range p.Variants {
			if strings.TrimSpace(v.Text) == "" {
				errs = multierror.Append(errs, fmt.Errorf("variant %d has no text", i+1))
			}
		}
		if p.MaxSelections > len(p.Variants) && len(p.Variants) > 0 {
			errs = multierror.Append(errs, fmt.Errorf("maxSelections (%d) exceeds variant count (%d)", p.MaxSelections, len(p.Variants)))
		}
	} else if p.MaxSelections > 1 {
		errs = multierror.Append(errs, fmt.Errorf("maxSelections only applies to variant questions"))
	}

	return errs.ErrorOrNil()
}

func (p QuestionPatch) Validate() error {
	var errs *multierror.Error

	if err := validate.Struct(p); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			errs = multierror.Append(errs, fieldError(fe))
		}
	}

	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		errs = multierror.Append(errs, fmt.Errorf("title cannot be blank"))
	}
	if p.Variants != nil {
		for i, v := range *p.Variants {
			if strings.TrimSpace(v.Text) == "" {
				errs = multierror.Append(errs, fmt.Errorf("variant %d has no text", i+1))
			}
		}
	}

	return errs.ErrorOrNil()
}

func fieldError(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s is required", strings.ToLower(fe.Field()))
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", strings.ToLower(fe.Field()), fe.Param())
	case "min":
		return fmt.Errorf("%s must be at least %s", strings.ToLower(fe.Field()), fe.Param())
	default:
		return fmt.Errorf("%s is invalid", strings.ToLower(fe.Field()))
	}
}
