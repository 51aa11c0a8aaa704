package generator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"prompt_generator/apperr"
)

// MinimumFieldsMessage is returned when none of the minimum fields is set.
const MinimumFieldsMessage = "at least one of these fields is required: role, objective, format, language"

// minimumFields carries the "one of four" rule as validator tags, checked
// after normalization so whitespace-only input counts as empty.
type minimumFields struct {
	Role         string `json:"role" validate:"required_without_all=Objective FormatOutput Language"`
	Objective    string `json:"objective" validate:"required_without_all=Role FormatOutput Language"`
	FormatOutput string `json:"format_output" validate:"required_without_all=Role Objective Language"`
	Language     string `json:"language" validate:"required_without_all=Role Objective FormatOutput"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

func validateSpec(s PromptSpec) error {
	err := validate.Struct(minimumFields{
		Role:         s.Role,
		Objective:    s.Objective,
		FormatOutput: s.FormatOutput,
		Language:     s.Language,
	})
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(err.Error())
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return apperr.Validation(MinimumFieldsMessage, fields...)
}
