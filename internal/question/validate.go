package question

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FilterOptions trims every option and drops the blank ones, keeping order.
func FilterOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Normalize trims the payload, applies the type-dependent options rule and
// validates the result.
func Normalize(in New) (New, error) {
	in.QuestionText = strings.TrimSpace(in.QuestionText)
	in.CorrectAnswer = strings.TrimSpace(in.CorrectAnswer)

	if in.QuestionType == TypeMultipleChoice {
		in.Options = FilterOptions(in.Options)
	} else {
		in.Options = []string{}
	}

	if err := validate.Struct(in); err != nil {
		return New{}, toValidationError(err)
	}

	if in.QuestionType != TypeMultipleChoice {
		return in, nil
	}
	if len(in.Options) == 0 {
		return New{}, &ValidationError{Field: "options", Reason: "at least one option is required"}
	}
	if !contains(in.Options, in.CorrectAnswer) {
		return New{}, &ValidationError{Field: "correct_answer", Reason: "must be one of the options"}
	}
	return in, nil
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &ValidationError{Field: "question", Reason: err.Error()}
	}

	fe := verrs[0]
	field := fieldName(fe.StructField())
	switch fe.Tag() {
	case "required":
		return &ValidationError{Field: field, Reason: "is required"}
	case "oneof":
		return &ValidationError{Field: field, Reason: "must be text or multiple_choice"}
	}
	return &ValidationError{Field: field, Reason: "failed " + fe.Tag() + " check"}
}

func fieldName(structField string) string {
	switch structField {
	case "QuestionText":
		return "question_text"
	case "QuestionType":
		return "question_type"
	case "Options":
		return "options"
	case "CorrectAnswer":
		return "correct_answer"
	}
	return strings.ToLower(structField)
}

func contains(items []string, v string) bool {
	for _, it := range items {
		if it == v {
			return true
		}
	}
	return false
}
