package question

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeText           Type = "text"
	TypeMultipleChoice Type = "multiple_choice"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeText, TypeMultipleChoice:
		return Type(s), nil
	}
	return "", &ValidationError{Field: "question_type", Reason: "must be text or multiple_choice"}
}

// Question is one row of the questions table.
type Question struct {
	ID            uuid.UUID `json:"id"`
	QuestionText  string    `json:"question_text"`
	QuestionType  Type      `json:"question_type"`
	Options       []string  `json:"options"`
	CorrectAnswer string    `json:"correct_answer"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsCorrect reports whether option is the row's correct answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.CorrectAnswer
}

// New is the insert payload: everything except the store-assigned id and timestamps.
type New struct {
	QuestionText  string   `json:"question_text" yaml:"question_text" validate:"required"`
	QuestionType  Type     `json:"question_type" yaml:"question_type" validate:"required,oneof=text multiple_choice"`
	Options       []string `json:"options" yaml:"options"`
	CorrectAnswer string   `json:"correct_answer" yaml:"correct_answer" validate:"required"`
	IsActive      bool     `json:"is_active" yaml:"is_active"`
}
