package question

import "strings"

const (
	MinOptionSlots     = 2
	DefaultOptionSlots = 4
)

// Form is the transient input state of the question creation form.
// It is rebuilt from the submitted fields on every request.
type Form struct {
	QuestionText  string
	QuestionType  Type
	Options       []string
	CorrectAnswer string
	Error         string
}

func NewForm() *Form {
	f := &Form{}
	f.Reset()
	return f
}

// Reset puts every field back to its initial value.
func (f *Form) Reset() {
	f.QuestionText = ""
	f.QuestionType = TypeText
	f.Options = make([]string, DefaultOptionSlots)
	f.CorrectAnswer = ""
	f.Error = ""
}

// Normalize repairs state that can only come from a hand-crafted request:
// an unknown type or fewer than MinOptionSlots option slots.
func (f *Form) Normalize() {
	if _, err := ParseType(string(f.QuestionType)); err != nil {
		f.QuestionType = TypeText
	}
	for len(f.Options) < MinOptionSlots {
		f.Options = append(f.Options, "")
	}
}

func (f *Form) SetType(t Type) {
	f.QuestionType = t
	if t == TypeMultipleChoice && !f.isSelectable(f.CorrectAnswer) {
		f.CorrectAnswer = ""
	}
}

func (f *Form) AddOption() {
	f.Options = append(f.Options, "")
}

// RemoveOption drops the slot at i. It reports false when i is out of range
// or the form is already at MinOptionSlots.
func (f *Form) RemoveOption(i int) bool {
	if len(f.Options) <= MinOptionSlots || i < 0 || i >= len(f.Options) {
		return false
	}
	f.Options = append(f.Options[:i:i], f.Options[i+1:]...)
	if f.QuestionType == TypeMultipleChoice && !f.isSelectable(f.CorrectAnswer) {
		f.CorrectAnswer = ""
	}
	return true
}

func (f *Form) CanRemoveOption() bool {
	return len(f.Options) > MinOptionSlots
}

// SelectableAnswers lists the values offered as the correct answer of a
// multiple choice question.
func (f *Form) SelectableAnswers() []string {
	return FilterOptions(f.Options)
}

func (f *Form) CanSubmit() bool {
	if strings.TrimSpace(f.QuestionText) == "" || strings.TrimSpace(f.CorrectAnswer) == "" {
		return false
	}
	if f.QuestionType == TypeMultipleChoice {
		return f.isSelectable(f.CorrectAnswer)
	}
	return true
}

// Payload builds the insert payload. New questions are always active.
func (f *Form) Payload() New {
	in := New{
		QuestionText:  f.QuestionText,
		QuestionType:  f.QuestionType,
		CorrectAnswer: f.CorrectAnswer,
		Options:       []string{},
		IsActive:      true,
	}
	if f.QuestionType == TypeMultipleChoice {
		in.Options = FilterOptions(f.Options)
	}
	return in
}

func (f *Form) isSelectable(answer string) bool {
	answer = strings.TrimSpace(answer)
	return answer != "" && contains(f.SelectableAnswers(), answer)
}
