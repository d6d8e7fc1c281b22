package handler

import (
	"embed"
	"html/template"
	"strings"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.New("dashboard").Funcs(template.FuncMap{
	"typeLabel": typeLabel,
	"isChoice":  func(t question.Type) bool { return t == question.TypeMultipleChoice },
	"inc":       func(i int) int { return i + 1 },
	"trim":      strings.TrimSpace,
}).ParseFS(templateFS, "templates/*.html"))

func typeLabel(t question.Type) string {
	if t == question.TypeMultipleChoice {
		return "Выбор"
	}
	return "Текст"
}
