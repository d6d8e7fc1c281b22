// Package seed imports an initial question set from a YAML file.
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/service"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type File struct {
	Questions []Entry `yaml:"questions"`
}

// Entry is one seeded question. Active defaults to true when omitted.
type Entry struct {
	Text          string   `yaml:"text"`
	Type          string   `yaml:"type"`
	Options       []string `yaml:"options"`
	CorrectAnswer string   `yaml:"correct_answer"`
	Active        *bool    `yaml:"active"`
}

func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("parse seed: %w", err)
	}
	return f, nil
}

func (e Entry) payload() question.New {
	t := question.Type(e.Type)
	if t == "" {
		t = question.TypeText
	}
	active := true
	if e.Active != nil {
		active = *e.Active
	}
	return question.New{
		QuestionText:  e.Text,
		QuestionType:  t,
		Options:       e.Options,
		CorrectAnswer: e.CorrectAnswer,
		IsActive:      active,
	}
}

// Apply inserts every entry when the store holds no questions yet. It returns
// the number of inserted questions.
func Apply(ctx context.Context, admin service.AdminService, f File, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}

	existing, err := admin.ListQuestions(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		log.Info("seed skipped, store not empty", zap.Int("count", len(existing)))
		return 0, nil
	}

	for i, e := range f.Questions {
		if _, err := admin.CreateQuestion(ctx, e.payload()); err != nil {
			return i, fmt.Errorf("seed question %d: %w", i+1, err)
		}
	}
	log.Info("seed applied", zap.Int("count", len(f.Questions)))
	return len(f.Questions), nil
}

func ApplyFile(ctx context.Context, admin service.AdminService, path string, log *zap.Logger) (int, error) {
	fh, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer fh.Close()

	f, err := Parse(fh)
	if err != nil {
		return 0, err
	}
	return Apply(ctx, admin, f, log)
}
