package service

import (
	"context"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/storage"
	"github.com/google/uuid"
)

type AdminService interface {
	CreateQuestion(ctx context.Context, in question.New) (question.Question, error)
	ListQuestions(ctx context.Context) ([]question.Question, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (question.Question, error)
	SetQuestionActive(ctx context.Context, id uuid.UUID, active bool) (question.Question, error)
	DeleteQuestion(ctx context.Context, id uuid.UUID) error
}

// Notifier is told about every successful change to the questions table.
type Notifier interface {
	Notify(reason string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}

type adminService struct {
	qs       storage.QuestionStore
	notifier Notifier
}

func NewAdminService(qs storage.QuestionStore, n Notifier) AdminService {
	if n == nil {
		n = nopNotifier{}
	}
	return &adminService{qs: qs, notifier: n}
}

func (a *adminService) CreateQuestion(ctx context.Context, in question.New) (question.Question, error) {
	in, err := question.Normalize(in)
	if err != nil {
		return question.Question{}, err
	}

	q, err := a.qs.Insert(ctx, in)
	if err != nil {
		return question.Question{}, err
	}
	a.notifier.Notify("created")
	return q, nil
}

func (a *adminService) ListQuestions(ctx context.Context) ([]question.Question, error) {
	return a.qs.ListAll(ctx)
}

func (a *adminService) GetQuestion(ctx context.Context, id uuid.UUID) (question.Question, error) {
	if id == uuid.Nil {
		return question.Question{}, &question.ValidationError{Field: "id", Reason: "is required"}
	}
	return a.qs.Get(ctx, id)
}

func (a *adminService) SetQuestionActive(ctx context.Context, id uuid.UUID, active bool) (question.Question, error) {
	if id == uuid.Nil {
		return question.Question{}, &question.ValidationError{Field: "id", Reason: "is required"}
	}

	q, err := a.qs.SetActive(ctx, id, active)
	if err != nil {
		return question.Question{}, err
	}
	a.notifier.Notify("updated")
	return q, nil
}

func (a *adminService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return &question.ValidationError{Field: "id", Reason: "is required"}
	}

	if err := a.qs.Delete(ctx, id); err != nil {
		return err
	}
	a.notifier.Notify("deleted")
	return nil
}
