package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("question not found")
	ErrRejected = errors.New("question rejected by store")
)

// StoreError wraps every failure returned by a QuestionStore.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s questions: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

type QuestionStore interface {
	Insert(ctx context.Context, in question.New) (question.Question, error)
	ListAll(ctx context.Context) ([]question.Question, error)
	Get(ctx context.Context, id uuid.UUID) (question.Question, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (question.Question, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
