package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fixedClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func textQuestion(text string) question.New {
	return question.New{
		QuestionText:  text,
		QuestionType:  question.TypeText,
		Options:       []string{},
		CorrectAnswer: "answer",
		IsActive:      true,
	}
}

func TestMemoryStore_InsertAssignsIDAndTimestamps(t *testing.T) {
	s := NewMemoryQuestionStore().WithClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	q, err := s.Insert(context.Background(), textQuestion("Q1"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, q.ID)
	require.Equal(t, "Q1", q.QuestionText)
	require.True(t, q.IsActive)
	require.False(t, q.CreatedAt.IsZero())
	require.Equal(t, q.CreatedAt, q.UpdatedAt)
	require.Empty(t, q.Options)
}

func TestMemoryStore_InsertRejectsMissingFields(t *testing.T) {
	s := NewMemoryQuestionStore()

	_, err := s.Insert(context.Background(), question.New{QuestionType: question.TypeText, CorrectAnswer: "a"})
	require.ErrorIs(t, err, ErrRejected)

	var serr *StoreError
	require.True(t, errors.As(err, &serr))
	require.Equal(t, "insert", serr.Op)

	rows, err := s.ListAll(context.Background())
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestMemoryStore_ListAllNewestFirst(t *testing.T) {
	s := NewMemoryQuestionStore().WithClock(fixedClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
	ctx := context.Background()

	a, err := s.Insert(ctx, textQuestion("A"))
	require.NoError(t, err)
	b, err := s.Insert(ctx, textQuestion("B"))
	require.NoError(t, err)

	rows, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, b.ID, rows[0].ID)
	require.Equal(t, a.ID, rows[1].ID)
}

func TestMemoryStore_ListAllSameTimestampUsesInsertionOrder(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewMemoryQuestionStore().WithClock(func() time.Time { return at })
	ctx := context.Background()

	a, _ := s.Insert(ctx, textQuestion("A"))
	b, _ := s.Insert(ctx, textQuestion("B"))
	c, _ := s.Insert(ctx, textQuestion("C"))

	rows, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{c.ID, b.ID, a.ID}, []uuid.UUID{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestMemoryStore_SetActiveTwiceRestoresValue(t *testing.T) {
	s := NewMemoryQuestionStore()
	ctx := context.Background()

	q, err := s.Insert(ctx, textQuestion("Q"))
	require.NoError(t, err)

	q1, err := s.SetActive(ctx, q.ID, !q.IsActive)
	require.NoError(t, err)
	require.False(t, q1.IsActive)

	q2, err := s.SetActive(ctx, q.ID, !q1.IsActive)
	require.NoError(t, err)
	require.Equal(t, q.IsActive, q2.IsActive)
}

func TestMemoryStore_SetActiveUnknownID(t *testing.T) {
	s := NewMemoryQuestionStore()

	_, err := s.SetActive(context.Background(), uuid.New(), false)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Get(t *testing.T) {
	s := NewMemoryQuestionStore()
	ctx := context.Background()

	q, err := s.Insert(ctx, textQuestion("find me"))
	require.NoError(t, err)

	got, err := s.Get(ctx, q.ID)
	require.NoError(t, err)
	require.Equal(t, q, got)

	_, err = s.Get(ctx, uuid.New())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_DeleteRemovesRow(t *testing.T) {
	s := NewMemoryQuestionStore()
	ctx := context.Background()

	keep, _ := s.Insert(ctx, textQuestion("keep"))
	drop, _ := s.Insert(ctx, textQuestion("drop"))

	require.NoError(t, s.Delete(ctx, drop.ID))

	rows, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, keep.ID, rows[0].ID)

	require.ErrorIs(t, s.Delete(ctx, drop.ID), ErrNotFound)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryQuestionStore()
	ctx := context.Background()

	in := question.New{
		QuestionText:  "Pick",
		QuestionType:  question.TypeMultipleChoice,
		Options:       []string{"a", "b"},
		CorrectAnswer: "a",
		IsActive:      true,
	}
	q, err := s.Insert(ctx, in)
	require.NoError(t, err)

	in.Options[0] = "mutated"
	q.Options[1] = "mutated"

	rows, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, rows[0].Options)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryQuestionStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.ListAll(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
