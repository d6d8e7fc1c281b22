package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/google/uuid"
)

type memoryRow struct {
	q   question.Question
	seq int64
}

// MemoryQuestionStore keeps questions in process memory. It is used by the
// memory store driver and by tests.
type MemoryQuestionStore struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*memoryRow
	seq  int64
	now  func() time.Time
}

func NewMemoryQuestionStore() *MemoryQuestionStore {
	return &MemoryQuestionStore{
		rows: make(map[uuid.UUID]*memoryRow),
		now:  time.Now,
	}
}

// WithClock replaces the timestamp source.
func (s *MemoryQuestionStore) WithClock(now func() time.Time) *MemoryQuestionStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	return s
}

func (s *MemoryQuestionStore) Insert(ctx context.Context, in question.New) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, storeErr("insert", err)
	}
	if in.QuestionText == "" || in.CorrectAnswer == "" || in.QuestionType == "" {
		return question.Question{}, storeErr("insert", ErrRejected)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	opts := make([]string, len(in.Options))
	copy(opts, in.Options)

	s.seq++
	row := &memoryRow{
		seq: s.seq,
		q: question.Question{
			ID:            uuid.New(),
			QuestionText:  in.QuestionText,
			QuestionType:  in.QuestionType,
			Options:       opts,
			CorrectAnswer: in.CorrectAnswer,
			IsActive:      in.IsActive,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
	s.rows[row.q.ID] = row
	return cloneQuestion(row.q), nil
}

func (s *MemoryQuestionStore) ListAll(ctx context.Context) ([]question.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, storeErr("list", err)
	}

	s.mu.Lock()
	rows := make([]*memoryRow, 0, len(s.rows))
	for _, r := range s.rows {
		rows = append(rows, r)
	}
	s.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].q.CreatedAt.Equal(rows[j].q.CreatedAt) {
			return rows[i].q.CreatedAt.After(rows[j].q.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})

	out := make([]question.Question, 0, len(rows))
	for _, r := range rows {
		out = append(out, cloneQuestion(r.q))
	}
	return out, nil
}

func (s *MemoryQuestionStore) Get(ctx context.Context, id uuid.UUID) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, storeErr("get", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[id]
	if !ok {
		return question.Question{}, storeErr("get", ErrNotFound)
	}
	return cloneQuestion(r.q), nil
}

func (s *MemoryQuestionStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (question.Question, error) {
	if err := ctx.Err(); err != nil {
		return question.Question{}, storeErr("update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.rows[id]
	if !ok {
		return question.Question{}, storeErr("update", ErrNotFound)
	}
	r.q.IsActive = active
	r.q.UpdatedAt = s.now().UTC()
	return cloneQuestion(r.q), nil
}

func (s *MemoryQuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return storeErr("delete", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return storeErr("delete", ErrNotFound)
	}
	delete(s.rows, id)
	return nil
}

func cloneQuestion(q question.Question) question.Question {
	opts := make([]string, len(q.Options))
	copy(opts, q.Options)
	q.Options = opts
	return q
}
