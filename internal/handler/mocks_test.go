package handler

import (
	"context"
	"net/http"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type mockAdminService struct {
	mock.Mock
}

func (m *mockAdminService) CreateQuestion(ctx context.Context, in question.New) (question.Question, error) {
	args := m.Called(ctx, in)
	q, _ := args.Get(0).(question.Question)
	return q, args.Error(1)
}

func (m *mockAdminService) ListQuestions(ctx context.Context) ([]question.Question, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]question.Question)
	return rows, args.Error(1)
}

func (m *mockAdminService) GetQuestion(ctx context.Context, id uuid.UUID) (question.Question, error) {
	args := m.Called(ctx, id)
	q, _ := args.Get(0).(question.Question)
	return q, args.Error(1)
}

func (m *mockAdminService) SetQuestionActive(ctx context.Context, id uuid.UUID, active bool) (question.Question, error) {
	args := m.Called(ctx, id, active)
	q, _ := args.Get(0).(question.Question)
	return q, args.Error(1)
}

func (m *mockAdminService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type staticRefresh struct {
	version int64
}

func (s staticRefresh) Version() int64 { return s.version }

func (s staticRefresh) ServeWS(w http.ResponseWriter, r *http.Request) {
	http.Error(w, "not in tests", http.StatusNotImplemented)
}

const testToken = "token123"

func newTestRouter(admin *mockAdminService) http.Handler {
	return NewRouter(RouterConfig{
		Admin:      admin,
		Refresh:    staticRefresh{version: 7},
		AdminUser:  "admin",
		AdminToken: testToken,
		Log:        zap.NewNop(),
	})
}
