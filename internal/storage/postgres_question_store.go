package storage

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

const questionColumns = `id, question_text, question_type, options, correct_answer, is_active, created_at, updated_at`

// seq breaks created_at ties so rows inserted in one instant stay newest first.
const listQuery = `SELECT ` + questionColumns + ` FROM questions ORDER BY created_at DESC, seq DESC`

type PostgresQuestionStore struct {
	db *pgxpool.Pool
}

func NewPostgresQuestionStore(db *pgxpool.Pool) *PostgresQuestionStore {
	return &PostgresQuestionStore{db: db}
}

// EnsureSchema creates the questions table when it does not exist yet.
func (s *PostgresQuestionStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, schemaSQL)
	return storeErr("migrate", classify(err))
}

func (s *PostgresQuestionStore) Insert(ctx context.Context, in question.New) (question.Question, error) {
	opts := in.Options
	if opts == nil {
		opts = []string{}
	}
	optsJSON, err := json.Marshal(opts)
	if err != nil {
		return question.Question{}, storeErr("insert", err)
	}

	row := s.db.QueryRow(ctx, `
		INSERT INTO questions (question_text, question_type, options, correct_answer, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+questionColumns,
		in.QuestionText, string(in.QuestionType), optsJSON, in.CorrectAnswer, in.IsActive,
	)

	q, err := scanQuestion(row)
	if err != nil {
		return question.Question{}, storeErr("insert", classify(err))
	}
	return q, nil
}

func (s *PostgresQuestionStore) ListAll(ctx context.Context) ([]question.Question, error) {
	rows, err := s.db.Query(ctx, listQuery)
	if err != nil {
		return nil, storeErr("list", classify(err))
	}
	defer rows.Close()

	out := make([]question.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, storeErr("list", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list", classify(err))
	}
	return out, nil
}

func (s *PostgresQuestionStore) Get(ctx context.Context, id uuid.UUID) (question.Question, error) {
	row := s.db.QueryRow(ctx, `SELECT `+questionColumns+` FROM questions WHERE id = $1`, id)

	q, err := scanQuestion(row)
	if err != nil {
		return question.Question{}, storeErr("get", classify(err))
	}
	return q, nil
}

func (s *PostgresQuestionStore) SetActive(ctx context.Context, id uuid.UUID, active bool) (question.Question, error) {
	row := s.db.QueryRow(ctx, `
		UPDATE questions
		SET is_active = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+questionColumns,
		id, active,
	)

	q, err := scanQuestion(row)
	if err != nil {
		return question.Question{}, storeErr("update", classify(err))
	}
	return q, nil
}

func (s *PostgresQuestionStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete", classify(err))
	}
	if tag.RowsAffected() == 0 {
		return storeErr("delete", ErrNotFound)
	}
	return nil
}

func scanQuestion(row pgx.Row) (question.Question, error) {
	var q question.Question
	var qType string
	var optsJSON []byte

	if err := row.Scan(&q.ID, &q.QuestionText, &qType, &optsJSON, &q.CorrectAnswer, &q.IsActive, &q.CreatedAt, &q.UpdatedAt); err != nil {
		return question.Question{}, err
	}

	q.QuestionType = question.Type(qType)
	q.Options = []string{}
	if len(optsJSON) > 0 {
		if err := json.Unmarshal(optsJSON, &q.Options); err != nil {
			return question.Question{}, err
		}
	}
	return q, nil
}

// classify maps driver errors onto the package sentinels, keeping the cause.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502", "23514", "22P02":
			return &rejectedError{cause: pgErr}
		}
	}
	return err
}

type rejectedError struct {
	cause *pgconn.PgError
}

func (e *rejectedError) Error() string {
	return ErrRejected.Error() + ": " + e.cause.Message
}

func (e *rejectedError) Is(target error) bool {
	return target == ErrRejected
}

func (e *rejectedError) Unwrap() error {
	return e.cause
}
