package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type setActiveReq struct {
	IsActive *bool `json:"is_active"`
}

// createReq mirrors question.New; an omitted is_active means active.
type createReq struct {
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	IsActive      *bool    `json:"is_active"`
}

func (c createReq) payload() question.New {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}
	return question.New{
		QuestionText:  c.QuestionText,
		QuestionType:  question.Type(c.QuestionType),
		Options:       c.Options,
		CorrectAnswer: c.CorrectAnswer,
		IsActive:      active,
	}
}

// RegisterAdminHandlers mounts the JSON admin API on r.
func RegisterAdminHandlers(r chi.Router, admin service.AdminService, timeout time.Duration, log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}

	r.Post("/questions", func(w http.ResponseWriter, r *http.Request) {
		var req createReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Warn("admin create question bad json", zap.Error(err))
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		row, err := admin.CreateQuestion(ctx, req.payload())
		if err != nil {
			log.Warn("admin create question failed", zap.Error(err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		log.Info("question created", zap.Stringer("id", row.ID), zap.String("type", string(row.QuestionType)))
		writeJSON(w, http.StatusCreated, row)
	})

	r.Get("/questions", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		rows, err := admin.ListQuestions(ctx)
		if err != nil {
			log.Error("admin list questions failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		log.Info("questions listed", zap.Int("count", len(rows)))
		writeJSON(w, http.StatusOK, rows)
	})

	r.Patch("/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r, log)
		if !ok {
			return
		}

		var req setActiveReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.IsActive == nil {
			log.Warn("admin patch bad json", zap.Stringer("id", id), zap.Error(err))
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		row, err := admin.SetQuestionActive(ctx, id, *req.IsActive)
		if err != nil {
			log.Warn("admin set question active failed", zap.Stringer("id", id), zap.Bool("active", *req.IsActive), zap.Error(err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		log.Info("question active updated", zap.Stringer("id", id), zap.Bool("active", row.IsActive))
		writeJSON(w, http.StatusOK, row)
	})

	r.Delete("/questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r, log)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := admin.DeleteQuestion(ctx, id); err != nil {
			log.Warn("admin delete question failed", zap.Stringer("id", id), zap.Error(err))
			http.Error(w, err.Error(), statusFor(err))
			return
		}

		log.Info("question deleted", zap.Stringer("id", id))
		w.WriteHeader(http.StatusNoContent)
	})
}

func parseID(w http.ResponseWriter, r *http.Request, log *zap.Logger) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		log.Warn("bad question id", zap.String("id", raw))
		http.Error(w, "bad id", http.StatusBadRequest)
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
