package handler

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ArtemMoroz51/VerifyAdmin/internal/question"
	"github.com/ArtemMoroz51/VerifyAdmin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	actionSetType      = "set_type"
	actionAddOption    = "add_option"
	actionRemoveOption = "remove_option:"
)

const (
	msgCreateFailed = "Ошибка при создании вопроса"
	msgToggleFailed = "Не удалось изменить статус вопроса"
	msgDeleteFailed = "Не удалось удалить вопрос"
	msgLoadFailed   = "Не удалось загрузить вопросы"
	msgFillRequired = "Заполните текст вопроса и правильный ответ"
)

type Dashboard struct {
	admin   service.AdminService
	refresh RefreshSource
	timeout time.Duration
	log     *zap.Logger
}

type pageData struct {
	Form    *question.Form
	List    listData
	Version int64
}

type listData struct {
	Questions []question.Question
	Error     string
	Notice    string
}

type confirmData struct {
	Question question.Question
}

func NewDashboard(admin service.AdminService, refresh RefreshSource, timeout time.Duration, log *zap.Logger) *Dashboard {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dashboard{admin: admin, refresh: refresh, timeout: timeout, log: log}
}

func RegisterDashboard(r chi.Router, d *Dashboard) {
	r.Get("/", d.index)
	r.Post("/questions", d.submitForm)
	r.Get("/questions/list", d.listFragment)
	r.Post("/questions/{id}/toggle", d.toggle)
	r.Get("/questions/{id}/delete", d.confirmDelete)
	r.Post("/questions/{id}/delete", d.delete)
}

func (d *Dashboard) index(w http.ResponseWriter, r *http.Request) {
	d.renderPage(w, r, http.StatusOK, question.NewForm(), "")
}

func (d *Dashboard) listFragment(w http.ResponseWriter, r *http.Request) {
	d.render(w, http.StatusOK, "list", d.loadList(r.Context(), ""))
}

func (d *Dashboard) submitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		d.log.Warn("dashboard bad form", zap.Error(err))
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	f := formFromRequest(r)
	action := r.PostForm.Get("action")

	switch {
	case action == actionSetType:
		t, err := question.ParseType(r.PostForm.Get("question_type"))
		if err == nil {
			f.SetType(t)
		}
		d.renderPage(w, r, http.StatusOK, f, "")
		return

	case action == actionAddOption:
		f.AddOption()
		d.renderPage(w, r, http.StatusOK, f, "")
		return

	case strings.HasPrefix(action, actionRemoveOption):
		i, err := strconv.Atoi(strings.TrimPrefix(action, actionRemoveOption))
		if err != nil || !f.RemoveOption(i) {
			d.log.Warn("dashboard remove option refused", zap.String("action", action), zap.Int("slots", len(f.Options)))
		}
		d.renderPage(w, r, http.StatusOK, f, "")
		return
	}

	if !f.CanSubmit() {
		f.Error = msgFillRequired
		d.renderPage(w, r, http.StatusUnprocessableEntity, f, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout)
	defer cancel()

	row, err := d.admin.CreateQuestion(ctx, f.Payload())
	if err != nil {
		d.log.Warn("dashboard create question failed", zap.Error(err))
		f.Error = formError(err)
		d.renderPage(w, r, statusFor(err), f, "")
		return
	}

	d.log.Info("question created", zap.Stringer("id", row.ID), zap.String("type", string(row.QuestionType)))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (d *Dashboard) toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := d.parseID(w, r)
	if !ok {
		return
	}

	current, err := strconv.ParseBool(r.FormValue("is_active"))
	if err != nil {
		d.log.Warn("dashboard toggle bad state", zap.Stringer("id", id), zap.String("is_active", r.FormValue("is_active")))
		http.Error(w, "bad is_active", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout)
	defer cancel()

	row, err := d.admin.SetQuestionActive(ctx, id, !current)
	if err != nil {
		d.log.Error("dashboard toggle question failed", zap.Stringer("id", id), zap.Bool("active", !current), zap.Error(err))
		d.renderPage(w, r, statusFor(err), question.NewForm(), msgToggleFailed)
		return
	}

	d.log.Info("question active updated", zap.Stringer("id", id), zap.Bool("active", row.IsActive))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (d *Dashboard) confirmDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := d.parseID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout)
	defer cancel()

	q, err := d.admin.GetQuestion(ctx, id)
	if err != nil {
		d.log.Warn("dashboard load question for delete failed", zap.Stringer("id", id), zap.Error(err))
		d.renderPage(w, r, statusFor(err), question.NewForm(), msgDeleteFailed)
		return
	}

	d.render(w, http.StatusOK, "confirm", confirmData{Question: q})
}

func (d *Dashboard) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := d.parseID(w, r)
	if !ok {
		return
	}

	if r.FormValue("confirm") != "yes" {
		http.Redirect(w, r, "/questions/"+id.String()+"/delete", http.StatusSeeOther)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), d.timeout)
	defer cancel()

	if err := d.admin.DeleteQuestion(ctx, id); err != nil {
		d.log.Error("dashboard delete question failed", zap.Stringer("id", id), zap.Error(err))
		d.renderPage(w, r, statusFor(err), question.NewForm(), msgDeleteFailed)
		return
	}

	d.log.Info("question deleted", zap.Stringer("id", id))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (d *Dashboard) renderPage(w http.ResponseWriter, r *http.Request, status int, f *question.Form, notice string) {
	data := pageData{Form: f, Version: d.version()}
	data.List = d.loadList(r.Context(), notice)
	d.render(w, status, "page", data)
}

func (d *Dashboard) loadList(ctx context.Context, notice string) listData {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	rows, err := d.admin.ListQuestions(ctx)
	if err != nil {
		d.log.Error("dashboard list questions failed", zap.Error(err))
		return listData{Error: msgLoadFailed, Notice: notice}
	}
	return listData{Questions: rows, Notice: notice}
}

func (d *Dashboard) render(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		d.log.Error("template render failed", zap.String("template", name), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (d *Dashboard) version() int64 {
	if d.refresh == nil {
		return 0
	}
	return d.refresh.Version()
}

func (d *Dashboard) parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	return parseID(w, r, d.log)
}

func formFromRequest(r *http.Request) *question.Form {
	f := &question.Form{
		QuestionText:  r.PostForm.Get("question_text"),
		QuestionType:  question.Type(r.PostForm.Get("question_type")),
		Options:       append([]string(nil), r.PostForm["option"]...),
		CorrectAnswer: r.PostForm.Get("correct_answer"),
	}
	f.Normalize()
	return f
}

func formError(err error) string {
	var verr *question.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgCreateFailed
}
