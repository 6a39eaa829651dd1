// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pollmaps/mysite/logging"
	"github.com/pollmaps/mysite/middleware"
	"github.com/pollmaps/mysite/models"
	"github.com/pollmaps/mysite/store"
	"github.com/pollmaps/mysite/templates"
)

// QuestionLister is the read the polls index needs from storage
type QuestionLister interface {
	Latest(ctx context.Context, limit int) ([]models.Question, error)
}

// Renderer renders a named page template
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

type PollHandler struct {
	questions QuestionLister
	pages     Renderer
}

func NewPollHandler(questions QuestionLister, pages Renderer) *PollHandler {
	return &PollHandler{questions: questions, pages: pages}
}

// Index handles GET /polls/
// Lists the five most recently published questions
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	latest, err := h.questions.Latest(r.Context(), store.LatestLimit)
	if err != nil {
		logger.Error("failed to query latest questions", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	renderPage(w, r, h.pages, templates.PollsIndex, models.PollIndexContext{
		LatestQuestionList: latest,
	})
}

// Detail handles GET /polls/{question_id}/
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	middleware.TextResponse(w, http.StatusOK,
		fmt.Sprintf("Your are looking at question %s", r.PathValue("question_id")))
}

// Results handles GET /polls/{question_id}/results/
func (h *PollHandler) Results(w http.ResponseWriter, r *http.Request) {
	middleware.TextResponse(w, http.StatusOK,
		fmt.Sprintf("Your are looking at results of %s", r.PathValue("question_id")))
}

// Vote handles /polls/{question_id}/vote/
// Placeholder: no ballot is recorded
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	middleware.TextResponse(w, http.StatusOK,
		fmt.Sprintf("Your are voting question %s", r.PathValue("question_id")))
}

func renderPage(w http.ResponseWriter, r *http.Request, pages Renderer, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Render(w, name, data); err != nil {
		logging.FromContext(r.Context()).Error("failed to render page", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
