// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pollmaps/mysite/models"
	"github.com/pollmaps/mysite/store"
	"github.com/pollmaps/mysite/templates"
	"github.com/pollmaps/mysite/testutil"
)

// fakeQuestions records the limit it was asked for
type fakeQuestions struct {
	questions []models.Question
	err       error
	limit     int
}

func (f *fakeQuestions) Latest(ctx context.Context, limit int) ([]models.Question, error) {
	f.limit = limit
	if f.err != nil {
		return nil, f.err
	}
	if len(f.questions) > limit {
		return f.questions[:limit], nil
	}
	return f.questions, nil
}

// captureRenderer keeps the context passed to Render
type captureRenderer struct {
	name string
	data any
	err  error
}

func (c *captureRenderer) Render(w io.Writer, name string, data any) error {
	c.name, c.data = name, data
	if c.err != nil {
		return c.err
	}
	_, err := io.WriteString(w, "rendered "+name)
	return err
}

func TestPollIndex_PassesLatestQuestions(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	questions := &fakeQuestions{questions: []models.Question{
		{ID: 2, QuestionText: "Second", PubDate: now},
		{ID: 1, QuestionText: "First", PubDate: now.Add(-time.Hour)},
	}}
	pages := &captureRenderer{}
	handler := NewPollHandler(questions, pages)

	w := httptest.NewRecorder()
	handler.Index(w, httptest.NewRequest("GET", "/polls/", nil))

	testutil.AssertStatus(t, w, http.StatusOK)
	assert.Equal(t, store.LatestLimit, questions.limit)
	assert.Equal(t, templates.PollsIndex, pages.name)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

	ctx, ok := pages.data.(models.PollIndexContext)
	require.True(t, ok, "expected PollIndexContext, got %T", pages.data)
	assert.Equal(t, questions.questions, ctx.LatestQuestionList)
}

func TestPollIndex_StorageError(t *testing.T) {
	pages := &captureRenderer{}
	handler := NewPollHandler(&fakeQuestions{err: errors.New("db down")}, pages)

	w := httptest.NewRecorder()
	handler.Index(w, httptest.NewRequest("GET", "/polls/", nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
	assert.Empty(t, pages.name, "nothing should be rendered")
}

func TestPollIndex_RenderError(t *testing.T) {
	handler := NewPollHandler(&fakeQuestions{}, &captureRenderer{err: errors.New("bad template")})

	w := httptest.NewRecorder()
	handler.Index(w, httptest.NewRequest("GET", "/polls/", nil))

	testutil.AssertStatus(t, w, http.StatusInternalServerError)
}

func TestPollIndex_WithDatabase(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		count         int
		expectedItems int
	}{
		{"no questions", 0, 0},
		{"three questions", 3, 3},
		{"seven questions", 7, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			for i := 0; i < tt.count; i++ {
				testutil.CreateTestQuestion(t, db, fmt.Sprintf("Question %d", i), base.Add(time.Duration(i)*time.Hour))
			}
			handler := NewPollHandler(store.NewQuestionRepo(db), templates.Must())

			w := httptest.NewRecorder()
			handler.Index(w, httptest.NewRequest("GET", "/polls/", nil))

			testutil.AssertStatus(t, w, http.StatusOK)
			body := w.Body.String()
			assert.Equal(t, tt.expectedItems, strings.Count(body, "<li>"))

			if tt.count == 0 {
				assert.Contains(t, body, "No polls are available.")
				return
			}

			// Newest first, one position per question
			last := -1
			for i := tt.count - 1; i >= tt.count-tt.expectedItems; i-- {
				pos := strings.Index(body, fmt.Sprintf(">Question %d<", i))
				require.NotEqual(t, -1, pos, "question %d missing", i)
				assert.Greater(t, pos, last, "question %d out of order", i)
				last = pos
			}
		})
	}
}

func TestPollIndex_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.CreateTestQuestion(t, db, "Stable?", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	handler := NewPollHandler(store.NewQuestionRepo(db), templates.Must())

	first := httptest.NewRecorder()
	handler.Index(first, httptest.NewRequest("GET", "/polls/", nil))
	second := httptest.NewRecorder()
	handler.Index(second, httptest.NewRequest("GET", "/polls/", nil))

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestPollStubs(t *testing.T) {
	handler := NewPollHandler(&fakeQuestions{err: errors.New("must not be called")}, &captureRenderer{})

	stubs := []struct {
		name    string
		handler http.HandlerFunc
		format  string
	}{
		{"detail", handler.Detail, "Your are looking at question %s"},
		{"results", handler.Results, "Your are looking at results of %s"},
		{"vote", handler.Vote, "Your are voting question %s"},
	}

	ids := []string{"42", "0", "-1", "abc", "999999999999999999999", "a b", "%zz", ""}

	for _, stub := range stubs {
		for _, id := range ids {
			t.Run(stub.name+"/"+id, func(t *testing.T) {
				req := httptest.NewRequest("GET", "/polls/x/", nil)
				req.SetPathValue("question_id", id)
				w := httptest.NewRecorder()

				stub.handler(w, req)

				testutil.AssertStatus(t, w, http.StatusOK)
				assert.Equal(t, fmt.Sprintf(stub.format, id), w.Body.String())
				assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

				// Same input, same bytes
				again := httptest.NewRecorder()
				stub.handler(again, req)
				assert.Equal(t, w.Body.String(), again.Body.String())
			})
		}
	}
}

func TestPollDetail_Example(t *testing.T) {
	handler := NewPollHandler(&fakeQuestions{}, &captureRenderer{})

	req := httptest.NewRequest("GET", "/polls/42/", nil)
	req.SetPathValue("question_id", "42")
	w := httptest.NewRecorder()
	handler.Detail(w, req)

	assert.Equal(t, "Your are looking at question 42", w.Body.String())
}
