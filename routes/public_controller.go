package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/ekarimli/sorgu/app"
	"github.com/ekarimli/sorgu/httpx"
	"github.com/ekarimli/sorgu/log"
	"github.com/ekarimli/sorgu/model"
	"github.com/ekarimli/sorgu/store"
)

// PublicListQuestions serves the home page listing: active questions only,
// without their answers.
func PublicListQuestions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := app.Questions.ListActive(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_questions", err)
			return
		}

		for i := range questions {
			questions[i].Answers = nil
		}

		render.JSON(w, r, map[string]any{
			"questions": questions,
		})
	}
}

// PublicGetQuestionById serves one question to a viewer. Stored answers stay
// private; the response carries an answered flag instead, read from the
// viewer's own session marker.
func PublicGetQuestionById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionId := chi.URLParam(r, "id")

		question, err := app.Questions.GetByID(r.Context(), questionId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_question", questionId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_question", err)
			return
		}

		question.Answers = nil
		question.Answered = app.Sessions.HasAnswered(r, questionId)

		render.JSON(w, r, question)
	}
}

// PublicSubmitAnswer appends one answer to a question. The session marker is
// checked before any store contact and set only after the append succeeded,
// so a failed append leaves the form available.
func PublicSubmitAnswer(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionId := chi.URLParam(r, "id")

		if app.Sessions.HasAnswered(r, questionId) {
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "session.already_answered")
			return
		}

		submission := model.SubmissionPayload{}
		err := render.DecodeJSON(r.Body, &submission)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		question, err := app.Questions.GetByID(r.Context(), questionId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "get_question", questionId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_question", err)
			return
		}

		encoded, err := encodeAnswer(question, submission)
		if err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "%s", err)
			return
		}

		err = app.Questions.AppendAnswer(r.Context(), questionId, model.Answer{
			Answer:    encoded,
			CreatedAt: time.Now(),
		})
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "append_answer", questionId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.append_answer", err)
			return
		}

		// marker first, response after: a reload right now must already
		// read "answered"
		err = app.Sessions.MarkAnswered(w, r, questionId)
		if err != nil {
			httpx.LogInternalError(w, "session.mark_answered", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"answered": true,
		})
	}
}

// encodeAnswer validates the submission against the question and renders the
// stored answer string: raw text for text questions, a JSON list of selected
// variant texts for variant questions.
func encodeAnswer(q model.Question, s model.SubmissionPayload) (string, error) {
	switch q.Type() {
	case model.TypeVariant:
		if len(s.Selected) == 0 {
			return "", errors.New("select at least one variant")
		}
		if limit := q.SelectionCap(); len(s.Selected) > limit {
			return "", errors.Errorf("at most %d variants may be selected", limit)
		}
		for _, text := range s.Selected {
			if !q.HasVariant(text) {
				return "", errors.Errorf("unknown variant: %s", text)
			}
		}
		encoded, err := gojson.Marshal(s.Selected)
		if err != nil {
			return "", errors.Wrap(err, "encode selection")
		}
		return string(encoded), nil

	default:
		if strings.TrimSpace(s.Answer) == "" {
			return "", errors.New("answer cannot be blank")
		}
		return s.Answer, nil
	}
}
