package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/pkg/errors"

	"github.com/ekarimli/sorgu/app"
	"github.com/ekarimli/sorgu/httpx"
	"github.com/ekarimli/sorgu/log"
	"github.com/ekarimli/sorgu/model"
	"github.com/ekarimli/sorgu/stats"
	"github.com/ekarimli/sorgu/store"
)

func CreateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := model.QuestionPayload{}
		err := render.DecodeJSON(r.Body, &payload)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := payload.Validate(); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "%s", err)
			return
		}

		question, err := app.Questions.Create(r.Context(), payload)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_question", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, question)
	}
}

func ListQuestions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := app.Questions.ListAll(r.Context())
		if err != nil {
			httpx.LogInternalError(w, "db.get_questions", err)
			return
		}

		// the admin list shows counts, not the answers themselves
		type row struct {
			model.Question
			AnswerCount int `json:"answerCount"`
		}
		list := make([]row, 0, len(questions))
		for _, q := range questions {
			count := len(q.Answers)
			q.Answers = nil
			list = append(list, row{Question: q, AnswerCount: count})
		}

		render.JSON(w, r, map[string]any{
			"questions": list,
		})
	}
}

func GetQuestionById(app app.App) http.HandlerFunc {
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

		render.JSON(w, r, question)
	}
}

func UpdateQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionId := chi.URLParam(r, "id")

		patch := model.QuestionPatch{}
		err := render.DecodeJSON(r.Body, &patch)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if err := patch.Validate(); err != nil {
			httpx.LogStatusMsg(w, http.StatusBadRequest, log.DebugLevel, "request.validate", "%s", err)
			return
		}

		question, err := app.Questions.Update(r.Context(), questionId, patch)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "update_question", questionId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.update_question", err)
			return
		}

		render.JSON(w, r, question)
	}
}

type toggleRequest struct {
	Active bool `json:"active"`
}

// ToggleQuestion flips whether viewers are offered the question.
func ToggleQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionId := chi.URLParam(r, "id")

		req := toggleRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		err = app.Questions.SetActive(r.Context(), questionId, req.Active)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "toggle_question", questionId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.toggle_question", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"id":     questionId,
			"active": req.Active,
		})
	}
}

func DeleteQuestion(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questionId := chi.URLParam(r, "id")

		err := app.Questions.Delete(r.Context(), questionId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, "delete_question", questionId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.delete_question", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// GetQuestionStats serves the aggregated per-variant counts and percentages.
func GetQuestionStats(app app.App) http.HandlerFunc {
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

		render.JSON(w, r, stats.Summarize(question))
	}
}

// GetQuestionPresentation serves the read-only presentation payload: variant
// rows for choice questions, the raw answer texts for free-text ones.
func GetQuestionPresentation(app app.App) http.HandlerFunc {
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

		resp := map[string]any{
			"title":        question.Title,
			"totalAnswers": len(question.Answers),
		}
		if question.Type() == model.TypeVariant && len(question.Variants) > 0 {
			resp["mode"] = "variants"
			resp["variants"] = stats.Summarize(question).Variants
		} else {
			texts := make([]string, 0, len(question.Answers))
			for _, a := range question.Answers {
				texts = append(texts, a.Answer)
			}
			resp["mode"] = "text"
			resp["answers"] = texts
		}

		render.JSON(w, r, resp)
	}
}
