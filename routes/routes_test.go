package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	gojson "github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/ekarimli/sorgu/app"
	"github.com/ekarimli/sorgu/config"
	"github.com/ekarimli/sorgu/database"
	"github.com/ekarimli/sorgu/model"
	"github.com/ekarimli/sorgu/session"
	"github.com/ekarimli/sorgu/store"
)

const testAdminPassword = "correct horse battery staple"

func newTestApp(t *testing.T) app.App {
	t.Helper()

	cfg := config.Config{
		DBUrl:         filepath.Join(t.TempDir(), "test.sqlite"),
		SessionSecret: "test-session-secret",
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash test password: %v", err)
	}
	cfg.AdminPassHash = string(hash)

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return app.App{
		Questions: store.NewQuestions(db),
		Sessions:  session.NewManager(cfg.SessionSecret),
		Config:    cfg,
	}
}

func jsonRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	if body == nil {
		return httptest.NewRequest(method, path, nil)
	}
	encoded, err := gojson.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request body: %v", err)
	}
	r := httptest.NewRequest(method, path, bytes.NewReader(encoded))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := gojson.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func createQuestion(t *testing.T, a app.App, p model.QuestionPayload) model.Question {
	t.Helper()
	q, err := a.Questions.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("failed to create question: %v", err)
	}
	return q
}

func adminCookies(t *testing.T, a app.App) []*http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	if err := a.Sessions.IssueAdmin(w); err != nil {
		t.Fatalf("failed to issue admin session: %v", err)
	}
	return w.Result().Cookies()
}
