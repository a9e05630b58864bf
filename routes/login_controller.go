package routes

import (
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/crypto/bcrypt"

	"github.com/ekarimli/sorgu/app"
	"github.com/ekarimli/sorgu/httpx"
	"github.com/ekarimli/sorgu/log"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Login checks the candidate secret against the server-held hash and, on
// success, unlocks the admin surface for this browser. The response contract
// keeps "wrong password" (401) and "server misconfigured" (500) distinct.
func Login(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := loginRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "login.parse_body")
			return
		}

		if req.Password == "" {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, loginResponse{Message: "password is required"})
			return
		}

		if app.AdminPassHash == "" {
			log.Error("login.no_admin_password_configured")
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, loginResponse{Message: "server is misconfigured: no admin password set"})
			return
		}

		err = bcrypt.CompareHashAndPassword([]byte(app.AdminPassHash), []byte(req.Password))
		if err != nil {
			log.Debug("login.wrong_password")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, loginResponse{Message: "wrong password, please try again"})
			return
		}

		err = app.Sessions.IssueAdmin(w)
		if err != nil {
			httpx.LogInternalError(w, "login.issue_session", err)
			return
		}

		render.JSON(w, r, loginResponse{Success: true})
	}
}

// Logout drops the admin marker.
func Logout(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		app.Sessions.ClearAdmin(w)
		render.JSON(w, r, loginResponse{Success: true})
	}
}
