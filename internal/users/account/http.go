// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	requestutil "github.com/taibuivan/snipbin/internal/platform/request"
	"github.com/taibuivan/snipbin/internal/platform/respond"
	"github.com/taibuivan/snipbin/internal/users/session"
)

// Flash messages shown after account actions.
const (
	MessageRegistered = "Your account has been created. Please log in."
	MessageLoggedOut  = "You have been logged out."
)

// # Definitions & Constructors

// Handler implements the register, login and logout pages.
type Handler struct {
	accountService *Service
	sessions       *session.Manager
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{accountService: service, sessions: sessions}
}

// RegisterRoutes adds the account pages to router.
//
// # Endpoints
//   - GET  /register : Registration form.
//   - POST /register : Creates an account, then redirects to /login.
//   - GET  /login    : Login form.
//   - POST /login    : Authenticates and regenerates the session.
//   - POST /logout   : Destroys the session.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/register", handler.registerView)
	router.Post("/register", handler.register)
	router.Get("/login", handler.loginView)
	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
}

// # Request Payloads

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// BindForm implements requestutil.FormBinder.
func (form *registerRequest) BindForm(values url.Values) {
	form.Username = values.Get(FieldUsername)
	form.Email = values.Get(FieldEmail)
	form.Password = values.Get(FieldPassword)
}

// echo returns the fields safe to send back on a re-render.
func (form *registerRequest) echo() map[string]string {
	return map[string]string{FieldUsername: form.Username, FieldEmail: form.Email}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// BindForm implements requestutil.FormBinder.
func (form *loginRequest) BindForm(values url.Values) {
	form.Username = values.Get(FieldUsername)
	form.Password = values.Get(FieldPassword)
}

// # Handlers

// registerView handles GET /register.
func (handler *Handler) registerView(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.sessions.Load(request.Context(), writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.sessions.Render(writer, request, current, nil, nil)
}

/*
register handles POST /register.

Response:
  - 303: Redirect to /login with a success flash
  - 400: Validation failure, input re-rendered without the password
  - 409: Username or email already taken
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.sessions.Load(request.Context(), writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input registerRequest
	if err := requestutil.Decode(writer, request, &input); err != nil {
		respond.Form(writer, request, err, input.echo(), session.User(current))
		return
	}

	_, err = handler.accountService.Register(request.Context(), RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		respond.Form(writer, request, err, input.echo(), session.User(current))
		return
	}

	handler.sessions.Redirect(writer, request, current, session.FlashSuccess, MessageRegistered, "/login")
}

// loginView handles GET /login.
func (handler *Handler) loginView(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.sessions.Load(request.Context(), writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	handler.sessions.Render(writer, request, current, nil, nil)
}

/*
login handles POST /login.

Response:
  - 303: Redirect to / with a regenerated session cookie
  - 303: Redirect to /login with a danger flash on bad credentials
  - 500: Session regeneration failed; the previous session is kept anonymous
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.sessions.Load(request.Context(), writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input loginRequest
	if err := requestutil.Decode(writer, request, &input); err != nil {
		respond.Form(writer, request, err, map[string]string{FieldUsername: input.Username}, session.User(current))
		return
	}

	account, err := handler.accountService.Authenticate(request.Context(), input.Username, input.Password)
	if err != nil {
		if appError := apperr.As(err); appError != nil && appError.Code == apperr.CodeInvalidCredentials {
			handler.sessions.Redirect(writer, request, current, session.FlashDanger, appError.Message, "/login")
			return
		}
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.sessions.Login(request.Context(), writer, current, account.Identity()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.SeeOther(writer, request, "/")
}

/*
logout handles POST /logout.

Response:
  - 303: Redirect to / with a fresh anonymous session and a flash
  - 404: No one is logged in
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	current, err := handler.sessions.Load(request.Context(), writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	next, err := handler.sessions.Logout(request.Context(), writer, current)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Redirect(writer, request, next, session.FlashSuccess, MessageLoggedOut, "/")
}
