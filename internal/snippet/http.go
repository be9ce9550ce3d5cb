// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package snippet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	requestutil "github.com/taibuivan/snipbin/internal/platform/request"
	"github.com/taibuivan/snipbin/internal/platform/respond"
	"github.com/taibuivan/snipbin/internal/users/session"
	"github.com/taibuivan/snipbin/pkg/pagination"
	"github.com/taibuivan/snipbin/pkg/tags"
)

// # Definitions & Constructors

// Handler implements the snippet pages.
//
// # Authorization
//
// Every protected endpoint calls [Guard.Authorize] itself, before touching
// the service. Anonymous callers get a 404, non-owners a 403.
type Handler struct {
	snippetService *Service
	guard          *Guard
	sessions       *session.Manager
}

// NewHandler constructs a new [Handler].
func NewHandler(service *Service, guard *Guard, sessions *session.Manager) *Handler {
	return &Handler{snippetService: service, guard: guard, sessions: sessions}
}

// RegisterRoutes adds the snippet pages to router.
//
// # Endpoints
//   - GET  /              : All snippets, newest first.
//   - GET  /tags/{tag}    : Snippets carrying a tag.
//   - GET  /mine          : The signed-in user's snippets.
//   - GET  /create        : Create form (signed in).
//   - POST /create        : Creates a snippet owned by the signed-in user.
//   - GET  /{id}          : A single snippet.
//   - GET  /{id}/update   : Edit form (owner only).
//   - POST /{id}/update   : Saves edits (owner only).
//   - GET  /{id}/delete   : Delete confirmation (owner only).
//   - POST /{id}/delete   : Deletes (owner only).
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.list)
	router.Get("/tags/{tag}", handler.listByTag)
	router.Get("/mine", handler.listMine)

	router.Get("/create", handler.createView)
	router.Post("/create", handler.create)

	router.Get("/{id}", handler.get)
	router.Get("/{id}/update", handler.updateView)
	router.Post("/{id}/update", handler.update)
	router.Get("/{id}/delete", handler.deleteView)
	router.Post("/{id}/delete", handler.delete)
}

// # Listings

// list handles GET /.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}
	handler.renderList(writer, request, current, Filter{})
}

// listByTag handles GET /tags/{tag}.
func (handler *Handler) listByTag(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	tag := tags.Normalize(requestutil.Param(request, "tag"))
	if tag == "" {
		respond.Error(writer, request, apperr.NotFound("Tag"))
		return
	}

	handler.renderList(writer, request, current, Filter{Tag: tag})
}

// listMine handles GET /mine.
func (handler *Handler) listMine(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	if _, err := handler.guard.Authorize(request.Context(), current, ""); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.renderList(writer, request, current, Filter{Owner: current.Username()})
}

func (handler *Handler) renderList(writer http.ResponseWriter, request *http.Request, current *session.Session, filter Filter) {
	page := pagination.FromRequest(request)

	snippets, total, err := handler.snippetService.List(request.Context(), filter, page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	meta := pagination.NewMeta(page.Page, page.Limit, total)
	handler.sessions.Render(writer, request, current, NewViews(current, snippets), &meta)
}

// # Single Snippet

// get handles GET /{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	snippet, err := handler.snippetService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Render(writer, request, current, NewView(current, snippet), nil)
}

// # Create

// createView handles GET /create.
func (handler *Handler) createView(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	if _, err := handler.guard.Authorize(request.Context(), current, ""); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Render(writer, request, current, nil, nil)
}

/*
create handles POST /create.

Response:
  - 303: Redirect to / with a success flash
  - 400: Validation failure, input re-rendered
  - 404: Not signed in
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	if _, err := handler.guard.Authorize(request.Context(), current, ""); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.Decode(writer, request, &input); err != nil {
		respond.Form(writer, request, err, input, session.User(current))
		return
	}

	if _, err := handler.snippetService.Create(request.Context(), current.Username(), input); err != nil {
		respond.Form(writer, request, err, input, session.User(current))
		return
	}

	handler.sessions.Redirect(writer, request, current, session.FlashSuccess, MessageCreated, "/")
}

// # Update

// updateView handles GET /{id}/update.
func (handler *Handler) updateView(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	snippet, err := handler.guard.Authorize(request.Context(), current, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Render(writer, request, current, NewView(current, snippet), nil)
}

/*
update handles POST /{id}/update.

Response:
  - 303: Redirect to / with a success flash
  - 303: Redirect to / with a danger flash if the snippet is gone
  - 400: Validation failure, input re-rendered
  - 403: Not the owner
  - 404: Not signed in
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	id := requestutil.ID(request, "id")
	if _, err := handler.guard.Authorize(request.Context(), current, id); err != nil {
		handler.failMutation(writer, request, current, err)
		return
	}

	var input Input
	if err := requestutil.Decode(writer, request, &input); err != nil {
		respond.Form(writer, request, err, input, session.User(current))
		return
	}

	if _, err := handler.snippetService.Update(request.Context(), id, current.Username(), input); err != nil {
		if apperr.HasCode(err, apperr.CodeValidation) {
			respond.Form(writer, request, err, input, session.User(current))
			return
		}
		handler.failMutation(writer, request, current, err)
		return
	}

	handler.sessions.Redirect(writer, request, current, session.FlashSuccess, MessageUpdated, "/")
}

// # Delete

// deleteView handles GET /{id}/delete.
func (handler *Handler) deleteView(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	snippet, err := handler.guard.Authorize(request.Context(), current, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.sessions.Render(writer, request, current, NewView(current, snippet), nil)
}

/*
delete handles POST /{id}/delete.

Response:
  - 303: Redirect to / with a success flash
  - 303: Redirect to / with a danger flash if the snippet is gone
  - 403: Not the owner
  - 404: Not signed in
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.load(writer, request)
	if !ok {
		return
	}

	id := requestutil.ID(request, "id")
	if _, err := handler.guard.Authorize(request.Context(), current, id); err != nil {
		handler.failMutation(writer, request, current, err)
		return
	}

	if err := handler.snippetService.Delete(request.Context(), id, current.Username()); err != nil {
		handler.failMutation(writer, request, current, err)
		return
	}

	handler.sessions.Redirect(writer, request, current, session.FlashSuccess, MessageDeleted, "/")
}

// # Helpers

// load resolves the session or writes a 500. ok is false when the response
// has already been written.
func (handler *Handler) load(writer http.ResponseWriter, request *http.Request) (*session.Session, bool) {
	current, err := handler.sessions.Load(request.Context(), writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return nil, false
	}
	return current, true
}

// failMutation answers a failed update or delete. A snippet that vanished
// (or never existed) is a flash and a trip home; everything else is an
// error page.
func (handler *Handler) failMutation(writer http.ResponseWriter, request *http.Request, current *session.Session, err error) {
	if current.IsAuthenticated() && apperr.IsNotFound(err) {
		handler.sessions.Redirect(writer, request, current, session.FlashDanger, MessageNotFound, "/")
		return
	}
	respond.Error(writer, request, err)
}
