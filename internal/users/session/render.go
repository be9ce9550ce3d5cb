// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"net/http"

	"github.com/taibuivan/snipbin/internal/platform/respond"
	"github.com/taibuivan/snipbin/pkg/pagination"
)

// # Page Helpers

/*
Render writes a page for current: data plus the consumed flash and identity.

Consuming the flash here is what makes it visible exactly once.

Parameters:
  - writer: http.ResponseWriter
  - request: *http.Request
  - current: *Session
  - data: interface{} (page payload)
  - meta: *pagination.Meta (nil for non-list pages)
*/
func (manager *Manager) Render(writer http.ResponseWriter, request *http.Request, current *Session, data interface{}, meta *pagination.Meta) {
	flash, err := manager.ConsumeFlash(request.Context(), current)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	envelope := respond.ViewEnvelope{Data: data, Meta: meta}
	if flash != nil {
		envelope.Flash = flash
	}
	if identity := current.Identity(); identity != nil {
		envelope.User = identity
	}

	respond.View(writer, envelope)
}

// Redirect queues a flash on current and sends the browser to location.
func (manager *Manager) Redirect(writer http.ResponseWriter, request *http.Request, current *Session, kind, text, location string) {
	if err := manager.SetFlash(request.Context(), writer, current, kind, text); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.SeeOther(writer, request, location)
}

// User returns the identity of current as a template-ready value, or nil.
func User(current *Session) interface{} {
	if identity := current.Identity(); identity != nil {
		return identity
	}
	return nil
}
