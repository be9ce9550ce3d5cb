// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the two
body encodings a form may arrive in (urlencoded from a browser, JSON from a
script), ensuring consistent error handling.
*/
package requestutil

import (
	"encoding/json"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/snipbin/internal/platform/validate"
)

// maxBodyBytes bounds every decoded body. It leaves headroom above the largest
// snippet content for the remaining form fields.
const maxBodyBytes = 1 << 20

// FormBinder is implemented by input structs that can be filled from
// urlencoded form values.
type FormBinder interface {
	BindForm(values url.Values)
}

/*
Decode reads the request body into target.

A JSON content type is decoded with encoding/json; anything else is parsed as
a urlencoded form and handed to target.BindForm.

Parameters:
  - request: *http.Request
  - target: FormBinder (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidBody if decoding fails, otherwise nil
*/
func Decode(writer http.ResponseWriter, request *http.Request, target FormBinder) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)

	if isJSON(request) {
		if err := json.NewDecoder(request.Body).Decode(target); err != nil {
			return validate.ErrInvalidBody
		}
		return nil
	}

	if err := request.ParseForm(); err != nil {
		return validate.ErrInvalidBody
	}

	target.BindForm(request.PostForm)
	return nil
}

/*
ID retrieves a named URL parameter (UUID) from the request.
*/
func ID(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// isJSON reports whether the request declares a JSON body.
func isJSON(request *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get("Content-Type"))
	return err == nil && mediaType == "application/json"
}
