// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/snipbin/internal/platform/apperr"
	"github.com/taibuivan/snipbin/internal/platform/respond"
)

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

func TestError_HidesInternalCause(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/", nil)

	respond.Error(recorder, request, errors.New("pq: relation \"account\" does not exist"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, apperr.CodeInternal, body["code"])
	assert.NotContains(t, recorder.Body.String(), "relation")
}

func TestError_UnauthenticatedIsNotFound(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/create", nil)

	respond.Error(recorder, request, apperr.Unauthenticated())

	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestForm_EchoesInputAndDetails(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/register", nil)

	input := map[string]string{"username": "alice", "email": "alice@example.com"}
	respond.Form(recorder, request, apperr.DuplicateUsername(), input, nil)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	body := decode(t, recorder)
	assert.Equal(t, apperr.CodeDuplicateUsername, body["code"])
	assert.Equal(t, "alice", body["input"].(map[string]interface{})["username"])
	assert.Len(t, body["details"], 1)
}

func TestForm_InfrastructureFailureIsGeneric(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/register", nil)

	respond.Form(recorder, request, apperr.Internal(errors.New("boom")), map[string]string{"username": "alice"}, nil)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.NotContains(t, recorder.Body.String(), "alice")
}

func TestView_NullFlashAndUser(t *testing.T) {
	recorder := httptest.NewRecorder()

	respond.View(recorder, respond.ViewEnvelope{Data: []string{}})

	body := decode(t, recorder)
	assert.Contains(t, body, "flash")
	assert.Nil(t, body["flash"])
	assert.Nil(t, body["user"])
	assert.Equal(t, "no-store", recorder.Header().Get("Cache-Control"))
}

func TestSeeOther(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/create", nil)

	respond.SeeOther(recorder, request, "/")

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/", recorder.Header().Get("Location"))
}
