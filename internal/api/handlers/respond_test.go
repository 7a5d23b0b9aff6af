package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTarget struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestDecodeJSONValidBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"gel manicure","count":2}`))

	var dst decodeTarget
	err := DecodeJSON(r, &dst)

	require.NoError(t, err)
	assert.Equal(t, "gel manicure", dst.Name)
	assert.Equal(t, 2, dst.Count)
}

func TestDecodeJSONValidBodyTrailingWhitespace(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader("{\"name\":\"polish\"}\n"))

	var dst decodeTarget
	err := DecodeJSON(r, &dst)

	require.NoError(t, err)
	assert.Equal(t, "polish", dst.Name)
}

func TestDecodeJSONRejectsSecondDocument(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))

	var dst decodeTarget
	err := DecodeJSON(r, &dst)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected data after JSON body")
}

func TestDecodeJSONRejectsTrailingGarbage(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a"} trailing`))

	var dst decodeTarget
	err := DecodeJSON(r, &dst)

	require.Error(t, err)
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a","bogus":true}`))

	var dst decodeTarget
	err := DecodeJSON(r, &dst)

	require.Error(t, err)
}

func TestDecodeJSONEmptyBodyIsEOF(t *testing.T) {
	// Обработчик подтверждения допускает пустое тело и различает его по io.EOF
	r := httptest.NewRequest("PATCH", "/", strings.NewReader(""))

	var dst decodeTarget
	err := DecodeJSON(r, &dst)

	require.Error(t, err)
	assert.True(t, errors.Is(err, io.EOF))
}

func TestRespondErrorBody(t *testing.T) {
	w := httptest.NewRecorder()

	RespondBadRequest(w, "invalid date")

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "invalid date", body.Error)
}
