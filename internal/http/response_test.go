package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studylog-backend-go/internal/services"
)

func jsonRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeValid_OK(t *testing.T) {
	var req LoginRequest
	err := DecodeValid(jsonRequest(`{"email":"alice@example.com","password":"secret"}`), &req)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", req.Email)
}

func TestDecodeValid_MissingField(t *testing.T) {
	var req LoginRequest
	err := DecodeValid(jsonRequest(`{"email":"alice@example.com"}`), &req)
	require.Error(t, err)
	serr, ok := err.(services.ServiceError)
	require.True(t, ok)
	assert.Equal(t, 400, serr.Status)
	assert.Contains(t, serr.Message, "Password")
}

func TestDecodeValid_BadJSON(t *testing.T) {
	var req LoginRequest
	err := DecodeValid(jsonRequest(`{not json`), &req)
	require.Error(t, err)
	serr, ok := err.(services.ServiceError)
	require.True(t, ok)
	assert.Equal(t, 400, serr.Status)
}

func TestDecodeValid_RegisterRoleEnum(t *testing.T) {
	var req RegisterRequest
	err := DecodeValid(jsonRequest(`{"email":"a@b.com","password":"secret1","displayName":"A","role":"admin"}`), &req)
	require.Error(t, err)

	err = DecodeValid(jsonRequest(`{"email":"a@b.com","password":"secret1","displayName":"A","role":"teacher"}`), &req)
	require.NoError(t, err)
}

func TestWriteError_Body(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusForbidden, "Not allowed")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Not allowed"}`, rec.Body.String())
}

func TestWriteServiceError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteServiceError(rec, services.ErrNotFound("Record not found"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Record not found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteServiceError(rec, assertAnError())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, rec.Body.String())
}

func assertAnError() error {
	return services.WrapError(http.ErrBodyNotAllowed, "db query")
}
