package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "bookshelf/internal/delivery/context"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	deliverycontext.SetRequestID(c, "req-1")

	return c, rec
}

func TestSuccessWritesRawBody(t *testing.T) {
	c, rec := newContext()

	require.NoError(t, Success(c, http.StatusCreated, map[string]any{"id": 1}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"id":1}`, rec.Body.String())
}

func TestErrorEnvelope(t *testing.T) {
	details := []map[string]string{{"field": "name", "message": "O nome é obrigatório"}}

	tests := []struct {
		name        string
		status      int
		wantDetails bool
	}{
		{name: "client error keeps details", status: http.StatusBadRequest, wantDetails: true},
		{name: "unauthorized drops details", status: http.StatusUnauthorized},
		{name: "forbidden drops details", status: http.StatusForbidden},
		{name: "server error drops details", status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newContext()

			require.NoError(t, Error(c, tt.status, "SOME_CODE", "msg", details))
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "SOME_CODE", body["error"]["code"])
			assert.Equal(t, "msg", body["error"]["message"])
			assert.Equal(t, "req-1", body["meta"]["request_id"])

			_, hasDetails := body["error"]["details"]
			assert.Equal(t, tt.wantDetails, hasDetails)
		})
	}
}
