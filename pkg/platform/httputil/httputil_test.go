package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "flims/pkg/domain-errors"
)

func TestWriteError(t *testing.T) {
	t.Run("internal error keeps cause out of the body", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.Wrap(errors.New("db failed"), dErrors.CodeInternal, "failed to list flims"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "failed to list flims", body["err"])
	})

	t.Run("bad request includes message", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid input"))

		require.Equal(t, http.StatusBadRequest, w.Code)
		var body map[string]string
		require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		assert.Equal(t, "invalid input", body["err"])
	})

	t.Run("uncoded error is masked", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteError(w, errors.New("secret detail"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "secret detail")
	})
}

func TestWriteValidationErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteValidationErrors(w, map[string]string{"title": "too short"})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"err":{"title":"too short"}}`, w.Body.String())
}

func TestDecodeJSON(t *testing.T) {
	t.Run("keeps numbers as json.Number", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"id": 3}`))
		var body map[string]any
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &body))
		assert.Equal(t, json.Number("3"), body["id"])
	})

	t.Run("empty body is not an error", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		body := map[string]any{}
		require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &body))
		assert.Empty(t, body)
	})

	t.Run("malformed body is a bad request", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("not json"))
		var body map[string]any
		err := DecodeJSON(httptest.NewRecorder(), r, &body)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}
