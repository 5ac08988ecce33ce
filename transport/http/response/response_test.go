package response_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"gather/shared/constant"
	"gather/shared/failure"
	"gather/transport/http/response"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body response.Error
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Error)

	return *body.Error
}

func TestWithError(t *testing.T) {
	t.Run("failure messages reach the client with their code", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, failure.NotFound("event not found"))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "event not found", decodeError(t, rec))
	})

	t.Run("wrapped store errors collapse to the generic message", func(t *testing.T) {
		rec := httptest.NewRecorder()

		storeErr := fmt.Errorf("failed to get bookings: %w", &pq.Error{
			Code:    "28P01",
			Message: `password authentication failed for user "app"`,
		})

		response.WithError(rec, storeErr)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, constant.ResponseErrorInternalServer, decodeError(t, rec))
		assert.NotContains(t, rec.Body.String(), "password authentication failed")
	})

	t.Run("plain errors without a failure code also stay generic", func(t *testing.T) {
		rec := httptest.NewRecorder()

		response.WithError(rec, fmt.Errorf("dial tcp 10.0.0.5:5432: connect: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, constant.ResponseErrorInternalServer, decodeError(t, rec))
	})
}
