package failure_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"gather/shared/failure"
)

func TestBadRequest(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantNil bool
	}{
		{
			name: "wraps an error with status 400",
			err:  errors.New("event_id is required"),
		},
		{
			name:    "nil error returns nil",
			err:     nil,
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := failure.BadRequest(tt.err)

			if tt.wantNil {
				assert.Nil(t, got)

				return
			}

			assert.Equal(t, http.StatusBadRequest, failure.GetCode(got))
			assert.Equal(t, tt.err.Error(), got.Error())
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "not found",
			err:  failure.NotFound("booking not found"),
			want: http.StatusNotFound,
		},
		{
			name: "forbidden",
			err:  failure.Forbidden("You can only update your own RSVPs"),
			want: http.StatusForbidden,
		},
		{
			name: "unauthorized",
			err:  failure.Unauthorized("Missing authorization header"),
			want: http.StatusUnauthorized,
		},
		{
			name: "conflict",
			err:  failure.Conflict("booking already exists"),
			want: http.StatusConflict,
		},
		{
			name: "bad request from string",
			err:  failure.BadRequestFromString("status is required"),
			want: http.StatusBadRequest,
		},
		{
			name: "plain error collapses to 500",
			err:  errors.New("pq: connection refused"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}

func TestGetCodeWrapped(t *testing.T) {
	inner := failure.NotFound("event not found")
	wrapped := errors.Join(errors.New("failed to create booking"), inner)

	assert.Equal(t, http.StatusNotFound, failure.GetCode(wrapped))
}
