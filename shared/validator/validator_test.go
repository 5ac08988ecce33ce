package validator_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gather/shared/failure"
	"gather/shared/validator"
)

type createBookingBody struct {
	EventID int64  `json:"event_id" validate:"required"`
	Status  string `json:"status"   validate:"omitempty"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantCode int
	}{
		{
			name: "valid body",
			body: `{"event_id": 42, "status": "maybe"}`,
		},
		{
			name:     "missing required field",
			body:     `{"status": "going"}`,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed json",
			body:     `{"event_id": `,
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createBookingBody{}
			err := validator.Validate(strings.NewReader(tt.body), &req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, int64(42), req.EventID)
		})
	}
}

func TestValidateStructMessages(t *testing.T) {
	type registerBody struct {
		Email    string `json:"email"    validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	tests := []struct {
		name        string
		data        registerBody
		wantMessage string
	}{
		{
			name:        "missing email",
			data:        registerBody{Password: "longenough"},
			wantMessage: "Email is required",
		},
		{
			name:        "invalid email",
			data:        registerBody{Email: "not-an-email", Password: "longenough"},
			wantMessage: "Email must be a valid email address",
		},
		{
			name:        "short password",
			data:        registerBody{Email: "user@example.com", Password: "short"},
			wantMessage: "Password must be greater than or equal to 8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			assert.Error(t, err)
			assert.Equal(t, tt.wantMessage, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("user@example.com", "required,email"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestMimetypesValidation(t *testing.T) {
	tests := []struct {
		name    string
		image   string
		wantErr bool
	}{
		{
			name:  "allowed png data uri",
			image: "data:image/png;base64,iVBORw0KGgo=",
		},
		{
			name:    "disallowed gif data uri",
			image:   "data:image/gif;base64,R0lGOD",
			wantErr: true,
		},
		{
			name:    "not a data uri",
			image:   "plain-string",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.image, "mimetypes=image/png image/jpeg")

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			assert.NoError(t, err)
		})
	}
}
