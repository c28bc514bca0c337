package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/testutil"
)

func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         error
		wantStatus int
		wantMsg    string
		wantFields map[string]string
	}{
		{
			name:       "validation keeps fields",
			in:         apierrors.NewErrValidation(map[string]string{"email": "is required"}),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "validation failed",
			wantFields: map[string]string{"email": "is required"},
		},
		{
			name:       "wrapped api error",
			in:         fmt.Errorf("ctx: %w", apierrors.NewErrUserNotFound()),
			wantStatus: http.StatusNotFound,
			wantMsg:    "user not found",
		},
		{
			name:       "otp failure is 401",
			in:         apierrors.NewErrInvalidOrExpiredOTP(),
			wantStatus: http.StatusUnauthorized,
			wantMsg:    "code is invalid or has expired",
		},
		{
			name:       "reset failure is 400 with token field",
			in:         apierrors.NewErrInvalidOrExpiredResetToken(),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "code is invalid or has expired",
			wantFields: map[string]string{"token": "invalid or expired"},
		},
		{
			name:       "config error hides detail",
			in:         apierrors.NewErrConfig("smtp host missing"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "server is not configured to handle this request",
		},
		{
			name:       "unknown error",
			in:         errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal server error",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)

			Error(rec, req, testutil.MakeNoopLogger(), tt.in)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body ErrorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.Equal(t, tt.wantFields, body.Errors)
		})
	}
}

func TestError_TooManyRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, httptest.NewRequest(http.MethodPost, "/", nil), testutil.MakeNoopLogger(), apierrors.NewErrTooManyRequests("slow down"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestJSON_NilBody(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusAccepted, nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Empty(t, rec.Body.String())
}
