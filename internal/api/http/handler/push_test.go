package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/napowa/napowa-server/internal/api/http/context"
	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/mocks"
	"github.com/napowa/napowa-server/internal/model"
	"github.com/napowa/napowa-server/internal/testutil"
)

func newPushHandler(t *testing.T) (*Push, *mocks.PushService) {
	svc := mocks.NewPushService(t)
	return NewPush(svc, httpcontext.NewManager(), testutil.MakeNoopLogger()), svc
}

func TestPush_Subscribe(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	endpoint := "https://push.example.com/send/abc"

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		h, svc := newPushHandler(t)
		subID := uuid.New()
		svc.On("Subscribe", mock.Anything, userID, endpoint, "pk", "sec").
			Return(model.PushSubscription{ID: subID, UserID: userID, Endpoint: endpoint, P256dh: "pk", Auth: "sec", CreatedAt: time.Now()}, nil)

		body := `{"endpoint":"` + endpoint + `","keys":{"p256dh":"pk","auth":"sec"}}`
		rec := httptest.NewRecorder()
		h.Subscribe(rec, withIdentity(jsonRequest(http.MethodPost, "/api/push/subscriptions", body), userID))

		require.Equal(t, http.StatusCreated, rec.Code)

		var out pushSubscriptionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, subID, out.ID)
		assert.NotContains(t, rec.Body.String(), "sec")
	})

	t.Run("invalid endpoint", func(t *testing.T) {
		t.Parallel()
		h, svc := newPushHandler(t)
		svc.On("Subscribe", mock.Anything, userID, "http://insecure", "pk", "sec").
			Return(model.PushSubscription{}, apierrors.NewErrValidation(map[string]string{"endpoint": "must be an https URL"}))

		body := `{"endpoint":"http://insecure","keys":{"p256dh":"pk","auth":"sec"}}`
		rec := httptest.NewRecorder()
		h.Subscribe(rec, withIdentity(jsonRequest(http.MethodPost, "/api/push/subscriptions", body), userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decodeError(t, rec).Errors, "endpoint")
	})
}

func TestPush_Unsubscribe(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("removed", func(t *testing.T) {
		t.Parallel()
		h, svc := newPushHandler(t)
		svc.On("Unsubscribe", mock.Anything, userID, "https://push.example.com/x").Return(nil)

		rec := httptest.NewRecorder()
		h.Unsubscribe(rec, withIdentity(jsonRequest(http.MethodDelete, "/api/push/subscriptions", `{"endpoint":"https://push.example.com/x"}`), userID))

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		h, svc := newPushHandler(t)
		svc.On("Unsubscribe", mock.Anything, userID, "https://push.example.com/x").Return(apierrors.NewErrNotFound("subscription"))

		rec := httptest.NewRecorder()
		h.Unsubscribe(rec, withIdentity(jsonRequest(http.MethodDelete, "/api/push/subscriptions", `{"endpoint":"https://push.example.com/x"}`), userID))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPush_List(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("empty is an array", func(t *testing.T) {
		t.Parallel()
		h, svc := newPushHandler(t)
		svc.On("List", mock.Anything, userID).Return(nil, nil)

		rec := httptest.NewRecorder()
		h.List(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/push/subscriptions", nil), userID))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("store failure", func(t *testing.T) {
		t.Parallel()
		h, svc := newPushHandler(t)
		svc.On("List", mock.Anything, userID).Return(nil, assert.AnError)

		rec := httptest.NewRecorder()
		h.List(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/push/subscriptions", nil), userID))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeError(t, rec).Message)
	})
}
