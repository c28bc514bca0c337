package handler

import (
	"net/http"

	"github.com/napowa/napowa-server/internal/api/http/respond"
	"github.com/napowa/napowa-server/internal/logger"
	"github.com/napowa/napowa-server/internal/model"
)

// Push serves the caller's web push subscriptions.
type Push struct {
	pushService    PushService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewPush creates a new Push handler.
func NewPush(pushService PushService, contextManager model.ContextManager, logger *logger.Logger) *Push {
	return &Push{pushService: pushService, contextManager: contextManager, logger: logger}
}

func (h *Push) Subscribe(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req pushSubscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	sub, err := h.pushService.Subscribe(r.Context(), identity.UserID, req.Endpoint, req.Keys.P256dh, req.Keys.Auth)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	respond.JSON(w, http.StatusCreated, newPushSubscriptionResponse(sub))
}

func (h *Push) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	var req pushUnsubscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	if err := h.pushService.Unsubscribe(r.Context(), identity.UserID, req.Endpoint); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Push) List(w http.ResponseWriter, r *http.Request) {
	identity, err := currentIdentity(h.contextManager, r)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	subs, err := h.pushService.List(r.Context(), identity.UserID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	out := make([]pushSubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, newPushSubscriptionResponse(s))
	}
	respond.JSON(w, http.StatusOK, out)
}
