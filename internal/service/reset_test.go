package service

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/napowa/napowa-server/internal/apierrors"
	servermocks "github.com/napowa/napowa-server/internal/mocks"
	"github.com/napowa/napowa-server/internal/model"
	"github.com/napowa/napowa-server/internal/testutil"
)

func newTestResetLedger(store *memResetStore) (*ResetLedger, *time.Time) {
	l := NewResetLedger(store, 0, testutil.MakeNoopLogger())
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	return l, &now
}

func assertInvalidResetToken(t *testing.T, err error) {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, apierrors.KindInvalidOrExpired, apiErr.Kind)
	assert.Contains(t, apiErr.Fields, "token")
}

func TestNewRawToken(t *testing.T) {
	a, err := NewRawToken()
	require.NoError(t, err)
	b, err := NewRawToken()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestResetLedger_StoresDigestOnly(t *testing.T) {
	store := newMemResetStore()
	l, _ := newTestResetLedger(store)
	userID := uuid.New()

	raw, err := NewRawToken()
	require.NoError(t, err)
	require.NoError(t, l.Issue(context.Background(), userID, raw))

	require.Len(t, store.tickets, 1)
	for _, ticket := range store.tickets {
		assert.NotContains(t, string(ticket.TokenHash), raw)
		assert.Equal(t, hashToken(raw), ticket.TokenHash)
		assert.Equal(t, time.Hour, ticket.ExpiresAt.Sub(ticket.CreatedAt))
	}
}

func TestResetLedger_Verify(t *testing.T) {
	ctx := context.Background()
	l, now := newTestResetLedger(newMemResetStore())
	userID := uuid.New()

	raw, err := NewRawToken()
	require.NoError(t, err)
	require.NoError(t, l.Issue(ctx, userID, raw))

	ticket, err := l.Verify(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, userID, ticket.UserID)

	_, err = l.Verify(ctx, "")
	assertInvalidResetToken(t, err)

	_, err = l.Verify(ctx, "not-a-token")
	assertInvalidResetToken(t, err)

	*now = now.Add(time.Hour)
	_, err = l.Verify(ctx, raw)
	assertInvalidResetToken(t, err)
}

func TestResetLedger_ReissueReplaces(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestResetLedger(newMemResetStore())
	userID := uuid.New()

	first, _ := NewRawToken()
	second, _ := NewRawToken()
	require.NoError(t, l.Issue(ctx, userID, first))
	require.NoError(t, l.Issue(ctx, userID, second))

	_, err := l.Verify(ctx, first)
	assertInvalidResetToken(t, err)

	_, err = l.Verify(ctx, second)
	require.NoError(t, err)
}

func TestResetLedger_RedeemOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemResetStore()
	l, _ := newTestResetLedger(store)
	userID := uuid.New()

	raw, _ := NewRawToken()
	require.NoError(t, l.Issue(ctx, userID, raw))

	got, err := l.Redeem(ctx, raw, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, userID, got)
	assert.Equal(t, "new-hash", store.passwords[userID])

	_, err = l.Redeem(ctx, raw, "other-hash")
	assertInvalidResetToken(t, err)
	assert.Equal(t, "new-hash", store.passwords[userID])
}

func TestResetLedger_Consume(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestResetLedger(newMemResetStore())

	raw, _ := NewRawToken()
	require.NoError(t, l.Issue(ctx, uuid.New(), raw))
	ticket, err := l.Verify(ctx, raw)
	require.NoError(t, err)

	require.NoError(t, l.Consume(ctx, ticket.ID))

	_, err = l.Verify(ctx, raw)
	assertInvalidResetToken(t, err)
}

func TestResetLedger_StoreErrors(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	ticketID := uuid.New()
	boom := errors.New("db down")
	digest := hashToken("raw-token")

	store := servermocks.NewResetTicketStore(t)
	store.On("Replace", mock.Anything, mock.MatchedBy(func(tk model.ResetTicket) bool {
		return tk.UserID == userID && string(tk.TokenHash) == string(digest)
	})).Return(boom).Once()
	store.On("GetLiveByHash", mock.Anything, digest, mock.Anything).Return(model.ResetTicket{}, boom).Once()
	store.On("Delete", mock.Anything, ticketID).Return(boom).Once()
	store.On("Redeem", mock.Anything, digest, mock.Anything, "new-hash").Return(uuid.Nil, boom).Once()

	l := NewResetLedger(store, 0, testutil.MakeNoopLogger())

	assert.ErrorIs(t, l.Issue(ctx, userID, "raw-token"), boom)

	_, err := l.Verify(ctx, "raw-token")
	assert.ErrorIs(t, err, boom)

	assert.ErrorIs(t, l.Consume(ctx, ticketID), boom)

	_, err = l.Redeem(ctx, "raw-token", "new-hash")
	assert.ErrorIs(t, err, boom)

	// Store failures are not reported as a bad token.
	var apiErr *apierrors.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestResetLedger_NotFoundIsInvalidToken(t *testing.T) {
	ctx := context.Background()
	digest := hashToken("stale")

	store := servermocks.NewResetTicketStore(t)
	store.On("GetLiveByHash", mock.Anything, digest, mock.Anything).Return(model.ResetTicket{}, model.ErrNotFound).Once()
	store.On("Redeem", mock.Anything, digest, mock.Anything, "new-hash").Return(uuid.Nil, model.ErrNotFound).Once()

	l := NewResetLedger(store, 0, testutil.MakeNoopLogger())

	_, err := l.Verify(ctx, "stale")
	assertInvalidResetToken(t, err)

	_, err = l.Redeem(ctx, "stale", "new-hash")
	assertInvalidResetToken(t, err)
}
