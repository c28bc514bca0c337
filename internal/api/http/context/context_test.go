package context

import (
	stdctx "context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/napowa/napowa-server/internal/model"
)

func TestManager_SetAndGetIdentity(t *testing.T) {
	m := NewManager()
	identity := model.Identity{UserID: uuid.New(), Email: "jane@example.com"}
	ctx := m.SetIdentityToContext(stdctx.Background(), identity)

	got, ok := m.GetIdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, identity, got)
}

func TestManager_GetIdentity_NotFound(t *testing.T) {
	m := NewManager()
	_, ok := m.GetIdentityFromContext(stdctx.Background())
	assert.False(t, ok)
}

func TestManager_GetIdentity_ForeignValue(t *testing.T) {
	m := NewManager()
	ctx := stdctx.WithValue(stdctx.Background(), "identity", "jane")
	_, ok := m.GetIdentityFromContext(ctx)
	assert.False(t, ok)
}

func TestManager_SetIdentity_Overrides(t *testing.T) {
	m := NewManager()
	first := model.Identity{UserID: uuid.New()}
	second := model.Identity{UserID: uuid.New()}

	ctx := m.SetIdentityToContext(m.SetIdentityToContext(stdctx.Background(), first), second)
	got, ok := m.GetIdentityFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, second, got)
}
