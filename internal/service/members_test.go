package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/napowa/napowa-server/internal/apierrors"
	servermocks "github.com/napowa/napowa-server/internal/mocks"
	"github.com/napowa/napowa-server/internal/model"
	"github.com/napowa/napowa-server/internal/testutil"
)

type membersDeps struct {
	users    *servermocks.UserStore
	profiles *servermocks.ProfileStore
	roles    *servermocks.RoleStore
	storage  *servermocks.Storage
}

func newTestMembers(t *testing.T) (*Members, membersDeps) {
	deps := membersDeps{
		users:    servermocks.NewUserStore(t),
		profiles: servermocks.NewProfileStore(t),
		roles:    servermocks.NewRoleStore(t),
		storage:  servermocks.NewStorage(t),
	}
	m := NewMembers(deps.users, deps.profiles, deps.roles, deps.storage, testutil.MakeNoopLogger())
	return m, deps
}

func TestMembers_Get(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()
	perms := model.Permissions{model.ResourceProfile: {model.ActionRead}}

	deps.users.On("GetByID", mock.Anything, userID).Return(model.User{ID: userID, RoleID: 1}, nil).Once()
	deps.profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{UserID: userID, FirstName: "Jane"}, nil).Once()
	deps.roles.On("GetByID", mock.Anything, int64(1)).Return(model.Role{ID: 1, Name: "member", Permissions: perms}, nil).Once()

	got, err := m.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, "member", got.Role)
	assert.Equal(t, perms, got.Permissions)
	assert.Equal(t, "Jane", got.Profile.FirstName)
}

func TestMembers_Get_UnknownUser(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()
	deps.users.On("GetByID", mock.Anything, userID).Return(model.User{}, model.ErrNotFound).Once()

	_, err := m.Get(context.Background(), userID)
	requireKind(t, err, apierrors.KindNotFound)
}

func TestMembers_UpdateProfile(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()
	current := model.Profile{UserID: userID, FirstName: "Jane", LastName: "Doe", Phone: "0712345678", Rank: "Constable"}
	rank := "Sergeant"

	deps.profiles.On("GetByUserID", mock.Anything, userID).Return(current, nil).Once()
	deps.profiles.On("Update", mock.Anything, mock.MatchedBy(func(p model.Profile) bool {
		return p.Rank == "Sergeant" && p.FirstName == "Jane" && p.Phone == "0712345678"
	})).Return(func(_ context.Context, p model.Profile) (model.Profile, error) { return p, nil }).Once()

	got, err := m.UpdateProfile(context.Background(), userID, model.ProfileUpdate{Rank: &rank})
	require.NoError(t, err)
	assert.Equal(t, "Sergeant", got.Rank)
}

func TestMembers_UpdateProfile_BlankRequiredField(t *testing.T) {
	m, _ := newTestMembers(t)
	blank := " "

	_, err := m.UpdateProfile(context.Background(), uuid.New(), model.ProfileUpdate{FirstName: &blank})
	apiErr := requireKind(t, err, apierrors.KindValidation)
	assert.Contains(t, apiErr.Fields, "firstName")
}

func TestMembers_SetTwoFactor(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()
	deps.users.On("SetTwoFactor", mock.Anything, userID, false).Return(nil).Once()

	require.NoError(t, m.SetTwoFactor(context.Background(), userID, false))
}

func TestMembers_UploadAvatar(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()
	prefix := "avatars/" + userID.String() + "/"

	deps.profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{UserID: userID, AvatarKey: "avatars/old.png"}, nil).Once()
	deps.storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, prefix) && strings.HasSuffix(key, ".png")
	}), mock.Anything, int64(4), "image/png").Return(nil).Once()
	deps.profiles.On("SetAvatarKey", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil).Once()
	deps.storage.On("Delete", mock.Anything, "avatars/old.png").Return(errors.New("gone")).Once()

	key, err := m.UploadAvatar(context.Background(), userID, strings.NewReader("\x89PNG"), 4, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, prefix))
}

func TestMembers_UploadAvatar_Rejected(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		m, _ := newTestMembers(t)
		_, err := m.UploadAvatar(context.Background(), uuid.New(), strings.NewReader("GIF89a"), 6, "image/gif")
		requireKind(t, err, apierrors.KindValidation)
	})

	t.Run("storage not configured", func(t *testing.T) {
		m := NewMembers(servermocks.NewUserStore(t), servermocks.NewProfileStore(t), servermocks.NewRoleStore(t), nil, testutil.MakeNoopLogger())
		_, err := m.UploadAvatar(context.Background(), uuid.New(), strings.NewReader("x"), 1, "image/png")
		requireKind(t, err, apierrors.KindConfig)
	})
}

func TestMembers_UploadAvatar_RollsBackObject(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()

	deps.profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{UserID: userID}, nil).Once()
	deps.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, int64(1), "image/jpeg").Return(nil).Once()
	deps.profiles.On("SetAvatarKey", mock.Anything, userID, mock.Anything).Return(errors.New("db down")).Once()
	deps.storage.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasSuffix(key, ".jpg")
	})).Return(nil).Once()

	_, err := m.UploadAvatar(context.Background(), userID, strings.NewReader("x"), 1, "image/jpeg")
	require.Error(t, err)
}

func TestMembers_Avatar(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()
	key := "avatars/" + userID.String() + "/a.webp"

	deps.profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{AvatarKey: key}, nil).Once()
	deps.storage.On("Download", mock.Anything, key).Return(io.NopCloser(strings.NewReader("img")), nil).Once()

	rc, contentType, err := m.Avatar(context.Background(), userID)
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "img", string(data))
	assert.Equal(t, "image/webp", contentType)
}

func TestMembers_Avatar_NoneSet(t *testing.T) {
	m, deps := newTestMembers(t)
	userID := uuid.New()
	deps.profiles.On("GetByUserID", mock.Anything, userID).Return(model.Profile{}, nil).Once()

	_, _, err := m.Avatar(context.Background(), userID)
	requireKind(t, err, apierrors.KindNotFound)
}
