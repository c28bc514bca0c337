package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/napowa/napowa-server/internal/apierrors"
	servermocks "github.com/napowa/napowa-server/internal/mocks"
	"github.com/napowa/napowa-server/internal/model"
	"github.com/napowa/napowa-server/internal/testutil"
)

var (
	mailedCode  = regexp.MustCompile(`<strong>([0-9]{6})</strong>`)
	mailedToken = regexp.MustCompile(`token=([A-Za-z0-9_-]+)`)
)

type authDeps struct {
	credentialsDeps
	otps      *memOTPStore
	resets    *memResetStore
	tokens    *servermocks.TokenManager
	publisher *servermocks.EventPublisher
	mailer    *recordingMailer
}

func newTestAuth(t *testing.T) (*Auth, authDeps) {
	c, cd := newTestCredentials(t)
	deps := authDeps{
		credentialsDeps: cd,
		otps:            &memOTPStore{},
		resets:          newMemResetStore(),
		tokens:          servermocks.NewTokenManager(t),
		publisher:       servermocks.NewEventPublisher(t),
		mailer:          &recordingMailer{},
	}
	log := testutil.MakeNoopLogger()
	a := NewAuth(
		c,
		NewOTPLedger(deps.otps, nil, 0, 0, log),
		NewResetLedger(deps.resets, 0, log),
		NewTokenService(deps.tokens, log),
		deps.mailer,
		deps.publisher,
		"https://napowa.example/reset-password",
		log,
	)
	return a, deps
}

func hashed(t *testing.T, password string) *string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := string(h)
	return &s
}

func validSignup() model.SignupParams {
	return model.SignupParams{
		Email:           "jane@example.com",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
		FirstName:       "Jane",
		LastName:        "Doe",
		Phone:           "0712345678",
		IDNumber:        "12345678",
		County:          "Nairobi",
		MemberType:      "serving",
		AgreeTerms:      true,
	}
}

func requireKind(t *testing.T, err error, kind apierrors.Kind) *apierrors.APIError {
	t.Helper()
	var apiErr *apierrors.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, kind, apiErr.Kind, apiErr.Message)
	return apiErr
}

func lastCode(t *testing.T, m *recordingMailer) string {
	t.Helper()
	match := mailedCode.FindStringSubmatch(m.last().body)
	require.Len(t, match, 2, "no code in mail body")
	return match[1]
}

func expectSignupStores(d authDeps) {
	d.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(model.User{}, model.ErrNotFound).Once()
	d.profiles.On("ExistsByPhone", mock.Anything, "0712345678").Return(false, nil).Once()
	d.profiles.On("ExistsByIDNumber", mock.Anything, "12345678").Return(false, nil).Once()
	d.roles.On("GetByName", mock.Anything, "member").Return(model.Role{ID: 1, Name: "member"}, nil).Once()
	d.users.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(
		func(_ context.Context, u model.User, p model.Profile) (model.User, model.Profile, error) {
			p.UserID = u.ID
			return u, p, nil
		}).Once()
}

func TestAuth_SignUp_Success(t *testing.T) {
	a, deps := newTestAuth(t)
	expectSignupStores(deps)
	deps.publisher.On("Publish", mock.Anything, model.SubjectUserRegistered, mock.Anything).Return(nil).Once()

	user, profile, err := a.SignUp(context.Background(), validSignup())
	require.NoError(t, err)

	assert.Equal(t, "jane@example.com", user.Email)
	assert.False(t, user.IsVerified)
	assert.True(t, user.TwoFactorEnabled)
	assert.True(t, bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte("s3cret-pass")) == nil)
	assert.Equal(t, user.ID, profile.UserID)

	assert.Equal(t, 1, deps.mailer.count())
	assert.Equal(t, "jane@example.com", deps.mailer.last().to)
	assert.Equal(t, 1, deps.otps.count(user.ID, model.OTPPurposeEmailVerification))
}

func TestAuth_SignUp_MailFailureKeepsAccount(t *testing.T) {
	a, deps := newTestAuth(t)
	expectSignupStores(deps)
	deps.publisher.On("Publish", mock.Anything, model.SubjectUserRegistered, mock.Anything).Return(errors.New("nats down")).Once()
	deps.mailer.err = errors.New("smtp down")

	user, _, err := a.SignUp(context.Background(), validSignup())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestAuth_SignUp_Validation(t *testing.T) {
	a, _ := newTestAuth(t)

	params := validSignup()
	params.Email = "not-an-email"
	params.Password = "short"
	params.ConfirmPassword = "different"
	params.County = "  "
	params.AgreeTerms = false

	_, _, err := a.SignUp(context.Background(), params)

	apiErr := requireKind(t, err, apierrors.KindValidation)
	for _, field := range []string{"email", "password", "confirmPassword", "county", "agreeTerms"} {
		assert.Contains(t, apiErr.Fields, field)
	}
	assert.NotContains(t, apiErr.Fields, "firstName")
}

func TestAuth_Login_InvalidCredentialsAreIndistinguishable(t *testing.T) {
	a, deps := newTestAuth(t)
	known := model.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hashed(t, "s3cret-pass"), IsVerified: true}

	deps.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, model.ErrNotFound).Once()
	deps.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(known, nil).Once()

	_, errUnknown := a.Login(context.Background(), "ghost@example.com", "whatever1")
	_, errWrong := a.Login(context.Background(), "jane@example.com", "wrong-pass")

	unknown := requireKind(t, errUnknown, apierrors.KindUnauthorized)
	wrong := requireKind(t, errWrong, apierrors.KindUnauthorized)
	assert.Equal(t, unknown.Message, wrong.Message)
}

func TestAuth_Login_Unverified(t *testing.T) {
	a, deps := newTestAuth(t)
	user := model.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hashed(t, "s3cret-pass")}
	deps.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil).Once()

	_, err := a.Login(context.Background(), "jane@example.com", "s3cret-pass")

	apiErr := requireKind(t, err, apierrors.KindUnauthorized)
	assert.Equal(t, apierrors.NewErrEmailNotVerified().Message, apiErr.Message)
	assert.Equal(t, 0, deps.mailer.count())
}

func TestAuth_Login_WithoutTwoFactor(t *testing.T) {
	a, deps := newTestAuth(t)
	user := model.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hashed(t, "s3cret-pass"), IsVerified: true}
	deps.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil).Once()
	deps.tokens.On("GenerateAccessToken", user.ID, user.Email).Return("session-token", nil).Once()

	res, err := a.Login(context.Background(), "Jane@Example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.False(t, res.OTPRequired)
	assert.Equal(t, "session-token", res.Token)
}

func TestAuth_Login_TwoFactorFlow(t *testing.T) {
	ctx := context.Background()
	a, deps := newTestAuth(t)
	user := model.User{
		ID: uuid.New(), Email: "jane@example.com", PasswordHash: hashed(t, "s3cret-pass"),
		IsVerified: true, TwoFactorEnabled: true,
	}
	deps.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil).Once()
	deps.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	deps.tokens.On("GenerateAccessToken", user.ID, user.Email).Return("session-token", nil).Once()

	res, err := a.Login(ctx, "jane@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.True(t, res.OTPRequired)
	assert.Empty(t, res.Token)
	assert.Equal(t, user.ID, res.UserID)

	code := lastCode(t, deps.mailer)
	wrong := code[:5] + string('0'+(code[5]-'0'+1)%10)

	_, err = a.VerifyTwoFactor(ctx, user.ID, wrong)
	requireKind(t, err, apierrors.KindInvalidOrExpired)

	token, err := a.VerifyTwoFactor(ctx, user.ID, code)
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)

	_, err = a.VerifyTwoFactor(ctx, user.ID, code)
	requireKind(t, err, apierrors.KindInvalidOrExpired)
}

func TestAuth_ResendTwoFactorInvalidatesPrevious(t *testing.T) {
	ctx := context.Background()
	a, deps := newTestAuth(t)
	user := model.User{ID: uuid.New(), Email: "jane@example.com", IsVerified: true, TwoFactorEnabled: true}
	deps.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	require.NoError(t, a.ResendTwoFactor(ctx, user.ID))
	first := lastCode(t, deps.mailer)

	second := first
	for second == first {
		require.NoError(t, a.ResendTwoFactor(ctx, user.ID))
		second = lastCode(t, deps.mailer)
	}

	assert.Equal(t, 1, deps.otps.count(user.ID, model.OTPPurposeTwoFactor))
	_, err := a.VerifyTwoFactor(ctx, user.ID, first)
	requireKind(t, err, apierrors.KindInvalidOrExpired)
}

func TestAuth_VerifyEmail(t *testing.T) {
	ctx := context.Background()
	a, deps := newTestAuth(t)
	user := model.User{ID: uuid.New(), Email: "jane@example.com"}

	deps.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil).Once()
	deps.users.On("GetByID", mock.Anything, user.ID).Return(user, nil)
	deps.users.On("MarkVerified", mock.Anything, user.ID).Return(nil).Once()
	deps.publisher.On("Publish", mock.Anything, model.SubjectUserVerified, mock.Anything).Return(nil).Once()
	deps.tokens.On("GenerateAccessToken", user.ID, user.Email).Return("session-token", nil).Once()

	require.NoError(t, a.ResendEmailVerification(ctx, "jane@example.com"))
	code := lastCode(t, deps.mailer)

	token, err := a.VerifyEmail(ctx, user.ID, code)
	require.NoError(t, err)
	assert.Equal(t, "session-token", token)
	assert.Equal(t, 0, deps.otps.count(user.ID, model.OTPPurposeEmailVerification))
}

func TestAuth_VerifyEmail_UnknownUser(t *testing.T) {
	a, deps := newTestAuth(t)
	id := uuid.New()
	deps.users.On("GetByID", mock.Anything, id).Return(model.User{}, model.ErrNotFound).Once()

	_, err := a.VerifyEmail(context.Background(), id, "123456")
	requireKind(t, err, apierrors.KindInvalidOrExpired)
}

func TestAuth_ResendEmailVerification_Silent(t *testing.T) {
	a, deps := newTestAuth(t)
	deps.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, model.ErrNotFound).Once()
	deps.users.On("GetByEmail", mock.Anything, "done@example.com").Return(model.User{ID: uuid.New(), IsVerified: true}, nil).Once()

	require.NoError(t, a.ResendEmailVerification(context.Background(), "ghost@example.com"))
	require.NoError(t, a.ResendEmailVerification(context.Background(), "done@example.com"))
	assert.Equal(t, 0, deps.mailer.count())
}

func TestAuth_MailerNotConfigured(t *testing.T) {
	a, _ := newTestAuth(t)
	a.mailer = nil

	err := a.ResendEmailVerification(context.Background(), "jane@example.com")
	requireKind(t, err, apierrors.KindConfig)

	err = a.RequestPasswordReset(context.Background(), "jane@example.com")
	requireKind(t, err, apierrors.KindConfig)
}

func TestAuth_PasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	a, deps := newTestAuth(t)
	user := model.User{ID: uuid.New(), Email: "jane@example.com"}

	deps.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil).Once()
	deps.publisher.On("Publish", mock.Anything, model.SubjectPasswordReset, mock.Anything).Return(nil).Once()

	require.NoError(t, a.RequestPasswordReset(ctx, "jane@example.com"))

	match := mailedToken.FindStringSubmatch(deps.mailer.last().body)
	require.Len(t, match, 2)
	raw := match[1]

	require.NoError(t, a.ValidateResetToken(ctx, raw))

	err := a.ResetPassword(ctx, raw, "short")
	requireKind(t, err, apierrors.KindValidation)

	require.NoError(t, a.ResetPassword(ctx, raw, "brand-new-pass"))
	stored := deps.resets.passwords[user.ID]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("brand-new-pass")))

	err = a.ResetPassword(ctx, raw, "another-pass")
	apiErr := requireKind(t, err, apierrors.KindInvalidOrExpired)
	assert.Contains(t, apiErr.Fields, "token")

	err = a.ValidateResetToken(ctx, raw)
	requireKind(t, err, apierrors.KindInvalidOrExpired)
}

func TestAuth_RequestPasswordReset_MailFailure(t *testing.T) {
	ctx := context.Background()
	log := testutil.MakeNoopLogger()
	c, cd := newTestCredentials(t)
	resets := newMemResetStore()
	mailer := servermocks.NewMailer(t)
	smtpDown := errors.New("smtp down")

	a := NewAuth(
		c,
		NewOTPLedger(&memOTPStore{}, nil, 0, 0, log),
		NewResetLedger(resets, 0, log),
		NewTokenService(servermocks.NewTokenManager(t), log),
		mailer,
		nil,
		"https://napowa.example/reset-password",
		log,
	)

	user := model.User{ID: uuid.New(), Email: "jane@example.com"}
	cd.users.On("GetByEmail", mock.Anything, "jane@example.com").Return(user, nil).Once()
	mailer.On("Send", mock.Anything, "jane@example.com", mock.Anything, mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "https://napowa.example/reset-password?token=")
	})).Return(smtpDown).Once()

	err := a.RequestPasswordReset(ctx, "jane@example.com")
	require.ErrorIs(t, err, smtpDown)

	var apiErr *apierrors.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Len(t, resets.tickets, 1)
}

func TestAuth_RequestPasswordReset_UnknownEmail(t *testing.T) {
	a, deps := newTestAuth(t)
	deps.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(model.User{}, model.ErrNotFound).Once()

	require.NoError(t, a.RequestPasswordReset(context.Background(), "ghost@example.com"))
	assert.Equal(t, 0, deps.mailer.count())
	assert.Empty(t, deps.resets.tickets)
}

func TestAuth_ChangePassword(t *testing.T) {
	ctx := context.Background()
	user := model.User{ID: uuid.New(), Email: "jane@example.com", PasswordHash: hashed(t, "old-password")}

	t.Run("wrong current password", func(t *testing.T) {
		a, deps := newTestAuth(t)
		deps.users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()

		err := a.ChangePassword(ctx, user.ID, "not-it", "new-password")
		apiErr := requireKind(t, err, apierrors.KindValidation)
		assert.Contains(t, apiErr.Fields, "currentPassword")
	})

	t.Run("too short", func(t *testing.T) {
		a, _ := newTestAuth(t)

		err := a.ChangePassword(ctx, user.ID, "old-password", "short")
		apiErr := requireKind(t, err, apierrors.KindValidation)
		assert.Contains(t, apiErr.Fields, "newPassword")
	})

	t.Run("success", func(t *testing.T) {
		a, deps := newTestAuth(t)
		deps.users.On("GetByID", mock.Anything, user.ID).Return(user, nil).Once()
		deps.users.On("UpdatePassword", mock.Anything, user.ID, mock.MatchedBy(func(h string) bool {
			return bcrypt.CompareHashAndPassword([]byte(h), []byte("new-password")) == nil
		})).Return(nil).Once()

		require.NoError(t, a.ChangePassword(ctx, user.ID, "old-password", "new-password"))
	})
}

func TestResetLink(t *testing.T) {
	link, err := resetLink("https://napowa.example/reset?lang=en", "abc_-1")
	require.NoError(t, err)
	assert.Equal(t, "https://napowa.example/reset?lang=en&token=abc_-1", link)
}
