package handler

import (
	"time"

	"github.com/google/uuid"

	"github.com/napowa/napowa-server/internal/model"
)

type signupRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Phone           string `json:"phone"`
	IDNumber        string `json:"idNumber"`
	County          string `json:"county"`
	MemberType      string `json:"memberType"`
	Rank            string `json:"rank"`
	Station         string `json:"station"`
	ServiceNumber   string `json:"serviceNumber"`
	AgreeTerms      bool   `json:"agreeTerms"`
}

func (s signupRequest) params() model.SignupParams {
	return model.SignupParams{
		Email:           s.Email,
		Password:        s.Password,
		ConfirmPassword: s.ConfirmPassword,
		FirstName:       s.FirstName,
		LastName:        s.LastName,
		Phone:           s.Phone,
		IDNumber:        s.IDNumber,
		County:          s.County,
		MemberType:      s.MemberType,
		Rank:            s.Rank,
		Station:         s.Station,
		ServiceNumber:   s.ServiceNumber,
		AgreeTerms:      s.AgreeTerms,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type otpRequest struct {
	UserID string `json:"userId"`
	OTP    string `json:"otp"`
}

type userIDRequest struct {
	UserID string `json:"userId"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type tokenRequest struct {
	Token string `json:"token"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type twoFactorRequest struct {
	Enabled *bool `json:"enabled"`
}

type profileUpdateRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	County        *string `json:"county"`
	Rank          *string `json:"rank"`
	Station       *string `json:"station"`
	ServiceNumber *string `json:"serviceNumber"`
}

func (p profileUpdateRequest) update() model.ProfileUpdate {
	return model.ProfileUpdate{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		County:        p.County,
		Rank:          p.Rank,
		Station:       p.Station,
		ServiceNumber: p.ServiceNumber,
	}
}

type assignRoleRequest struct {
	Role string `json:"role"`
}

type pushSubscribeRequest struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type pushUnsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type otpRequiredResponse struct {
	UserID      uuid.UUID `json:"userId"`
	OTPRequired bool      `json:"otpRequired"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type profileResponse struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	IDNumber      string `json:"idNumber"`
	County        string `json:"county"`
	MemberType    string `json:"memberType"`
	Rank          string `json:"rank,omitempty"`
	Station       string `json:"station,omitempty"`
	ServiceNumber string `json:"serviceNumber,omitempty"`
	AvatarKey     string `json:"avatarKey,omitempty"`
}

func newProfileResponse(p model.Profile) profileResponse {
	return profileResponse{
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		Phone:         p.Phone,
		IDNumber:      p.IDNumber,
		County:        p.County,
		MemberType:    p.MemberType,
		Rank:          p.Rank,
		Station:       p.Station,
		ServiceNumber: p.ServiceNumber,
		AvatarKey:     p.AvatarKey,
	}
}

type signupResponse struct {
	ID      uuid.UUID       `json:"id"`
	Email   string          `json:"email"`
	Profile profileResponse `json:"profile"`
}

type memberResponse struct {
	ID               uuid.UUID         `json:"id"`
	Email            string            `json:"email"`
	IsVerified       bool              `json:"isVerified"`
	TwoFactorEnabled bool              `json:"twoFactorEnabled"`
	Role             string            `json:"role"`
	Permissions      model.Permissions `json:"permissions"`
	Profile          profileResponse   `json:"profile"`
	CreatedAt        time.Time         `json:"createdAt"`
}

func newMemberResponse(m model.Member) memberResponse {
	permissions := m.Permissions
	if permissions == nil {
		permissions = model.Permissions{}
	}
	return memberResponse{
		ID:               m.User.ID,
		Email:            m.User.Email,
		IsVerified:       m.User.IsVerified,
		TwoFactorEnabled: m.User.TwoFactorEnabled,
		Role:             m.Role,
		Permissions:      permissions,
		Profile:          newProfileResponse(m.Profile),
		CreatedAt:        m.User.CreatedAt,
	}
}

type avatarResponse struct {
	AvatarKey string `json:"avatarKey"`
}

type roleResponse struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Permissions model.Permissions `json:"permissions"`
}

func newRoleResponse(r model.Role) roleResponse {
	permissions := r.Permissions
	if permissions == nil {
		permissions = model.Permissions{}
	}
	return roleResponse{ID: r.ID, Name: r.Name, Permissions: permissions}
}

type pushSubscriptionResponse struct {
	ID        uuid.UUID `json:"id"`
	Endpoint  string    `json:"endpoint"`
	CreatedAt time.Time `json:"createdAt"`
}

func newPushSubscriptionResponse(s model.PushSubscription) pushSubscriptionResponse {
	return pushSubscriptionResponse{ID: s.ID, Endpoint: s.Endpoint, CreatedAt: s.CreatedAt}
}
