package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User, profile Profile) (User, Profile, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	SetRole(ctx context.Context, id uuid.UUID, roleID int64) error
	SetTwoFactor(ctx context.Context, id uuid.UUID, enabled bool) error
}

// ProfileStore defines persistence operations for member profiles.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByIDNumber(ctx context.Context, idNumber string) (bool, error)
	Update(ctx context.Context, profile Profile) (Profile, error)
	SetAvatarKey(ctx context.Context, userID uuid.UUID, key string) error
}

// User represents a stored account with authentication material.
type User struct {
	ID               uuid.UUID
	Email            string
	PasswordHash     *string
	RoleID           int64
	IsVerified       bool
	TwoFactorEnabled bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// HasPassword reports whether the account can sign in with a password.
// Externally authenticated accounts carry no hash.
func (u User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}

// Profile holds member details captured at signup.
type Profile struct {
	UserID        uuid.UUID
	FirstName     string
	LastName      string
	Phone         string
	IDNumber      string
	County        string
	MemberType    string
	Rank          string
	Station       string
	ServiceNumber string
	AvatarKey     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProfileUpdate carries optional profile changes. Nil fields stay untouched.
type ProfileUpdate struct {
	FirstName     *string
	LastName      *string
	County        *string
	Rank          *string
	Station       *string
	ServiceNumber *string
}

// Apply copies set fields onto p.
func (u ProfileUpdate) Apply(p Profile) Profile {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FirstName, u.FirstName)
	set(&p.LastName, u.LastName)
	set(&p.County, u.County)
	set(&p.Rank, u.Rank)
	set(&p.Station, u.Station)
	set(&p.ServiceNumber, u.ServiceNumber)
	return p
}

// SignupParams contains the fields submitted on registration.
type SignupParams struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	Phone           string
	IDNumber        string
	County          string
	MemberType      string
	Rank            string
	Station         string
	ServiceNumber   string
	AgreeTerms      bool
}

// Member is the signed-in user's view of their account.
type Member struct {
	User        User
	Profile     Profile
	Role        string
	Permissions Permissions
}
