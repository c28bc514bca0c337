package service

import (
	"net/mail"
	"strings"

	"github.com/napowa/napowa-server/internal/apierrors"
	"github.com/napowa/napowa-server/internal/model"
)

const (
	minPasswordLength = 8
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

type fieldErrors map[string]string

func (f fieldErrors) require(field, value string) {
	if strings.TrimSpace(value) == "" {
		f[field] = "is required"
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apierrors.NewErrValidation(f)
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func checkPassword(f fieldErrors, field, password string) {
	switch {
	case len(password) < minPasswordLength:
		f[field] = "must be at least 8 characters"
	case len(password) > maxPasswordBytes:
		f[field] = "must be at most 72 bytes"
	}
}

func validateSignup(p model.SignupParams) error {
	f := fieldErrors{}

	if !validEmail(strings.TrimSpace(p.Email)) {
		f["email"] = "must be a valid email address"
	}
	checkPassword(f, "password", p.Password)
	if p.ConfirmPassword != p.Password {
		f["confirmPassword"] = "passwords do not match"
	}
	f.require("firstName", p.FirstName)
	f.require("lastName", p.LastName)
	f.require("phone", p.Phone)
	f.require("idNumber", p.IDNumber)
	f.require("county", p.County)
	f.require("memberType", p.MemberType)
	if !p.AgreeTerms {
		f["agreeTerms"] = "must be accepted"
	}

	return f.err()
}

func validateNewPassword(field, password string) error {
	f := fieldErrors{}
	checkPassword(f, field, password)
	return f.err()
}
