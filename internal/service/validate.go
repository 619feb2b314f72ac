package service

import (
	"net/mail"
	"strings"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 32
	passwordMinLen = 8
)

func validateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return validationErrorf("username must be between %d and %d characters", usernameMinLen, usernameMaxLen)
	}
	return nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || !strings.Contains(email, "@") {
		return validationErrorf("invalid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < passwordMinLen {
		return validationErrorf("password must be at least %d characters", passwordMinLen)
	}
	return nil
}
