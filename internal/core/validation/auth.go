package validation

import (
	"unicode/utf8"

	"printshop/internal/core/domain"
)

const minPasswordLength = 6

type AuthForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// ValidateAuthForm checks email, password and, when registering, name,
// password confirmation and password length. The order decides which message
// surfaces first.
func ValidateAuthForm(mode domain.AuthMode, form AuthForm) error {
	if blank(form.Email) {
		return fail("email", MsgEmail)
	}
	if blank(form.Password) {
		return fail("password", MsgPassword)
	}
	if mode != domain.AuthModeRegister {
		return nil
	}

	if blank(form.Name) {
		return fail("name", MsgName)
	}
	if form.Password != form.ConfirmPassword {
		return fail("confirm_password", MsgPasswordMismatch)
	}
	if utf8.RuneCountInString(form.Password) < minPasswordLength {
		return fail("password", MsgPasswordLength)
	}
	return nil
}
