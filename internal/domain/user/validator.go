package user

import (
	"fmt"
	"unicode"

	"shopkeeper/internal/domain/validation"
)

const (
	loginRules = "required,min=3,max=32,login"
	// bcrypt учитывает только первые 72 байта пароля
	passwordRules = "required,min=8,max=72"

	defaultMinClasses = 3
)

// Validator проверяет учетные данные перед регистрацией и входом
type Validator interface {
	ValidateRegister(login, password string) error
	ValidateLogin(login string) error
	ValidatePassword(password string) error
}

// CredentialsValidator - правила для учетной записи магазина. На кассе пароль вводят часто,
// поэтому вместо обязательного набора символов требуется minClasses классов из четырех:
// строчные, заглавные, цифры, знаки
type CredentialsValidator struct {
	minClasses int
}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{minClasses: defaultMinClasses}
}

func (v *CredentialsValidator) ValidateRegister(login, password string) error {
	if err := v.ValidateLogin(login); err != nil {
		return err
	}
	return v.ValidatePassword(password)
}

func (v *CredentialsValidator) ValidateLogin(login string) error {
	return validation.Var("login", login, loginRules)
}

func (v *CredentialsValidator) ValidatePassword(password string) error {
	if err := validation.Var("password", password, passwordRules); err != nil {
		return err
	}

	if n := charClasses(password); n < v.minClasses {
		return fmt.Errorf("password: uses %d character classes, need %d of lower, upper, digit, symbol", n, v.minClasses)
	}
	return nil
}

func charClasses(s string) int {
	var lower, upper, digit, symbol int
	for _, r := range s {
		switch {
		case unicode.IsLower(r):
			lower = 1
		case unicode.IsUpper(r):
			upper = 1
		case unicode.IsDigit(r):
			digit = 1
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = 1
		}
	}
	return lower + upper + digit + symbol
}
