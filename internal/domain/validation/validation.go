package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"shopkeeper/internal/domain/pos"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		if err := validate.RegisterValidation("login", isLogin); err != nil {
			panic(err)
		}
	})
	return validate
}

// Struct проверяет теги validate и возвращает ошибку вида "Name: required; Quantity: gte"
func Struct(v any) error {
	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	fields := Fields(err)
	if len(fields) == 0 {
		return err
	}

	parts := make([]string, 0, len(fields))
	for f, tag := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, tag))
	}
	sort.Strings(parts)

	return errors.New(strings.Join(parts, "; "))
}

// Var проверяет одно значение по правилам tag. name попадает в текст ошибки: "password: min"
func Var(name string, v any, tag string) error {
	err := instance().Var(v, tag)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		return fmt.Errorf("%s: %s", name, ve[0].Tag())
	}
	return err
}

// isLogin: буквы, цифры и "_-."
func isLogin(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !strings.ContainsRune("_-.", r) {
			return false
		}
	}
	return true
}

// Fields раскладывает ошибки валидатора по полям
func Fields(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}

	out := make(map[string]string, len(ve))
	for _, fe := range ve {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}

// Money разбирает денежную сумму из строки. Больше двух знаков после запятой
// отклоняется: иначе база молча округлит значение
func Money(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if !pos.IsMoney(d) {
		return decimal.Zero, fmt.Errorf("%q has more than %d decimal places", s, pos.MoneyPlaces)
	}
	return d, nil
}
