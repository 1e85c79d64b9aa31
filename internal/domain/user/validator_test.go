package user

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsValidator_ValidateLogin(t *testing.T) {
	v := NewCredentialsValidator()

	tests := []struct {
		name    string
		login   string
		wantErr string
	}{
		{name: "plain", login: "shopowner"},
		{name: "punctuation allowed", login: "kiosk_2.main-st"},
		{name: "cyrillic", login: "лавка"},
		{name: "too short", login: "ab", wantErr: "login: min"},
		{name: "too long", login: strings.Repeat("a", 33), wantErr: "login: max"},
		{name: "space", login: "corner shop", wantErr: "login: login"},
		{name: "empty", login: "", wantErr: "login: required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLogin(tt.login)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCredentialsValidator_ValidatePassword(t *testing.T) {
	v := NewCredentialsValidator()

	tests := []struct {
		name    string
		pass    string
		wantErr string
	}{
		{name: "all four classes", pass: "Counter#42"},
		{name: "three classes without symbol", pass: "Counter42"},
		{name: "three classes without upper", pass: "counter#42"},
		{name: "two classes", pass: "counter42", wantErr: "uses 2 character classes"},
		{name: "one class", pass: "countercounter", wantErr: "uses 1 character classes"},
		{name: "too short", pass: "Ab#4", wantErr: "password: min"},
		{name: "longer than bcrypt accepts", pass: "Aa1" + strings.Repeat("x", 70), wantErr: "password: max"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePassword(tt.pass)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCredentialsValidator_ValidateRegister(t *testing.T) {
	v := NewCredentialsValidator()

	assert.NoError(t, v.ValidateRegister("shopowner", "Counter#42"))
	assert.ErrorContains(t, v.ValidateRegister("a b", "Counter#42"), "login")
	assert.ErrorContains(t, v.ValidateRegister("shopowner", "weak"), "password")
}

func TestCharClasses(t *testing.T) {
	assert.Equal(t, 0, charClasses(""))
	assert.Equal(t, 4, charClasses("aA1!"))
	assert.Equal(t, 2, charClasses("ЛАВКА2024"))
}
