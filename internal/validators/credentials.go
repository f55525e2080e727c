package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/cyber-aware/models"
)

// Field names accepted by the credentials validator.
const (
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldPasswordPolicy = "password_policy"
)

// MinPasswordLength is the shortest password the signup form accepts.
const MinPasswordLength = 8

// passwordSpecials are the characters that satisfy the special-character rule.
const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

type CredentialsValidator struct{}

// NewCredentialsValidator validates [models.Credentials]. Without explicit
// fields it checks email and non-empty password; signup additionally asks
// for [FieldPasswordPolicy].
func NewCredentialsValidator() Validator {
	return &CredentialsValidator{}
}

func (v *CredentialsValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(ctx, value, fields...)
	case *models.Credentials:
		return v.validateCredentials(ctx, *value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *CredentialsValidator) validateCredentials(_ context.Context, c models.Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			email := strings.TrimSpace(c.Email)
			if email == "" {
				return ErrEmptyEmail
			}
			if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if c.Password == "" {
				return ErrEmptyPassword
			}
		case FieldPasswordPolicy:
			if !PasswordMeetsPolicy(c.Password) {
				return ErrWeakPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// PasswordStrength lists which password rules are satisfied. The signup
// screen renders it as a checklist while the visitor types.
type PasswordStrength struct {
	Length  bool
	Upper   bool
	Lower   bool
	Digit   bool
	Special bool
}

// Met reports whether every rule is satisfied.
func (s PasswordStrength) Met() bool {
	return s.Length && s.Upper && s.Lower && s.Digit && s.Special
}

// CheckPassword evaluates password against the signup policy: at least
// [MinPasswordLength] characters, an ASCII uppercase letter, an ASCII
// lowercase letter, a digit and one of !@#$%^&*(),.?":{}|<>.
func CheckPassword(password string) PasswordStrength {
	s := PasswordStrength{Length: utf8.RuneCountInString(password) >= MinPasswordLength}

	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			s.Upper = true
		case r >= 'a' && r <= 'z':
			s.Lower = true
		case r >= '0' && r <= '9':
			s.Digit = true
		case strings.ContainsRune(passwordSpecials, r):
			s.Special = true
		}
	}

	return s
}

// PasswordMeetsPolicy reports whether password satisfies every rule of
// [CheckPassword].
func PasswordMeetsPolicy(password string) bool {
	return CheckPassword(password).Met()
}
