package user

import (
	"regexp"
	"strings"

	"space-booking/internal/pkg/errs"
)

var (
	ErrInvalidEmail  = errs.Wrap(errs.ErrValidation, "invalid email format")
	ErrEmptyUserName = errs.Wrap(errs.ErrValidation, "user name cannot be empty")
	ErrUserNotFound  = errs.Wrap(errs.ErrNotFound, "user not found")
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

type Email struct {
	value string
}

func NewEmail(s string) (Email, error) {
	s = strings.TrimSpace(s)
	if !emailRegex.MatchString(s) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: s}, nil
}

func (e Email) Value() string {
	return e.value
}

// ReconstructEmail rebuilds an Email that was validated before it was stored.
func ReconstructEmail(s string) Email {
	return Email{value: s}
}
