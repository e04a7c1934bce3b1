package form

import "strings"

// Login is the sign-in form.
type Login struct {
	Username string `form:"username" validate:"required,min=3,max=20"`
	Password string `form:"password" validate:"required,min=8"`
}

// Normalize trims surrounding whitespace from both fields.
func (l *Login) Normalize() {
	l.Username = strings.TrimSpace(l.Username)
	l.Password = strings.TrimSpace(l.Password)
}

// Validate normalizes the form and returns FieldErrors if it is not acceptable.
func (l *Login) Validate() error {
	l.Normalize()
	return check(l)
}
