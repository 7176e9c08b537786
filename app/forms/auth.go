package forms

import "strings"

type LoginForm struct {
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
}

func (f *LoginForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return result(check(f))
}

// SignupForm creates landlord accounts only; other roles are provisioned by
// admins.
type SignupForm struct {
	Email           string `form:"email" json:"email" validate:"required,email,max=200"`
	Username        string `form:"username" json:"username" validate:"required,min=3,max=150"`
	FullName        string `form:"full_name" json:"full_name" validate:"max=200"`
	Password        string `form:"password" json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm" validate:"required,eqfield=Password"`
}

func (f *SignupForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Username = strings.TrimSpace(f.Username)
	f.FullName = strings.TrimSpace(f.FullName)
	return result(check(f))
}

type ForgotPasswordForm struct {
	Email string `form:"email" json:"email" validate:"required,email"`
}

func (f *ForgotPasswordForm) Validate() error {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	return result(check(f))
}

type ResetPasswordForm struct {
	Password        string `form:"password" json:"password" validate:"required,min=8,max=72"`
	PasswordConfirm string `form:"password_confirm" json:"password_confirm" validate:"required,eqfield=Password"`
}

func (f *ResetPasswordForm) Validate() error {
	return result(check(f))
}
