package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/rentcourt/ftpr/app/forms"
	"github.com/rentcourt/ftpr/app/models"
	"github.com/rentcourt/ftpr/app/repository"
	"github.com/rentcourt/ftpr/internal/pkg/env"
	"github.com/rentcourt/ftpr/internal/pkg/hcaptcha"
	"github.com/rentcourt/ftpr/internal/pkg/jobqueue"
	"github.com/rentcourt/ftpr/internal/pkg/mail"
	"github.com/rentcourt/ftpr/internal/pkg/session"
	"github.com/rentcourt/ftpr/internal/pkg/statistics"
	"github.com/rentcourt/ftpr/internal/pkg/usercontext"
)

const (
	loginFailedMessage = "There is a problem with the login process"
	forgotSentMessage  = "If an account exists for that email, a reset link is on its way."
	recoveryErrorPath  = "/auth/auth-code-error"
	resetPasswordPath  = "/auth/reset-password"
	forgotPasswordPath = "/auth/forgot-password"
	somethingWentWrong = "Something went wrong. Please try again."
)

func HandleAuthLogin(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return render(c, "auth/login", layoutFor(c, "login", "Sign in"), nil)
	}

	var form forms.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return flashError(c, "/login", loginFailedMessage)
	}
	if err := form.Validate(); err != nil {
		return flashError(c, "/login", validationMessage(err))
	}

	repos := GetServices().Repos
	// notice: the same message for unknown email and wrong password
	account, err := repos.Account.GetByEmail(form.Email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Errorf("[Auth] Login lookup failed: %v", err)
		}
		return flashError(c, "/login", loginFailedMessage)
	}
	if !account.CheckPassword(form.Password) {
		return flashError(c, "/login", loginFailedMessage)
	}

	profile, err := repos.Profile.EnsureForAccount(account)
	if err != nil {
		log.Errorf("[Auth] Failed to provision profile for %s: %v", account.ID, err)
		return flashError(c, "/login", somethingWentWrong)
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		log.Errorf("[Auth] Session unavailable: %v", err)
		return flashError(c, "/login", somethingWentWrong)
	}
	if err := sess.Regenerate(); err != nil {
		log.Errorf("[Auth] Failed to regenerate session: %v", err)
		return flashError(c, "/login", somethingWentWrong)
	}
	sess.Set(usercontext.AuthKey, true)
	sess.Set(usercontext.KeyUserID, profile.ID)
	sess.Set(usercontext.KeyUsername, profile.Username)
	sess.Set(usercontext.KeyRole, profile.Role)
	sess.Set(usercontext.KeySignedInAt, time.Now().UnixMicro())
	if err := sess.Save(); err != nil {
		log.Errorf("[Auth] Failed to save session: %v", err)
		return flashError(c, "/login", somethingWentWrong)
	}

	if err := repos.Account.RecordSignIn(account.ID, time.Now()); err != nil {
		log.Warnf("[Auth] Failed to record sign-in for %s: %v", account.ID, err)
	}
	log.Infof("[Auth] %s signed in as %s", profile.ID, profile.Role)

	return flashSuccess(c, usercontext.HomePathFor(profile.Role), "Welcome back, "+profile.DisplayName()+".")
}

func HandleAuthLogout(c *fiber.Ctx) error {
	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		return flashError(c, "/login", "You have been signed out.")
	}
	if err := sess.Destroy(); err != nil {
		log.Errorf("[Auth] Failed to destroy session: %v", err)
		return flashError(c, "/login", somethingWentWrong)
	}
	c.Locals(usercontext.KeyFromProtected, false)

	return flashSuccess(c, "/login", "You have been signed out.")
}

// HandleAuthSignup registers landlords. Contractors and admins are created
// from the admin console.
func HandleAuthSignup(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return render(c, "auth/signup", layoutFor(c, "signup", "Create account"), nil)
	}

	if hcaptcha.Enabled() {
		valid, err := hcaptcha.Verify(c.FormValue("h-captcha-response"))
		if err != nil || !valid {
			msg := "Captcha validation failed. Please try again."
			if err != nil {
				log.Warnf("[Auth] hCaptcha validation error: %v", err)
				if env.IsDev() {
					msg = "Captcha validation failed: " + err.Error()
				}
			}
			return flashError(c, "/signup", msg)
		}
	}

	var form forms.SignupForm
	if err := c.BodyParser(&form); err != nil {
		return flashError(c, "/signup", somethingWentWrong)
	}
	if err := form.Validate(); err != nil {
		return flashError(c, "/signup", validationMessage(err))
	}

	repos := GetServices().Repos
	if _, err := repos.Account.GetByEmail(form.Email); err == nil {
		return flashError(c, "/signup", "An account with this email already exists.")
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Errorf("[Auth] Signup lookup failed: %v", err)
		return flashError(c, "/signup", somethingWentWrong)
	}

	account, err := models.NewAccount(form.Email, form.Password, models.ROLE_LANDLORD, form.Username, form.FullName)
	if err != nil {
		return flashError(c, "/signup", somethingWentWrong)
	}
	profile, err := repos.Account.CreateWithProfile(account)
	if err != nil {
		log.Errorf("[Auth] Signup failed: %v", err)
		return flashError(c, "/signup", somethingWentWrong)
	}
	statistics.Invalidate()
	log.Infof("[Auth] Registered landlord %s", profile.ID)

	return flashSuccess(c, "/login", "Your account is ready. Please sign in.")
}

// HandleForgotPassword answers the same way whether or not the email is
// known.
func HandleForgotPassword(c *fiber.Ctx) error {
	if c.Method() != fiber.MethodPost {
		return render(c, "auth/forgot_password", layoutFor(c, "forgot-password", "Reset password"), nil)
	}

	var form forms.ForgotPasswordForm
	if err := c.BodyParser(&form); err != nil {
		return flashError(c, forgotPasswordPath, somethingWentWrong)
	}
	if err := form.Validate(); err != nil {
		return flashError(c, forgotPasswordPath, validationMessage(err))
	}

	s := GetServices()
	account, err := s.Repos.Account.GetByEmail(form.Email)
	switch {
	case err == nil:
		if err := sendRecoveryEmail(s, account); err != nil {
			log.Errorf("[Auth] Failed to queue recovery email for %s: %v", account.ID, err)
		}
	case !errors.Is(err, repository.ErrNotFound):
		log.Errorf("[Auth] Recovery lookup failed: %v", err)
	}

	return flashSuccess(c, forgotPasswordPath, forgotSentMessage)
}

func sendRecoveryEmail(s *Services, account *models.Account) error {
	link, err := s.Recovery.Link(s.AppURL, account)
	if err != nil {
		return err
	}
	msg, err := mail.RecoveryEmail(account.Email, link)
	if err != nil {
		return err
	}
	if s.Jobs == nil {
		return mail.SendMail(msg.To, msg.Subject, msg.Body)
	}
	return jobqueue.EnqueueEmail(s.Jobs, msg)
}

// HandleAuthConfirm checks the emailed recovery link and opens a recovery
// session for the reset form.
func HandleAuthConfirm(c *fiber.Ctx) error {
	s := GetServices()
	token := c.Query("token")
	if _, err := s.Recovery.Verify(token, s.Repos.Account.GetByID); err != nil {
		return c.Redirect(recoveryErrorPath, fiber.StatusSeeOther)
	}

	sess, err := session.GetSessionStore().Get(c)
	if err != nil {
		log.Errorf("[Auth] Session unavailable: %v", err)
		return c.Redirect(recoveryErrorPath, fiber.StatusSeeOther)
	}
	sess.Set(usercontext.KeyRecovery, token)
	if err := sess.Save(); err != nil {
		log.Errorf("[Auth] Failed to save recovery session: %v", err)
		return c.Redirect(recoveryErrorPath, fiber.StatusSeeOther)
	}
	return c.Redirect(resetPasswordPath, fiber.StatusSeeOther)
}

// recoveryAccount returns the account of a still-valid recovery session.
func recoveryAccount(c *fiber.Ctx) (*models.Account, bool) {
	store := session.GetSessionStore()
	if store == nil {
		return nil, false
	}
	sess, err := store.Get(c)
	if err != nil {
		return nil, false
	}
	token, _ := sess.Get(usercontext.KeyRecovery).(string)
	if token == "" {
		return nil, false
	}
	s := GetServices()
	account, err := s.Recovery.Verify(token, s.Repos.Account.GetByID)
	if err != nil {
		return nil, false
	}
	return account, true
}

// HandleResetPassword sets a new password for a recovery session, then
// signs everyone out of it.
func HandleResetPassword(c *fiber.Ctx) error {
	account, ok := recoveryAccount(c)
	if !ok {
		return c.Redirect(recoveryErrorPath, fiber.StatusSeeOther)
	}
	if c.Method() != fiber.MethodPost {
		return render(c, "auth/reset_password", layoutFor(c, "reset-password", "Choose a new password"), nil)
	}

	var form forms.ResetPasswordForm
	if err := c.BodyParser(&form); err != nil {
		return flashError(c, resetPasswordPath, somethingWentWrong)
	}
	if err := form.Validate(); err != nil {
		return flashError(c, resetPasswordPath, validationMessage(err))
	}

	hash, err := models.HashPassword(form.Password)
	if err != nil {
		return flashError(c, resetPasswordPath, somethingWentWrong)
	}
	if err := GetServices().Repos.Account.UpdatePassword(account.ID, hash, time.Now()); err != nil {
		log.Errorf("[Auth] Password reset failed for %s: %v", account.ID, err)
		return flashError(c, resetPasswordPath, somethingWentWrong)
	}
	log.Infof("[Auth] Password reset for %s", account.ID)
	_ = revokeSessions(account.ID)

	if sess, err := session.GetSessionStore().Get(c); err == nil {
		if err := sess.Destroy(); err != nil {
			log.Warnf("[Auth] Failed to destroy session after reset: %v", err)
		}
	}
	c.Locals(usercontext.KeyFromProtected, false)

	return flashSuccess(c, "/login", "Your password has been updated. Please sign in.")
}

func HandleAuthCodeError(c *fiber.Ctx) error {
	c.Status(fiber.StatusBadRequest)
	return render(c, "auth/auth_code_error", layoutFor(c, "auth-code-error", "Link expired"), nil)
}
