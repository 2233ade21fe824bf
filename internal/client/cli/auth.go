package cli

import (
	"context"

	"github.com/dmitrijs2005/onboard/internal/client/router"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Signup collects name, e-mail and password and asks for a verification
// code. On success the verify screen is shown.
func (a *App) Signup(ctx context.Context) error {
	if !a.expect(router.Signup, "signup") {
		return nil
	}

	name, err := a.prompt("Full name")
	if err != nil {
		return err
	}
	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptSecret("Password")
	if err != nil {
		return err
	}

	err = a.submit(func() error { return a.manager.Signup(ctx, name, email, password) })
	if err != nil {
		return a.report(err, "Signup failed. Please try again.")
	}
	return a.Navigate(ctx, string(router.VerifyEmail))
}

// Verify reads the e-mailed code and completes the signup. On success the
// interests screen is shown.
func (a *App) Verify(ctx context.Context) error {
	if !a.expect(router.VerifyEmail, "verify") {
		return nil
	}

	code, err := a.prompt("Verification code")
	if err != nil {
		return err
	}

	err = a.submit(func() error { return a.manager.Verify(ctx, code) })
	if err != nil {
		return a.report(err, "Invalid verification code")
	}
	return a.Navigate(ctx, string(router.Interests))
}

// Resend asks for a new code for the pending e-mail.
func (a *App) Resend(ctx context.Context) error {
	if !a.expect(router.VerifyEmail, "resend") {
		return nil
	}
	err := a.submit(func() error { return a.manager.ResendOTP(ctx) })
	if err != nil {
		return a.report(err, "Could not resend the code")
	}
	return nil
}

// Cancel drops the pending verification together with the signup drafts
// and returns to the signup screen.
func (a *App) Cancel(ctx context.Context) error {
	if !a.expect(router.VerifyEmail, "cancel") {
		return nil
	}
	a.manager.AbandonVerification()
	return a.Navigate(ctx, string(router.Signup))
}

// Login prompts for credentials. On success the interests screen is shown.
func (a *App) Login(ctx context.Context) error {
	if !a.expect(router.Login, "login") {
		return nil
	}

	email, err := a.prompt("Email")
	if err != nil {
		return err
	}
	password, err := a.promptSecret("Password")
	if err != nil {
		return err
	}

	err = a.submit(func() error { return a.manager.Login(ctx, email, password) })
	if err != nil {
		return a.report(err, "Invalid email or password")
	}
	return a.Navigate(ctx, string(router.Interests))
}

// Logout ends the session and shows the login screen.
func (a *App) Logout(ctx context.Context) error {
	if !a.manager.Snapshot().IsAuthenticated() {
		printlnFn("Not logged in.")
		return nil
	}

	if err := a.submit(func() error { return a.manager.Logout(ctx) }); err != nil {
		return a.report(err, "Failed to log out")
	}
	a.selection = nil
	return a.Navigate(ctx, string(router.Login))
}

// Forgot requests a password reset e-mail.
func (a *App) Forgot(ctx context.Context) error {
	if !a.expect(router.ForgotPassword, "forgot") {
		return nil
	}

	email, err := a.prompt("Email")
	if err != nil {
		return err
	}

	err = a.submit(func() error { return a.manager.ForgotPassword(ctx, email) })
	if err != nil {
		return a.report(err, "Failed to send the reset e-mail")
	}
	printlnFn("Check your inbox for the reset link, then 'go /reset-password?token=<token>'.")
	return nil
}

// Reset sets a new password. The token is taken from the route query
// (?token=...) or prompted for. On success the login screen is shown.
func (a *App) Reset(ctx context.Context) error {
	if !a.expect(router.ResetPassword, "reset") {
		return nil
	}

	token := a.query.Get("token")
	if token == "" {
		var err error
		if token, err = a.prompt("Reset token"); err != nil {
			return err
		}
	}
	password, err := a.promptSecret("New password")
	if err != nil {
		return err
	}
	confirm, err := a.promptSecret("Confirm new password")
	if err != nil {
		return err
	}

	err = a.submit(func() error { return a.manager.ResetPassword(ctx, password, confirm, token) })
	if err != nil {
		return a.report(err, "Failed to reset the password")
	}
	return a.Navigate(ctx, string(router.Login))
}
