// Package services contains the application services of the onboarding
// client. This file defines the authentication service: OTP delivery,
// signup confirmation, login, password reset, and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/onboard/internal/client/client"
	"github.com/dmitrijs2005/onboard/internal/client/models"
	"github.com/dmitrijs2005/onboard/internal/client/notify"
	"github.com/dmitrijs2005/onboard/internal/client/tokens"
	"github.com/dmitrijs2005/onboard/internal/logging"
)

// SessionStore is the part of local storage the service writes to.
type SessionStore interface {
	SaveSession(ctx context.Context, token string, s models.Session) error
	ClearSession(ctx context.Context) error
}

// SetSessionFunc installs a freshly created session in the caller's state.
// It is called only after the credential has been persisted.
type SetSessionFunc func(s models.Session)

// AuthService defines authentication operations against the backend.
//
// Every method returns nil on success; on failure it returns one of
// ErrNetwork, *RejectionError, ErrBadResponse or client.ErrMalformedResponse
// (match with errors.Is / errors.As) and leaves caller state untouched.
// Each call also drives the Notifier: Loading, then Dismiss, then Success or
// Error carrying the backend message or a fixed fallback.
type AuthService interface {
	SendOTP(ctx context.Context, email string) error
	SignUp(ctx context.Context, draft models.PendingVerification, otp string, set SetSessionFunc) error
	Login(ctx context.Context, email, password string, set SetSessionFunc) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, password, confirmPassword, resetToken string) error
	Logout(ctx context.Context, clear func()) error
}

type operation struct {
	name     string
	loading  string
	done     string
	fallback string
}

var (
	opSendOTP = operation{"send_otp", "Sending OTP...", "OTP Sent Successfully", "Failed to send OTP"}
	opSignUp  = operation{"signup", "Verifying Email...", "Email Verified Successfully", "Invalid OTP"}
	opLogin   = operation{"login", "Logging In...", "Login Successful", "Invalid email or password"}
	opForgot  = operation{"reset_password_token", "Sending Reset Email...", "Reset Email Sent", "Failed to Send Reset Email"}
	opReset   = operation{"reset_password", "Resetting Password...", "Password Reset Successfully", "Failed to Reset Password"}
)

type authService struct {
	api      client.API
	store    SessionStore
	notifier notify.Notifier
	log      logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API client,
// local store, notifier and logger.
func NewAuthService(api client.API, store SessionStore, n notify.Notifier, log logging.Logger) AuthService {
	return &authService{api: api, store: store, notifier: n, log: log.With("component", "auth_service")}
}

// exec runs one backend operation with the notification sequence around it.
// commit, when set, runs after a successful reply and can still fail the
// operation (e.g. when persisting the credential fails).
func (a *authService) exec(ctx context.Context, op operation, call func(context.Context) (*client.Reply, error), commit func(*client.Reply) error) error {
	a.notifier.Loading(op.loading)

	err := a.try(ctx, op, call, commit)

	a.notifier.Dismiss()
	if err != nil {
		a.notifier.Error(UserMessage(err, op.fallback))
		a.log.Warn(ctx, "auth operation failed", "op", op.name, "error", err.Error())
		return err
	}
	a.notifier.Success(op.done)
	a.log.Info(ctx, "auth operation succeeded", "op", op.name)
	return nil
}

func (a *authService) try(ctx context.Context, op operation, call func(context.Context) (*client.Reply, error), commit func(*client.Reply) error) error {
	reply, err := call(ctx)
	if err != nil {
		if errors.Is(err, client.ErrUnavailable) {
			return fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		return err
	}
	if !reply.Succeeded() {
		return &RejectionError{Op: op.name, StatusCode: reply.StatusCode, Message: strings.TrimSpace(reply.Message)}
	}
	if commit != nil {
		return commit(reply)
	}
	return nil
}

// establish turns a successful signup/login reply into a Session, persists
// it together with the token, and only then hands it to set. A token that
// does not decode is refused.
func (a *authService) establish(ctx context.Context, reply *client.Reply, email string, set SetSessionFunc) error {
	token := strings.TrimSpace(reply.Token)
	if token == "" {
		return fmt.Errorf("%w: no token", ErrBadResponse)
	}
	if _, err := tokens.Decode(token); err != nil {
		return fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	session, err := sessionFromReply(reply, token, email)
	if err != nil {
		return err
	}

	if err := a.store.SaveSession(ctx, token, session); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if set != nil {
		set(session)
	}
	return nil
}

func sessionFromReply(reply *client.Reply, token, email string) (models.Session, error) {
	user := reply.User

	id := user.Identifier()
	if id == "" {
		hint, err := tokens.UserID(token)
		if err != nil {
			return models.Session{}, fmt.Errorf("%w: no user id: %v", ErrBadResponse, err)
		}
		id = hint
	}

	s := models.Session{
		UserID:      id,
		Email:       email,
		DisplayName: user.DisplayName(),
		AvatarURL:   user.AvatarURL(),
	}
	if user != nil && user.Email != "" {
		s.Email = user.Email
	}
	return s, nil
}

// SendOTP asks the backend to e-mail a one-time code to email.
func (a *authService) SendOTP(ctx context.Context, email string) error {
	return a.exec(ctx, opSendOTP, func(ctx context.Context) (*client.Reply, error) {
		return a.api.SendOTP(ctx, email)
	}, nil)
}

// SignUp creates the account from draft and confirms otp in one request.
func (a *authService) SignUp(ctx context.Context, draft models.PendingVerification, otp string, set SetSessionFunc) error {
	req := models.SignupRequest{
		Name:     draft.NameDraft,
		Email:    draft.Email,
		Password: draft.PasswordDraft,
		OTP:      otp,
	}
	return a.exec(ctx, opSignUp, func(ctx context.Context) (*client.Reply, error) {
		return a.api.Signup(ctx, req)
	}, func(reply *client.Reply) error {
		return a.establish(ctx, reply, draft.Email, set)
	})
}

// Login authenticates with email and password.
func (a *authService) Login(ctx context.Context, email, password string, set SetSessionFunc) error {
	return a.exec(ctx, opLogin, func(ctx context.Context) (*client.Reply, error) {
		return a.api.Login(ctx, email, password)
	}, func(reply *client.Reply) error {
		return a.establish(ctx, reply, email, set)
	})
}

// ForgotPassword requests a password reset e-mail.
func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	return a.exec(ctx, opForgot, func(ctx context.Context) (*client.Reply, error) {
		return a.api.ResetPasswordToken(ctx, email)
	}, nil)
}

// ResetPassword sets a new password using the token from the reset e-mail.
func (a *authService) ResetPassword(ctx context.Context, password, confirmPassword, resetToken string) error {
	return a.exec(ctx, opReset, func(ctx context.Context) (*client.Reply, error) {
		return a.api.ResetPassword(ctx, password, confirmPassword, resetToken)
	}, nil)
}

// Logout wipes the persisted credential and profile, then calls clear.
// No request is sent to the backend.
func (a *authService) Logout(ctx context.Context, clear func()) error {
	if err := a.store.ClearSession(ctx); err != nil {
		a.notifier.Error("Failed to log out")
		a.log.Error(ctx, "clear session failed", "error", err.Error())
		return fmt.Errorf("clear session: %w", err)
	}
	if clear != nil {
		clear()
	}
	a.notifier.Success("Logged Out")
	a.log.Info(ctx, "logged out")
	return nil
}
