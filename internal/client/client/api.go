package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/onboard/internal/client/models"
)

const (
	PathSendOTP            = "/auth/send-otp"
	PathSignup             = "/auth/signup"
	PathLogin              = "/auth/login"
	PathResetPasswordToken = "/auth/reset-password-token"
	PathResetPassword      = "/auth/reset-password"
)

// Reply is a decoded auth endpoint answer together with its HTTP status.
type Reply struct {
	StatusCode int
	models.APIResponse
}

// Succeeded is true only when the status is 2xx and the body carries
// "success": true.
func (r *Reply) Succeeded() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300 && r.Success
}

// API is the auth backend contract.
type API interface {
	SendOTP(ctx context.Context, email string) (*Reply, error)
	Signup(ctx context.Context, req models.SignupRequest) (*Reply, error)
	Login(ctx context.Context, email, password string) (*Reply, error)
	ResetPasswordToken(ctx context.Context, email string) (*Reply, error)
	ResetPassword(ctx context.Context, password, confirmPassword, token string) (*Reply, error)
}

type authAPI struct {
	t Transport
}

// NewAPI wraps a Transport with the auth endpoints.
func NewAPI(t Transport) API {
	return &authAPI{t: t}
}

func (a *authAPI) post(ctx context.Context, path string, body any) (*Reply, error) {
	resp, err := a.t.Do(ctx, http.MethodPost, path, body, nil)
	if err != nil {
		return nil, err
	}
	reply := &Reply{StatusCode: resp.StatusCode}
	if err := resp.Decode(&reply.APIResponse); err != nil {
		if resp.OK() {
			return nil, err
		}
		// An unreadable error page is still a rejection, just without a message.
		reply.APIResponse = models.APIResponse{}
	}
	return reply, nil
}

func (a *authAPI) SendOTP(ctx context.Context, email string) (*Reply, error) {
	return a.post(ctx, PathSendOTP, models.SendOTPRequest{Email: email, CheckUserPresent: true})
}

func (a *authAPI) Signup(ctx context.Context, req models.SignupRequest) (*Reply, error) {
	return a.post(ctx, PathSignup, req)
}

func (a *authAPI) Login(ctx context.Context, email, password string) (*Reply, error) {
	return a.post(ctx, PathLogin, models.LoginRequest{Email: email, Password: password})
}

func (a *authAPI) ResetPasswordToken(ctx context.Context, email string) (*Reply, error) {
	return a.post(ctx, PathResetPasswordToken, models.ResetPasswordTokenRequest{Email: email})
}

func (a *authAPI) ResetPassword(ctx context.Context, password, confirmPassword, token string) (*Reply, error) {
	return a.post(ctx, PathResetPassword, models.ResetPasswordRequest{
		Password:        password,
		ConfirmPassword: confirmPassword,
		Token:           token,
	})
}
