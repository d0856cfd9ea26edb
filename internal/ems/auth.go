package ems

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/model"
)

const (
	loginPath     = "/api/auth/login"
	registerPath  = "/api/auth/register"
	verifyOTPPath = "/api/auth/verify-otp"
	resendOTPPath = "/api/auth/resend-otp"
	adminListPath = "/api/admins/list"
)

func (c *client) Login(ctx context.Context, credentials model.Credentials) (*model.User, error) {
	log.WithContext(ctx).Info("Logging in user: ", credentials.Email)
	return fetch[model.User](ctx, c, Request{
		Path:   loginPath,
		Method: http.MethodPost,
		Body:   credentials,
	})
}

func (c *client) Register(ctx context.Context, draft model.RegistrationRequest) (*model.RegistrationResponse, error) {
	log.WithContext(ctx).WithField("role", draft.Role).Info("Registering user: ", draft.Email)
	return optional[model.RegistrationResponse](ctx, c, Request{
		Path:          registerPath,
		Method:        http.MethodPost,
		Body:          draft,
		LoaderMessage: "Creating account...",
	})
}

func (c *client) VerifyOTP(ctx context.Context, email string, otp string) (*model.User, error) {
	return optional[model.User](ctx, c, Request{
		Path:          verifyOTPPath,
		Method:        http.MethodPost,
		Body:          model.OTPRequest{Email: email, OTP: otp},
		LoaderMessage: "Verifying OTP...",
	})
}

// ResendOTP returns the confirmation text when the backend sent one as JSON
func (c *client) ResendOTP(ctx context.Context, email string) (string, error) {
	raw, err := c.Call(ctx, Request{
		Path:          resendOTPPath,
		Method:        http.MethodPost,
		Body:          model.EmailRequest{Email: email},
		LoaderMessage: "Resending OTP...",
	})
	if err != nil || raw == nil {
		return "", err
	}
	message, _ := jsonErrorMessage(raw)
	return message, nil
}

func (c *client) ListAdmins(ctx context.Context) ([]model.AdminSummary, error) {
	return list[model.AdminSummary](ctx, c, Request{
		Path:       adminListPath,
		SkipLoader: true,
	})
}
