package auth

import (
	"context"
	"net/http"

	"github.com/syrilster/ems-console/internal/config"
	"github.com/syrilster/ems-console/internal/pages"
)

// Handler is the login and registration flow served under /auth
type Handler interface {
	Login(ctx context.Context, form pages.LoginForm) (pages.Outcome, error)
	Logout(ctx context.Context) (pages.Outcome, error)
	Register(ctx context.Context, form pages.RegistrationForm) (pages.Outcome, error)
	VerifyOTP(ctx context.Context, form pages.OTPForm) (pages.Outcome, error)
	ResendOTP(ctx context.Context, form pages.ResendForm) (pages.Outcome, error)
	Managers(ctx context.Context) (*pages.OptionsView, error)
	Departments(ctx context.Context) (*pages.OptionsView, error)
}

func Routes(handler Handler) []config.Route {
	return []config.Route{
		{Path: "/auth/login", Method: http.MethodPost, Handler: LoginHandler(handler)},
		{Path: "/auth/logout", Method: http.MethodPost, Handler: LogoutHandler(handler)},
		{Path: "/auth/register", Method: http.MethodPost, Handler: RegisterHandler(handler)},
		{Path: "/auth/verify-otp", Method: http.MethodPost, Handler: VerifyOTPHandler(handler)},
		{Path: "/auth/resend-otp", Method: http.MethodPost, Handler: ResendOTPHandler(handler)},
		{Path: "/auth/admins", Method: http.MethodGet, Handler: ManagersHandler(handler)},
		{Path: "/auth/departments", Method: http.MethodGet, Handler: DepartmentsHandler(handler)},
	}
}
