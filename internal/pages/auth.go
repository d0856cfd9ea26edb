package pages

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

// ResendCooldown is how long a resend stays unavailable for an email after an attempt
const ResendCooldown = 5 * time.Second

type LoginForm struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type OTPForm struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type ResendForm struct {
	Email string `json:"email"`
}

type Auth struct {
	client ems.ClientInterface
	store  session.Store
	now    func() time.Time

	login    submitGuard
	register submitGuard
	verify   submitGuard

	mu         sync.Mutex
	lastResend map[string]time.Time
}

func NewAuth(client ems.ClientInterface, store session.Store) *Auth {
	return &Auth{
		client:     client,
		store:      store,
		now:        time.Now,
		lastResend: make(map[string]time.Time),
	}
}

func verifyOTPPage(email string) string {
	return PageVerifyOTP + "?email=" + url.QueryEscape(email)
}

//Login authenticates, caches the profile and sends the user to the dashboard of their role
func (a *Auth) Login(ctx context.Context, form LoginForm) (Outcome, error) {
	release, err := a.login.acquire()
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	contextLogger := log.WithContext(ctx)
	user, err := a.client.Login(ctx, model.Credentials{Email: form.Email, Password: form.Password})
	if err != nil {
		contextLogger.WithError(err).Infof("login failed for %s", form.Email)
		message := failure(errorText(err, "Login failed. Please try again."))
		if strings.Contains(strings.ToLower(err.Error()), "not verified") {
			message.Link = &Link{Href: verifyOTPPage(form.Email), Text: "Click here to verify or resend OTP."}
		}
		return Outcome{Message: message}, nil
	}
	if user == nil {
		return Outcome{Message: failure("Login failed. Please try again.")}, nil
	}

	if _, err := a.store.Save(ctx, *user, user.Token); err != nil {
		contextLogger.WithError(err).Error("failed to save the session")
		return Outcome{Message: failure("Could not save your session: " + err.Error())}, nil
	}

	switch user.Role {
	case model.RoleAdmin:
		return Outcome{Redirect: PageAdminDashboard}, nil
	case model.RoleEmployee:
		return Outcome{Redirect: PageEmployeeDashboard}, nil
	}
	return Outcome{Redirect: PageIndex}, nil
}

func (a *Auth) Logout(ctx context.Context) (Outcome, error) {
	if err := a.store.Clear(ctx); err != nil {
		log.WithContext(ctx).WithError(err).Error("failed to clear the session")
		return Outcome{}, err
	}
	return Outcome{Redirect: PageLogin}, nil
}

//Register submits a self registration and moves on to OTP verification
func (a *Auth) Register(ctx context.Context, form RegistrationForm) (Outcome, error) {
	release, err := a.register.acquire()
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	draft, err := form.Draft()
	if err != nil {
		return Outcome{Message: failure(err.Error())}, nil
	}

	resp, err := a.client.Register(ctx, draft)
	if err != nil {
		log.WithContext(ctx).WithError(err).Infof("registration failed for %s", draft.Email)
		return Outcome{Message: failure(errorText(err, "Registration failed. Please try again."))}, nil
	}
	if resp == nil || resp.Email == "" {
		return Outcome{Message: failure("Account creation initiated, but there was an issue proceeding to OTP verification. Please contact support.")}, nil
	}

	out := Outcome{Redirect: verifyOTPPage(resp.Email)}
	if resp.Message != "" {
		out.Message = success(resp.Message)
	}
	return out, nil
}

//VerifyOTP confirms the emailed code and sends the user to log in
func (a *Auth) VerifyOTP(ctx context.Context, form OTPForm) (Outcome, error) {
	if strings.TrimSpace(form.Email) == "" {
		return Outcome{Message: failure("Email is missing for OTP verification. Please try registering again.")}, nil
	}
	release, err := a.verify.acquire()
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	if _, err := a.client.VerifyOTP(ctx, form.Email, strings.TrimSpace(form.OTP)); err != nil {
		log.WithContext(ctx).WithError(err).Infof("otp verification failed for %s", form.Email)
		return Outcome{Message: failure(otpErrorText(err))}, nil
	}
	return Outcome{
		Message:  success("Email verified successfully! Redirecting to login..."),
		Redirect: PageLogin,
	}, nil
}

func otpErrorText(err error) string {
	switch apiErrorCode(err) {
	case "INVALID_OTP":
		return "The OTP you entered is incorrect. Please try again."
	case "OTP_EXPIRED":
		return "The OTP has expired. Please request a new one."
	}
	return errorText(err, "OTP verification failed. Please try again.")
}

//ResendOTP asks for a fresh code. Attempts for the same email are spaced by ResendCooldown.
func (a *Auth) ResendOTP(ctx context.Context, form ResendForm) (Outcome, error) {
	email := strings.TrimSpace(form.Email)
	if email == "" {
		return Outcome{Message: failure("Could not identify email to resend OTP. Please ensure you started the registration process.")}, nil
	}
	if err := a.startResend(email); err != nil {
		return Outcome{}, err
	}

	text, err := a.client.ResendOTP(ctx, email)
	if err != nil {
		log.WithContext(ctx).WithError(err).Infof("otp resend failed for %s", email)
		return Outcome{Message: failure(errorText(err, "Failed to resend OTP. Please try again."))}, nil
	}
	if text == "" {
		text = "New OTP sent. Please check your email."
	}
	return Outcome{Message: success(text)}, nil
}

func (a *Auth) startResend(email string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	now := a.now()
	if last, ok := a.lastResend[email]; ok && now.Sub(last) < ResendCooldown {
		return ErrCooldown
	}
	for other, last := range a.lastResend {
		if now.Sub(last) >= ResendCooldown {
			delete(a.lastResend, other)
		}
	}
	a.lastResend[email] = now
	return nil
}
