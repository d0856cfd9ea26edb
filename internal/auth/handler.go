package auth

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/pages"
	"github.com/syrilster/ems-console/internal/util"
)

func LoginHandler(handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var form pages.LoginForm
		if err := util.DecodeJSON(r, &form); err != nil {
			log.WithContext(r.Context()).WithError(err).Error("could not parse login request")
			pages.BadRequest(w, err)
			return
		}
		out, err := handler.Login(r.Context(), form)
		pages.Respond(w, out, err)
	}
}

func LogoutHandler(handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := handler.Logout(r.Context())
		pages.Respond(w, out, err)
	}
}

func RegisterHandler(handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var form pages.RegistrationForm
		if err := util.DecodeJSON(r, &form); err != nil {
			log.WithContext(r.Context()).WithError(err).Error("could not parse registration request")
			pages.BadRequest(w, err)
			return
		}
		out, err := handler.Register(r.Context(), form)
		pages.Respond(w, out, err)
	}
}

func VerifyOTPHandler(handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var form pages.OTPForm
		if err := util.DecodeJSON(r, &form); err != nil {
			log.WithContext(r.Context()).WithError(err).Error("could not parse otp request")
			pages.BadRequest(w, err)
			return
		}
		out, err := handler.VerifyOTP(r.Context(), form)
		pages.Respond(w, out, err)
	}
}

func ResendOTPHandler(handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var form pages.ResendForm
		if err := util.DecodeJSON(r, &form); err != nil {
			log.WithContext(r.Context()).WithError(err).Error("could not parse resend request")
			pages.BadRequest(w, err)
			return
		}
		// the verify page links carry the email in the query
		if form.Email == "" {
			form.Email = r.URL.Query().Get("email")
		}
		out, err := handler.ResendOTP(r.Context(), form)
		pages.Respond(w, out, err)
	}
}

func ManagersHandler(handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := handler.Managers(r.Context())
		pages.Respond(w, view, err)
	}
}

func DepartmentsHandler(handler Handler) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := handler.Departments(r.Context())
		pages.Respond(w, view, err)
	}
}
