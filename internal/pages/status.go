package pages

import (
	"context"
	"errors"
	"net/http"

	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

// StatusCode is the HTTP status the console answers a view with
func (o Outcome) StatusCode() int {
	if o.Failed() {
		return http.StatusBadRequest
	}
	return http.StatusOK
}

//ErrorView turns a controller error into the outcome and status sent to the browser.
//Gate failures send the user back to the login page.
func ErrorView(err error) (Outcome, int) {
	out := Outcome{Message: failure(err.Error())}
	switch {
	case errors.Is(err, ErrNotLoggedIn):
		out.Redirect = PageLogin
		return out, http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		out.Redirect = PageLogin
		return out, http.StatusForbidden
	case errors.Is(err, ErrSubmitInFlight):
		return out, http.StatusConflict
	case errors.Is(err, ErrCooldown):
		return out, http.StatusTooManyRequests
	}
	return out, http.StatusInternalServerError
}

// RequireAdmin returns the session of the logged in admin
func RequireAdmin(ctx context.Context, store session.Store) (*session.Record, error) {
	return requireRole(ctx, store, model.RoleAdmin)
}
