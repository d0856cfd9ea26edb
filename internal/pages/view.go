// Package pages holds the page controllers of the console. Each controller reads the
// session, gates by role, calls the ems API and returns what the page should render.
package pages

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

const (
	PageLogin             = "login.html"
	PageIndex             = "index.html"
	PageAdminDashboard    = "dashboard_admin.html"
	PageEmployeeDashboard = "dashboard_employee.html"
	PageVerifyOTP         = "verify_otp.html"
)

var (
	ErrNotLoggedIn    = errors.New("not logged in")
	ErrForbidden      = errors.New("access denied")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrCooldown       = errors.New("please wait before trying again")
)

type MessageKind string

const (
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
	KindInfo    MessageKind = "info"
)

type Link struct {
	Href string `json:"href"`
	Text string `json:"text"`
}

type Message struct {
	Kind MessageKind `json:"kind"`
	Text string      `json:"text"`
	Link *Link       `json:"link,omitempty"`
}

// Outcome is the message and navigation every view carries
type Outcome struct {
	Message  *Message `json:"message,omitempty"`
	Redirect string   `json:"redirect,omitempty"`
}

// Failed reports whether the outcome carries an error message
func (o Outcome) Failed() bool {
	return o.Message != nil && o.Message.Kind == KindError
}

func success(text string) *Message {
	return &Message{Kind: KindSuccess, Text: text}
}

func failure(text string) *Message {
	return &Message{Kind: KindError, Text: text}
}

func info(text string) *Message {
	return &Message{Kind: KindInfo, Text: text}
}

// errorText returns the message of err, or fallback when err carries none
func errorText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}

// submitGuard rejects a second submission of the same form while the first is running
type submitGuard struct {
	busy atomic.Bool
}

func (g *submitGuard) acquire() (func(), error) {
	if !g.busy.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	return func() { g.busy.Store(false) }, nil
}

// currentUser returns the logged in session record, or ErrNotLoggedIn
func currentUser(ctx context.Context, store session.Store) (*session.Record, error) {
	record, err := store.Read(ctx)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("failed to read the session")
		return nil, fmt.Errorf("%w: %v", ErrNotLoggedIn, err)
	}
	if !record.LoggedIn() {
		return nil, ErrNotLoggedIn
	}
	return record, nil
}

// requireRole gates a page to role. Admin pages also need the admin id for the X-Admin-Id header.
func requireRole(ctx context.Context, store session.Store, role model.Role) (*session.Record, error) {
	record, err := currentUser(ctx, store)
	if err != nil {
		return nil, err
	}
	switch {
	case role == model.RoleAdmin && (record.Role != model.RoleAdmin || record.ID == 0):
		return nil, fmt.Errorf("%w: you must be an Admin to view this page", ErrForbidden)
	case record.Role != role:
		return nil, fmt.Errorf("%w: please log in as an Employee", ErrForbidden)
	}
	return record, nil
}

// apiErrorCode returns the backend error code carried by err, if any
func apiErrorCode(err error) string {
	if apiErr, ok := ems.AsAPIError(err); ok {
		return apiErr.ErrorCode
	}
	return ""
}
