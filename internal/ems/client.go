package ems

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/customhttp"
	"github.com/syrilster/ems-console/internal/loader"
	"github.com/syrilster/ems-console/internal/model"
)

const (
	HeaderAdminID     = "X-Admin-Id"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

var jsonNull = []byte("null")

// ErrEmptyResponse is returned when an endpoint that must answer with a document answered with nothing
var ErrEmptyResponse = errors.New("no data received from the ems api")

type ClientInterface interface {
	Call(ctx context.Context, r Request) (json.RawMessage, error)

	Login(ctx context.Context, credentials model.Credentials) (*model.User, error)
	Register(ctx context.Context, draft model.RegistrationRequest) (*model.RegistrationResponse, error)
	VerifyOTP(ctx context.Context, email string, otp string) (*model.User, error)
	ResendOTP(ctx context.Context, email string) (string, error)
	ListAdmins(ctx context.Context) ([]model.AdminSummary, error)

	AllDepartments(ctx context.Context) ([]model.Department, error)
	ManagedDepartments(ctx context.Context, adminID int64, showLoader bool) ([]model.Department, error)
	GetDepartment(ctx context.Context, adminID int64, id int64) (*model.Department, error)
	CreateDepartment(ctx context.Context, adminID int64, d model.Department) (*model.Department, error)
	UpdateDepartment(ctx context.Context, adminID int64, id int64, d model.Department) (*model.Department, error)
	DeleteDepartment(ctx context.Context, adminID int64, id int64) error

	ListEmployees(ctx context.Context, adminID int64) ([]model.Employee, error)
	GetEmployee(ctx context.Context, adminID int64, id int64) (*model.Employee, error)
	CreateEmployee(ctx context.Context, adminID int64, e model.Employee) (*model.Employee, error)
	UpdateEmployee(ctx context.Context, adminID int64, id int64, e model.Employee) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, adminID int64, id int64) error

	ApplyLeave(ctx context.Context, req model.LeaveRequest) (*model.LeaveRequest, error)
	MyLeaveRequests(ctx context.Context, employeeID int64) ([]model.LeaveRequest, error)
	CancelLeave(ctx context.Context, employeeID int64, leaveID int64) (*model.LeaveRequest, error)
	AdminLeaveRequests(ctx context.Context, adminID int64, status model.LeaveStatus) ([]model.LeaveRequest, error)
	AdminLeaveRequest(ctx context.Context, adminID int64, leaveID int64) (*model.LeaveRequest, error)
	ActionLeave(ctx context.Context, adminID int64, leaveID int64, action model.LeaveAction) (*model.LeaveRequest, error)

	DashboardSummary(ctx context.Context, adminID int64) (*model.DashboardSummary, error)
}

// Request describes one backend call. The loader is shown unless SkipLoader is set.
type Request struct {
	Path          string
	Method        string
	Body          interface{}
	Headers       map[string]string
	SkipLoader    bool
	LoaderMessage string
}

func NewClient(endpoint string, c customhttp.HTTPCommand, indicator loader.Indicator) *client {
	if indicator == nil {
		indicator = loader.Nop()
	}
	return &client{
		URL:    strings.TrimRight(endpoint, "/"),
		Client: c,
		Loader: indicator,
	}
}

type client struct {
	URL    string
	Client customhttp.HTTPCommand
	Loader loader.Indicator
}

// Call performs the request and returns the JSON body, or nil when a 2xx response carries no JSON.
// Non-2xx responses come back as *APIError.
func (c *client) Call(ctx context.Context, r Request) (json.RawMessage, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}
	contextLogger := log.WithContext(ctx).WithFields(log.Fields{"method": method, "path": r.Path})

	if !r.SkipLoader {
		message := r.LoaderMessage
		if message == "" {
			message = loader.DefaultMessage
		}
		c.Loader.Show(message)
		defer c.Loader.Hide()
	}

	var body io.Reader
	if r.Body != nil && sendsBody(method) {
		payload, err := encodeBody(r.Body)
		if err != nil {
			contextLogger.WithError(err).Error("failed to encode request body")
			return nil, fmt.Errorf("encode %s %s body: %w", method, r.Path, err)
		}
		body = bytes.NewReader(payload)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, method, c.URL+r.Path, body)
	if err != nil {
		contextLogger.WithError(err).Error("failed to build HTTP request")
		return nil, err
	}
	httpRequest.Header.Set(headerContentType, contentTypeJSON)
	for k, v := range r.Headers {
		httpRequest.Header.Set(k, v)
	}

	resp, err := c.Client.Do(httpRequest)
	if err != nil {
		contextLogger.WithError(err).Errorf("there was an error calling the ems API. %v", err)
		return nil, fmt.Errorf("%s %s: %w", method, r.Path, err)
	}

	defer func() {
		if err = resp.Body.Close(); err != nil {
			contextLogger.WithError(err).Errorf("Error closing the ioReader. %v", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := readAPIError(resp)
		contextLogger.WithField("status", resp.StatusCode).Infof("ems API call failed: %s", apiErr.Message)
		return nil, apiErr
	}

	if resp.StatusCode == http.StatusNoContent || !isJSON(resp.Header) {
		return nil, nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		contextLogger.WithError(err).Error("error reading ems API resp body")
		return nil, fmt.Errorf("error reading ems API resp body. cause: %w", err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, jsonNull) {
		return nil, nil
	}
	if !json.Valid(data) {
		contextLogger.Error("ems API answered with malformed json")
		return nil, fmt.Errorf("there was an error un marshalling the %s resp. cause: invalid json", r.Path)
	}
	return data, nil
}

func (c *client) callInto(ctx context.Context, r Request, out interface{}) (bool, error) {
	raw, err := c.Call(ctx, r)
	if err != nil {
		return false, err
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.WithContext(ctx).WithError(err).Errorf("there was an error un marshalling the ems API resp. %v", err)
		return false, fmt.Errorf("there was an error un marshalling the %s resp. cause: %v", r.Path, err)
	}
	return true, nil
}

// fetch decodes a required document, failing with ErrEmptyResponse when none was sent
func fetch[T any](ctx context.Context, c *client, r Request) (*T, error) {
	out := new(T)
	ok, err := c.callInto(ctx, r, out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrEmptyResponse
	}
	return out, nil
}

// optional decodes a document the backend may omit on success
func optional[T any](ctx context.Context, c *client, r Request) (*T, error) {
	out := new(T)
	ok, err := c.callInto(ctx, r, out)
	if err != nil || !ok {
		return nil, err
	}
	return out, nil
}

func list[T any](ctx context.Context, c *client, r Request) ([]T, error) {
	var out []T
	if _, err := c.callInto(ctx, r, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// encodeBody writes v as compact JSON without HTML escaping
func encodeBody(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func adminHeaders(adminID int64) map[string]string {
	return map[string]string{HeaderAdminID: strconv.FormatInt(adminID, 10)}
}

func sendsBody(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}
	return false
}

func isJSON(h http.Header) bool {
	return strings.Contains(h.Get(headerContentType), contentTypeJSON)
}
