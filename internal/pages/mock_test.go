package pages

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

type MockEMSClient struct {
	mock.Mock
}

var _ ems.ClientInterface = (*MockEMSClient)(nil)

func (m *MockEMSClient) Call(ctx context.Context, r ems.Request) (json.RawMessage, error) {
	args := m.Called(ctx, r)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *MockEMSClient) Login(ctx context.Context, credentials model.Credentials) (*model.User, error) {
	args := m.Called(ctx, credentials)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockEMSClient) Register(ctx context.Context, draft model.RegistrationRequest) (*model.RegistrationResponse, error) {
	args := m.Called(ctx, draft)
	resp, _ := args.Get(0).(*model.RegistrationResponse)
	return resp, args.Error(1)
}

func (m *MockEMSClient) VerifyOTP(ctx context.Context, email string, otp string) (*model.User, error) {
	args := m.Called(ctx, email, otp)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *MockEMSClient) ResendOTP(ctx context.Context, email string) (string, error) {
	args := m.Called(ctx, email)
	return args.String(0), args.Error(1)
}

func (m *MockEMSClient) ListAdmins(ctx context.Context) ([]model.AdminSummary, error) {
	args := m.Called(ctx)
	admins, _ := args.Get(0).([]model.AdminSummary)
	return admins, args.Error(1)
}

func (m *MockEMSClient) AllDepartments(ctx context.Context) ([]model.Department, error) {
	args := m.Called(ctx)
	departments, _ := args.Get(0).([]model.Department)
	return departments, args.Error(1)
}

func (m *MockEMSClient) ManagedDepartments(ctx context.Context, adminID int64, showLoader bool) ([]model.Department, error) {
	args := m.Called(ctx, adminID, showLoader)
	departments, _ := args.Get(0).([]model.Department)
	return departments, args.Error(1)
}

func (m *MockEMSClient) GetDepartment(ctx context.Context, adminID int64, id int64) (*model.Department, error) {
	args := m.Called(ctx, adminID, id)
	d, _ := args.Get(0).(*model.Department)
	return d, args.Error(1)
}

func (m *MockEMSClient) CreateDepartment(ctx context.Context, adminID int64, d model.Department) (*model.Department, error) {
	args := m.Called(ctx, adminID, d)
	out, _ := args.Get(0).(*model.Department)
	return out, args.Error(1)
}

func (m *MockEMSClient) UpdateDepartment(ctx context.Context, adminID int64, id int64, d model.Department) (*model.Department, error) {
	args := m.Called(ctx, adminID, id, d)
	out, _ := args.Get(0).(*model.Department)
	return out, args.Error(1)
}

func (m *MockEMSClient) DeleteDepartment(ctx context.Context, adminID int64, id int64) error {
	args := m.Called(ctx, adminID, id)
	return args.Error(0)
}

func (m *MockEMSClient) ListEmployees(ctx context.Context, adminID int64) ([]model.Employee, error) {
	args := m.Called(ctx, adminID)
	employees, _ := args.Get(0).([]model.Employee)
	return employees, args.Error(1)
}

func (m *MockEMSClient) GetEmployee(ctx context.Context, adminID int64, id int64) (*model.Employee, error) {
	args := m.Called(ctx, adminID, id)
	e, _ := args.Get(0).(*model.Employee)
	return e, args.Error(1)
}

func (m *MockEMSClient) CreateEmployee(ctx context.Context, adminID int64, e model.Employee) (*model.Employee, error) {
	args := m.Called(ctx, adminID, e)
	out, _ := args.Get(0).(*model.Employee)
	return out, args.Error(1)
}

func (m *MockEMSClient) UpdateEmployee(ctx context.Context, adminID int64, id int64, e model.Employee) (*model.Employee, error) {
	args := m.Called(ctx, adminID, id, e)
	out, _ := args.Get(0).(*model.Employee)
	return out, args.Error(1)
}

func (m *MockEMSClient) DeleteEmployee(ctx context.Context, adminID int64, id int64) error {
	args := m.Called(ctx, adminID, id)
	return args.Error(0)
}

func (m *MockEMSClient) ApplyLeave(ctx context.Context, req model.LeaveRequest) (*model.LeaveRequest, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*model.LeaveRequest)
	return out, args.Error(1)
}

func (m *MockEMSClient) MyLeaveRequests(ctx context.Context, employeeID int64) ([]model.LeaveRequest, error) {
	args := m.Called(ctx, employeeID)
	out, _ := args.Get(0).([]model.LeaveRequest)
	return out, args.Error(1)
}

func (m *MockEMSClient) CancelLeave(ctx context.Context, employeeID int64, leaveID int64) (*model.LeaveRequest, error) {
	args := m.Called(ctx, employeeID, leaveID)
	out, _ := args.Get(0).(*model.LeaveRequest)
	return out, args.Error(1)
}

func (m *MockEMSClient) AdminLeaveRequests(ctx context.Context, adminID int64, status model.LeaveStatus) ([]model.LeaveRequest, error) {
	args := m.Called(ctx, adminID, status)
	out, _ := args.Get(0).([]model.LeaveRequest)
	return out, args.Error(1)
}

func (m *MockEMSClient) AdminLeaveRequest(ctx context.Context, adminID int64, leaveID int64) (*model.LeaveRequest, error) {
	args := m.Called(ctx, adminID, leaveID)
	out, _ := args.Get(0).(*model.LeaveRequest)
	return out, args.Error(1)
}

func (m *MockEMSClient) ActionLeave(ctx context.Context, adminID int64, leaveID int64, action model.LeaveAction) (*model.LeaveRequest, error) {
	args := m.Called(ctx, adminID, leaveID, action)
	out, _ := args.Get(0).(*model.LeaveRequest)
	return out, args.Error(1)
}

func (m *MockEMSClient) DashboardSummary(ctx context.Context, adminID int64) (*model.DashboardSummary, error) {
	args := m.Called(ctx, adminID)
	out, _ := args.Get(0).(*model.DashboardSummary)
	return out, args.Error(1)
}

var (
	testAdmin    = model.User{ID: 7, FirstName: "Ada", LastName: "Lovelace", Email: "ada@ems.test", Role: model.RoleAdmin}
	testEmployee = model.User{ID: 21, FirstName: "Grace", LastName: "Hopper", Email: "grace@ems.test", Role: model.RoleEmployee}
)

// loggedInAs returns a memory store holding a session for user
func loggedInAs(t *testing.T, user model.User) *session.MemoryStore {
	store := session.NewMemoryStore()
	_, err := store.Save(context.Background(), user, "token")
	require.NoError(t, err)
	return store
}
