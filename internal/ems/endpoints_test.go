package ems

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syrilster/ems-console/internal/model"
)

type expectation struct {
	method  string
	uri     string
	adminID string
	body    string
}

// expect checks the request with assert, which is safe outside the test goroutine
func expect(t *testing.T, e expectation, status int, response string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, e.method, r.Method)
		assert.Equal(t, e.uri, r.RequestURI)
		assert.Equal(t, e.adminID, r.Header.Get(HeaderAdminID))
		body, err := ioutil.ReadAll(r.Body)
		assert.NoError(t, err)
		if e.body == "" {
			assert.Empty(t, body)
		} else {
			assert.JSONEq(t, e.body, string(body))
		}
		if response != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}
}

func TestLogin(t *testing.T) {
	c, l := newTestClient(t, expect(t, expectation{
		method: http.MethodPost,
		uri:    "/api/auth/login",
		body:   `{"email":"admin@ems.test","password":"secret"}`,
	}, http.StatusOK, `{"id":1,"firstName":"Ada","lastName":"King","email":"admin@ems.test","role":"ADMIN"}`))

	got, err := c.Login(context.Background(), model.Credentials{Email: "admin@ems.test", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, &model.User{ID: 1, FirstName: "Ada", LastName: "King", Email: "admin@ems.test", Role: model.RoleAdmin}, got)
	require.Equal(t, []string{"Processing..."}, l.messages)
}

func TestLogin_EmptyResponse(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "text", handler: respond(http.StatusOK, "text/plain", "ok")},
		{name: "json-null", handler: respond(http.StatusOK, "application/json", "null")},
	}

	for _, test := range tests {
		tt := test
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			got, err := c.Login(context.Background(), model.Credentials{})
			require.ErrorIs(t, err, ErrEmptyResponse)
			require.Nil(t, got)
		})
	}
}

func TestRegister(t *testing.T) {
	dept, admin := int64(2), int64(1)
	salary := 45000.0
	c, l := newTestClient(t, expect(t, expectation{
		method: http.MethodPost,
		uri:    "/api/auth/register",
		body: `{"firstName":"Ravi","lastName":"Das","email":"ravi@ems.test","password":"pw","role":"EMPLOYEE",
			"hireDate":"2024-02-01","salary":45000,"departmentId":2,"managedByAdminId":1}`,
	}, http.StatusOK, `{"message":"Registration successful. Please check your email for OTP.","email":"ravi@ems.test"}`))

	got, err := c.Register(context.Background(), model.RegistrationRequest{
		FirstName:        "Ravi",
		LastName:         "Das",
		Email:            "ravi@ems.test",
		Password:         "pw",
		Role:             model.RoleEmployee,
		HireDate:         model.NewDate(2024, time.February, 1),
		Salary:           &salary,
		DepartmentID:     &dept,
		ManagedByAdminID: &admin,
	})
	require.NoError(t, err)
	require.Equal(t, "ravi@ems.test", got.Email)
	require.Equal(t, []string{"Creating account..."}, l.messages)
}

func TestVerifyOTP(t *testing.T) {
	c, _ := newTestClient(t, expect(t, expectation{
		method: http.MethodPost,
		uri:    "/api/auth/verify-otp",
		body:   `{"email":"ravi@ems.test","otp":"123456"}`,
	}, http.StatusBadRequest, `{"message":"Invalid OTP.","errorCode":"INVALID_OTP"}`))

	_, err := c.VerifyOTP(context.Background(), "ravi@ems.test", "123456")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.Equal(t, "INVALID_OTP", apiErr.ErrorCode)
}

func TestResendOTP(t *testing.T) {
	tests := []struct {
		name     string
		response http.HandlerFunc
		want     string
	}{
		{name: "plain-text", response: respond(http.StatusOK, "text/plain", "New OTP sent"), want: ""},
		{name: "json-string", response: respond(http.StatusOK, "application/json", `"New OTP sent to ravi@ems.test"`), want: "New OTP sent to ravi@ems.test"},
		{name: "json-object", response: respond(http.StatusOK, "application/json", `{"message":"Sent"}`), want: "Sent"},
	}

	for _, test := range tests {
		tt := test
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.response)
			got, err := c.ResendOTP(context.Background(), "ravi@ems.test")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestListAdmins_NoLoader(t *testing.T) {
	c, l := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/admins/list"},
		http.StatusOK, `[{"id":1,"fullName":"Ada King"}]`))

	got, err := c.ListAdmins(context.Background())
	require.NoError(t, err)
	require.Equal(t, []model.AdminSummary{{ID: 1, FullName: "Ada King"}}, got)
	require.Zero(t, l.shows)
}

func TestDepartmentEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("all", func(t *testing.T) {
		c, l := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/departments/all"}, http.StatusOK, ""))
		got, err := c.AllDepartments(ctx)
		require.NoError(t, err)
		require.Equal(t, []model.Department{}, got)
		require.Zero(t, l.shows)
	})

	t.Run("managed", func(t *testing.T) {
		c, l := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/departments/my-managed", adminID: "9"},
			http.StatusOK, `[{"id":3,"name":"Finance"}]`))
		got, err := c.ManagedDepartments(ctx, 9, true)
		require.NoError(t, err)
		require.Equal(t, []model.Department{{ID: 3, Name: "Finance"}}, got)
		require.Equal(t, []string{"Loading departments..."}, l.messages)
	})

	t.Run("create", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodPost, uri: "/api/departments", adminID: "9", body: `{"name":"Legal"}`},
			http.StatusCreated, `{"id":4,"name":"Legal"}`))
		got, err := c.CreateDepartment(ctx, 9, model.Department{ID: 99, Name: "Legal"})
		require.NoError(t, err)
		require.Equal(t, &model.Department{ID: 4, Name: "Legal"}, got)
	})

	t.Run("update", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodPut, uri: "/api/departments/4", adminID: "9", body: `{"name":"Legal & Risk"}`},
			http.StatusOK, `{"id":4,"name":"Legal & Risk"}`))
		got, err := c.UpdateDepartment(ctx, 9, 4, model.Department{Name: "Legal & Risk"})
		require.NoError(t, err)
		require.Equal(t, "Legal & Risk", got.Name)
	})

	t.Run("delete", func(t *testing.T) {
		c, l := newTestClient(t, expect(t, expectation{method: http.MethodDelete, uri: "/api/departments/4", adminID: "9"}, http.StatusOK, ""))
		require.NoError(t, c.DeleteDepartment(ctx, 9, 4))
		require.Equal(t, []string{"Deleting department..."}, l.messages)
	})

	t.Run("get-forbidden", func(t *testing.T) {
		c, _ := newTestClient(t, respond(http.StatusForbidden, "text/plain", "Admin does not manage this department"))
		_, err := c.GetDepartment(ctx, 9, 4)
		require.EqualError(t, err, "Admin does not manage this department")
	})
}

func TestEmployeeEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/employees", adminID: "1"},
			http.StatusOK, `[{"id":5,"firstName":"Ravi","lastName":"Das","email":"ravi@ems.test","role":"EMPLOYEE","departmentId":2,"hireDate":[2024,2,1]}]`))
		got, err := c.ListEmployees(ctx, 1)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Ravi Das", got[0].FullName())
		require.Equal(t, int64(2), *got[0].DepartmentID)
		require.Equal(t, "Feb 1, 2024", got[0].HireDate.Format(false))
	})

	t.Run("create-drops-id", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodPost, uri: "/api/employees", adminID: "1",
			body: `{"firstName":"Mei","lastName":"Lin","email":"mei@ems.test","password":"pw","gender":"FEMALE","role":"EMPLOYEE"}`},
			http.StatusCreated, `{"id":6,"firstName":"Mei","lastName":"Lin","email":"mei@ems.test","role":"EMPLOYEE"}`))
		got, err := c.CreateEmployee(ctx, 1, model.Employee{ID: 42, FirstName: "Mei", LastName: "Lin", Email: "mei@ems.test", Password: "pw", Gender: "FEMALE", Role: model.RoleEmployee})
		require.NoError(t, err)
		require.Equal(t, int64(6), got.ID)
	})

	t.Run("update", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodPut, uri: "/api/employees/6", adminID: "1",
			body: `{"firstName":"Mei","lastName":"Lin","email":"mei@ems.test","role":"EMPLOYEE"}`}, http.StatusOK, ""))
		got, err := c.UpdateEmployee(ctx, 1, 6, model.Employee{FirstName: "Mei", LastName: "Lin", Email: "mei@ems.test", Role: model.RoleEmployee})
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("delete", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodDelete, uri: "/api/employees/6", adminID: "1"}, http.StatusOK, ""))
		require.NoError(t, c.DeleteEmployee(ctx, 1, 6))
	})

	t.Run("get", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/employees/6", adminID: "1"},
			http.StatusOK, `{"id":6,"firstName":"Mei"}`))
		got, err := c.GetEmployee(ctx, 1, 6)
		require.NoError(t, err)
		require.Equal(t, "Mei", got.FullName())
	})
}

func TestLeaveEndpoints(t *testing.T) {
	ctx := context.Background()

	t.Run("apply", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodPost, uri: "/api/leaves/apply",
			body: `{"employeeId":5,"startDate":"2024-03-01","endDate":"2024-03-03","reason":"Family trip"}`},
			http.StatusCreated, `{"id":11,"employeeId":5,"status":"PENDING"}`))
		got, err := c.ApplyLeave(ctx, model.LeaveRequest{
			EmployeeID: 5,
			StartDate:  model.NewDate(2024, time.March, 1),
			EndDate:    model.NewDate(2024, time.March, 3),
			Reason:     "Family trip",
			Status:     model.LeaveApproved,
		})
		require.NoError(t, err)
		require.Equal(t, model.LeavePending, got.Status)
	})

	t.Run("mine", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/leaves/my-requests/5"},
			http.StatusOK, `[{"id":11,"status":"PENDING","createdAt":[2024,2,20,9,15,0]}]`))
		got, err := c.MyLeaveRequests(ctx, 5)
		require.NoError(t, err)
		require.Equal(t, "Feb 20, 2024 09:15", got[0].CreatedAt.Format(true))
	})

	t.Run("cancel", func(t *testing.T) {
		c, l := newTestClient(t, expect(t, expectation{method: http.MethodPut, uri: "/api/leaves/my-requests/11/cancel/5"},
			http.StatusOK, `{"id":11,"status":"CANCELLED"}`))
		got, err := c.CancelLeave(ctx, 5, 11)
		require.NoError(t, err)
		require.Equal(t, model.LeaveCancelled, got.Status)
		require.Equal(t, []string{"Cancelling request..."}, l.messages)
	})

	t.Run("admin-all", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/leaves/admin/all", adminID: "1"}, http.StatusOK, `[]`))
		got, err := c.AdminLeaveRequests(ctx, 1, "")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	t.Run("admin-all-filtered", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/leaves/admin/all?status=PENDING", adminID: "1"}, http.StatusOK, `[{"id":11}]`))
		got, err := c.AdminLeaveRequests(ctx, 1, model.LeavePending)
		require.NoError(t, err)
		require.Len(t, got, 1)
	})

	t.Run("admin-get", func(t *testing.T) {
		c, _ := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/leaves/admin/11", adminID: "1"},
			http.StatusOK, `{"id":11,"employeeName":"Ravi Das"}`))
		got, err := c.AdminLeaveRequest(ctx, 1, 11)
		require.NoError(t, err)
		require.Equal(t, "Ravi Das", got.EmployeeName)
	})

	t.Run("action", func(t *testing.T) {
		c, l := newTestClient(t, expect(t, expectation{method: http.MethodPut, uri: "/api/leaves/admin/11/action", adminID: "1",
			body: `{"newStatus":"REJECTED","adminRemarks":"Quarter close"}`}, http.StatusOK, `{"id":11,"status":"REJECTED"}`))
		got, err := c.ActionLeave(ctx, 1, 11, model.LeaveAction{NewStatus: model.LeaveRejected, AdminRemarks: "Quarter close"})
		require.NoError(t, err)
		require.Equal(t, model.LeaveRejected, got.Status)
		require.Equal(t, []string{"Processing rejected..."}, l.messages)
	})
}

func TestDashboardSummary(t *testing.T) {
	summary := model.DashboardSummary{
		TotalEmployees:             12,
		TotalDepartments:           3,
		AverageEmployeeAge:         34.25,
		AverageSalaryPerDepartment: []model.AverageSalary{{DepartmentName: "Finance", AverageSalary: 70000}},
		EmployeeCountByRole:        map[string]int64{"ADMIN": 2, "EMPLOYEE": 10},
	}
	payload, err := json.Marshal(summary)
	require.NoError(t, err)

	c, l := newTestClient(t, expect(t, expectation{method: http.MethodGet, uri: "/api/dashboard/summary", adminID: "1"}, http.StatusOK, string(payload)))
	got, err := c.DashboardSummary(context.Background(), 1)
	require.NoError(t, err)
	require.Equal(t, &summary, got)
	require.Equal(t, []string{"Loading dashboard..."}, l.messages)
}

func TestDashboardSummary_NullBody(t *testing.T) {
	c, _ := newTestClient(t, respond(http.StatusOK, "application/json", "null"))
	got, err := c.DashboardSummary(context.Background(), 1)
	require.ErrorIs(t, err, ErrEmptyResponse)
	require.Nil(t, got)
}
