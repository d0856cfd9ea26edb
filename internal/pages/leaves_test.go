package pages

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/model"
)

func TestMyLeaves_Apply(t *testing.T) {
	client := new(MockEMSClient)
	client.On("ApplyLeave", mock.Anything, mock.MatchedBy(func(r model.LeaveRequest) bool {
		return r.EmployeeID == 21 && r.Reason == "Family trip" &&
			r.StartDate.String() == "2024-02-01" && r.EndDate.String() == "2024-02-03"
	})).Return(&model.LeaveRequest{ID: 5, Status: model.LeavePending}, nil)

	out, err := NewMyLeaves(client, loggedInAs(t, testEmployee)).Apply(context.Background(), LeaveForm{
		StartDate: "2024-02-01",
		EndDate:   "2024-02-03",
		Reason:    "  Family trip ",
	})
	require.NoError(t, err)
	assert.Equal(t, success("Leave request submitted successfully! You will be notified of updates."), out.Message)
	client.AssertExpectations(t)
}

func TestMyLeaves_ApplyFailure(t *testing.T) {
	client := new(MockEMSClient)
	client.On("ApplyLeave", mock.Anything, mock.Anything).Return(nil, &ems.APIError{StatusCode: 400, Message: "End date must be after start date"})

	out, err := NewMyLeaves(client, loggedInAs(t, testEmployee)).Apply(context.Background(), LeaveForm{StartDate: "2024-02-03", EndDate: "2024-02-01"})
	require.NoError(t, err)
	assert.Equal(t, failure("End date must be after start date"), out.Message)
}

func TestMyLeaves_AdminForbidden(t *testing.T) {
	_, err := NewMyLeaves(new(MockEMSClient), loggedInAs(t, testAdmin)).List(context.Background())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMyLeaves_List(t *testing.T) {
	client := new(MockEMSClient)
	client.On("MyLeaveRequests", mock.Anything, int64(21)).Return([]model.LeaveRequest{
		{ID: 1, StartDate: model.NewDate(2024, 2, 1), EndDate: model.NewDate(2024, 2, 3), Status: model.LeavePending},
		{ID: 2, Reason: "Flu", Status: model.LeaveRejected, AdminRemarks: "Overlaps release"},
	}, nil)

	view, err := NewMyLeaves(client, loggedInAs(t, testEmployee)).List(context.Background())
	require.NoError(t, err)
	assert.Nil(t, view.Message)
	require.Len(t, view.Requests, 2)

	assert.Equal(t, LeaveRow{
		ID:           1,
		StartDate:    "Feb 1, 2024",
		EndDate:      "Feb 3, 2024",
		Reason:       "N/A",
		Status:       "PENDING",
		Submitted:    "N/A",
		AdminRemarks: "N/A",
		Cancellable:  true,
	}, view.Requests[0])
	assert.False(t, view.Requests[1].Cancellable)
	assert.Equal(t, "Overlaps release", view.Requests[1].AdminRemarks)
}

func TestMyLeaves_ListEmpty(t *testing.T) {
	client := new(MockEMSClient)
	client.On("MyLeaveRequests", mock.Anything, int64(21)).Return([]model.LeaveRequest{}, nil)

	view, err := NewMyLeaves(client, loggedInAs(t, testEmployee)).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, info("You have not submitted any leave requests yet."), view.Message)
}

func TestMyLeaves_Cancel(t *testing.T) {
	client := new(MockEMSClient)
	client.On("CancelLeave", mock.Anything, int64(21), int64(1)).Return(nil, nil).Once()
	client.On("CancelLeave", mock.Anything, int64(21), int64(2)).Return(nil, errors.New("")).Once()
	page := NewMyLeaves(client, loggedInAs(t, testEmployee))

	out, err := page.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, success("Leave request cancelled successfully."), out.Message)

	out, err = page.Cancel(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, failure("Failed to cancel leave request."), out.Message)
}

func TestAdminLeaves_List(t *testing.T) {
	client := new(MockEMSClient)
	client.On("AdminLeaveRequests", mock.Anything, int64(7), model.LeavePending).Return([]model.LeaveRequest{
		{ID: 1, EmployeeName: "Grace Hopper", Status: model.LeavePending, CreatedAt: &model.Date{}},
		{ID: 2},
	}, nil)

	view, err := NewAdminLeaves(client, loggedInAs(t, testAdmin)).List(context.Background(), model.LeavePending)
	require.NoError(t, err)
	require.Len(t, view.Requests, 2)
	assert.Equal(t, "Grace Hopper", view.Requests[0].EmployeeName)
	assert.Equal(t, "N/A", view.Requests[0].EmployeeEmail)
	assert.True(t, view.Requests[0].Actionable)
	assert.Equal(t, "UNKNOWN", view.Requests[1].Status)
	assert.False(t, view.Requests[1].Actionable)
	assert.Len(t, view.Raw, 2)
}

func TestAdminLeaves_ListEmpty(t *testing.T) {
	client := new(MockEMSClient)
	client.On("AdminLeaveRequests", mock.Anything, int64(7), model.LeaveStatus("")).Return(nil, nil)

	view, err := NewAdminLeaves(client, loggedInAs(t, testAdmin)).List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, view.Requests)
	assert.Equal(t, info("No leave requests found for the selected filter."), view.Message)
}

func TestAdminLeaves_Details(t *testing.T) {
	tests := []struct {
		name         string
		status       model.LeaveStatus
		wantTitle    string
		wantReadOnly bool
	}{
		{name: "pending", status: model.LeavePending, wantTitle: "Action Leave Request"},
		{name: "approved", status: model.LeaveApproved, wantTitle: "Leave Request Details", wantReadOnly: true},
	}

	for _, test := range tests {
		tt := test
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockEMSClient)
			client.On("AdminLeaveRequest", mock.Anything, int64(7), int64(9)).Return(&model.LeaveRequest{
				ID:        9,
				StartDate: model.NewDate(2024, 2, 1),
				EndDate:   model.NewDate(2024, 2, 3),
				Status:    tt.status,
			}, nil)

			view, err := NewAdminLeaves(client, loggedInAs(t, testAdmin)).Details(context.Background(), 9)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, view.Title)
			assert.Equal(t, tt.wantReadOnly, view.ReadOnly)
			assert.Equal(t, "Feb 1, 2024 to Feb 3, 2024", view.Dates)
			assert.Equal(t, "N/A", view.EmployeeName)
			assert.Equal(t, "N/A", view.Reason)
		})
	}
}

func TestAdminLeaves_Action(t *testing.T) {
	tests := []struct {
		name        string
		form        ActionForm
		err         error
		wantCall    bool
		wantMessage *Message
	}{
		{
			name:        "approve",
			form:        ActionForm{Status: model.LeaveApproved, Remarks: " enjoy "},
			wantCall:    true,
			wantMessage: success("Leave request successfully approved."),
		},
		{
			name:        "reject",
			form:        ActionForm{Status: model.LeaveRejected},
			wantCall:    true,
			wantMessage: success("Leave request successfully rejected."),
		},
		{
			name:        "reject-fails",
			form:        ActionForm{Status: model.LeaveRejected},
			err:         errors.New(""),
			wantCall:    true,
			wantMessage: failure("Failed to reject leave request."),
		},
		{
			name:        "cancel-not-allowed",
			form:        ActionForm{Status: model.LeaveCancelled},
			wantMessage: failure(`Unsupported leave action "CANCELLED".`),
		},
	}

	for _, test := range tests {
		tt := test
		t.Run(tt.name, func(t *testing.T) {
			client := new(MockEMSClient)
			action := model.LeaveAction{NewStatus: tt.form.Status, AdminRemarks: "enjoy"}
			if tt.form.Remarks == "" {
				action.AdminRemarks = ""
			}
			client.On("ActionLeave", mock.Anything, int64(7), int64(9), action).Return(nil, tt.err)

			out, err := NewAdminLeaves(client, loggedInAs(t, testAdmin)).Action(context.Background(), 9, tt.form)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMessage, out.Message)
			if tt.wantCall {
				client.AssertExpectations(t)
			} else {
				client.AssertNotCalled(t, "ActionLeave", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}
