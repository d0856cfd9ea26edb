package ems

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/syrilster/ems-console/internal/model"
)

const leavesPath = "/api/leaves"

func (c *client) ApplyLeave(ctx context.Context, req model.LeaveRequest) (*model.LeaveRequest, error) {
	body := model.LeaveRequest{
		EmployeeID: req.EmployeeID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	}
	return optional[model.LeaveRequest](ctx, c, Request{
		Path:          leavesPath + "/apply",
		Method:        http.MethodPost,
		Body:          body,
		LoaderMessage: "Submitting request...",
	})
}

func (c *client) MyLeaveRequests(ctx context.Context, employeeID int64) ([]model.LeaveRequest, error) {
	return list[model.LeaveRequest](ctx, c, Request{
		Path:          fmt.Sprintf("%s/my-requests/%d", leavesPath, employeeID),
		LoaderMessage: "Fetching requests...",
	})
}

func (c *client) CancelLeave(ctx context.Context, employeeID int64, leaveID int64) (*model.LeaveRequest, error) {
	return optional[model.LeaveRequest](ctx, c, Request{
		Path:          fmt.Sprintf("%s/my-requests/%d/cancel/%d", leavesPath, leaveID, employeeID),
		Method:        http.MethodPut,
		LoaderMessage: "Cancelling request...",
	})
}

// AdminLeaveRequests lists the requests visible to the admin, filtered by status when one is given
func (c *client) AdminLeaveRequests(ctx context.Context, adminID int64, status model.LeaveStatus) ([]model.LeaveRequest, error) {
	path := leavesPath + "/admin/all"
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	return list[model.LeaveRequest](ctx, c, Request{
		Path:          path,
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Fetching leave requests...",
	})
}

func (c *client) AdminLeaveRequest(ctx context.Context, adminID int64, leaveID int64) (*model.LeaveRequest, error) {
	return fetch[model.LeaveRequest](ctx, c, Request{
		Path:          fmt.Sprintf("%s/admin/%d", leavesPath, leaveID),
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Loading leave request...",
	})
}

func (c *client) ActionLeave(ctx context.Context, adminID int64, leaveID int64, action model.LeaveAction) (*model.LeaveRequest, error) {
	return optional[model.LeaveRequest](ctx, c, Request{
		Path:          fmt.Sprintf("%s/admin/%d/action", leavesPath, leaveID),
		Method:        http.MethodPut,
		Body:          action,
		Headers:       adminHeaders(adminID),
		LoaderMessage: fmt.Sprintf("Processing %s...", strings.ToLower(string(action.NewStatus))),
	})
}
