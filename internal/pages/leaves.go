package pages

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

type LeaveForm struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Reason    string `json:"reason"`
}

type ActionForm struct {
	Status  model.LeaveStatus `json:"status"`
	Remarks string            `json:"remarks"`
}

// LeaveRow is one line of a leave table, dates already formatted
type LeaveRow struct {
	ID            int64  `json:"id"`
	EmployeeName  string `json:"employeeName,omitempty"`
	EmployeeEmail string `json:"employeeEmail,omitempty"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	Submitted     string `json:"submitted"`
	AdminRemarks  string `json:"adminRemarks,omitempty"`
	Cancellable   bool   `json:"cancellable,omitempty"`
	Actionable    bool   `json:"actionable,omitempty"`
}

type LeavesView struct {
	Outcome
	Requests []LeaveRow           `json:"requests"`
	Raw      []model.LeaveRequest `json:"-"`
}

// LeaveDetailView backs the action dialog. ReadOnly is set once the request left PENDING.
type LeaveDetailView struct {
	Outcome
	Title        string `json:"title"`
	LeaveID      int64  `json:"leaveId"`
	EmployeeName string `json:"employeeName"`
	Dates        string `json:"dates"`
	Reason       string `json:"reason"`
	AdminRemarks string `json:"adminRemarks"`
	ReadOnly     bool   `json:"readOnly"`
}

type MyLeaves struct {
	client ems.ClientInterface
	store  session.Store
	apply  submitGuard
}

func NewMyLeaves(client ems.ClientInterface, store session.Store) *MyLeaves {
	return &MyLeaves{client: client, store: store}
}

//Apply submits a leave request on behalf of the logged in employee
func (p *MyLeaves) Apply(ctx context.Context, form LeaveForm) (Outcome, error) {
	record, err := requireRole(ctx, p.store, model.RoleEmployee)
	if err != nil {
		return Outcome{}, err
	}

	req := model.LeaveRequest{EmployeeID: record.ID, Reason: strings.TrimSpace(form.Reason)}
	if req.StartDate, err = model.ParseDate(form.StartDate); err != nil {
		return Outcome{Message: failure(err.Error())}, nil
	}
	if req.EndDate, err = model.ParseDate(form.EndDate); err != nil {
		return Outcome{Message: failure(err.Error())}, nil
	}

	release, err := p.apply.acquire()
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	if _, err := p.client.ApplyLeave(ctx, req); err != nil {
		log.WithContext(ctx).WithError(err).Error("Error applying for leave")
		return Outcome{Message: failure(errorText(err, "Failed to submit leave request."))}, nil
	}
	return Outcome{Message: success("Leave request submitted successfully! You will be notified of updates.")}, nil
}

func (p *MyLeaves) List(ctx context.Context) (*LeavesView, error) {
	record, err := requireRole(ctx, p.store, model.RoleEmployee)
	if err != nil {
		return nil, err
	}

	requests, err := p.client.MyLeaveRequests(ctx, record.ID)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Error fetching my leave requests")
		return &LeavesView{
			Outcome:  Outcome{Message: failure(errorText(err, "Failed to load your leave requests."))},
			Requests: []LeaveRow{},
		}, nil
	}

	view := &LeavesView{Requests: make([]LeaveRow, 0, len(requests)), Raw: requests}
	for _, r := range requests {
		row := leaveRow(r)
		row.AdminRemarks = orDefault(r.AdminRemarks, "N/A")
		row.Cancellable = r.Status == model.LeavePending
		view.Requests = append(view.Requests, row)
	}
	if len(requests) == 0 {
		view.Message = info("You have not submitted any leave requests yet.")
	}
	return view, nil
}

func (p *MyLeaves) Cancel(ctx context.Context, leaveID int64) (Outcome, error) {
	record, err := requireRole(ctx, p.store, model.RoleEmployee)
	if err != nil {
		return Outcome{}, err
	}

	if _, err := p.client.CancelLeave(ctx, record.ID, leaveID); err != nil {
		log.WithContext(ctx).WithError(err).Errorf("Error cancelling leave request %d", leaveID)
		return Outcome{Message: failure(errorText(err, "Failed to cancel leave request."))}, nil
	}
	return Outcome{Message: success("Leave request cancelled successfully.")}, nil
}

type AdminLeaves struct {
	client ems.ClientInterface
	store  session.Store
	action submitGuard
}

func NewAdminLeaves(client ems.ClientInterface, store session.Store) *AdminLeaves {
	return &AdminLeaves{client: client, store: store}
}

// List returns the leave requests of the admin's employees. An empty status lists all of them.
func (p *AdminLeaves) List(ctx context.Context, status model.LeaveStatus) (*LeavesView, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	requests, err := p.client.AdminLeaveRequests(ctx, record.ID, status)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Error fetching leave requests")
		return &LeavesView{
			Outcome:  Outcome{Message: failure(errorText(err, "Failed to load leave requests."))},
			Requests: []LeaveRow{},
		}, nil
	}

	view := &LeavesView{Requests: make([]LeaveRow, 0, len(requests)), Raw: requests}
	for _, r := range requests {
		row := leaveRow(r)
		row.EmployeeName = orDefault(r.EmployeeName, "N/A")
		row.EmployeeEmail = orDefault(r.EmployeeEmail, "N/A")
		row.Actionable = r.Status == model.LeavePending
		view.Requests = append(view.Requests, row)
	}
	if len(requests) == 0 {
		view.Message = info("No leave requests found for the selected filter.")
	}
	return view, nil
}

func (p *AdminLeaves) Details(ctx context.Context, leaveID int64) (*LeaveDetailView, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	req, err := p.client.AdminLeaveRequest(ctx, record.ID, leaveID)
	if err != nil {
		log.WithContext(ctx).WithError(err).Errorf("Error loading leave request %d", leaveID)
		return &LeaveDetailView{
			Outcome: Outcome{Message: failure(errorText(err, "Failed to load leave request."))},
			LeaveID: leaveID,
		}, nil
	}

	view := &LeaveDetailView{
		Title:        "Action Leave Request",
		LeaveID:      leaveID,
		EmployeeName: orDefault(req.EmployeeName, "N/A"),
		Dates:        fmt.Sprintf("%s to %s", req.StartDate.Format(false), req.EndDate.Format(false)),
		Reason:       orDefault(req.Reason, "N/A"),
		AdminRemarks: req.AdminRemarks,
	}
	if req.Status != model.LeavePending {
		view.Title = "Leave Request Details"
		view.ReadOnly = true
	}
	return view, nil
}

//Action approves or rejects a pending request
func (p *AdminLeaves) Action(ctx context.Context, leaveID int64, form ActionForm) (Outcome, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return Outcome{}, err
	}
	if form.Status != model.LeaveApproved && form.Status != model.LeaveRejected {
		return Outcome{Message: failure(fmt.Sprintf("Unsupported leave action %q.", form.Status))}, nil
	}

	release, err := p.action.acquire()
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	verb, done := "approve", "approved"
	if form.Status == model.LeaveRejected {
		verb, done = "reject", "rejected"
	}
	action := model.LeaveAction{NewStatus: form.Status, AdminRemarks: strings.TrimSpace(form.Remarks)}
	if _, err := p.client.ActionLeave(ctx, record.ID, leaveID, action); err != nil {
		log.WithContext(ctx).WithError(err).Errorf("Error performing leave action on %d", leaveID)
		return Outcome{Message: failure(errorText(err, fmt.Sprintf("Failed to %s leave request.", verb)))}, nil
	}
	return Outcome{Message: success(fmt.Sprintf("Leave request successfully %s.", done))}, nil
}

func leaveRow(r model.LeaveRequest) LeaveRow {
	return LeaveRow{
		ID:        r.ID,
		StartDate: r.StartDate.Format(false),
		EndDate:   r.EndDate.Format(false),
		Reason:    orDefault(r.Reason, "N/A"),
		Status:    orDefault(string(r.Status), "UNKNOWN"),
		Submitted: r.CreatedAt.Format(true),
	}
}
