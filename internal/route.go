package internal

import (
	"context"
	"net/http"

	"github.com/syrilster/ems-console/internal/config"
	"github.com/syrilster/ems-console/internal/loader"
	"github.com/syrilster/ems-console/internal/pages"
	"github.com/syrilster/ems-console/internal/session"
)

type RosterImporter interface {
	ImportRoster(ctx context.Context, data []byte) (*ImportResult, error)
}

// Pages groups the controllers served by the console
type Pages struct {
	Store             session.Store
	Loader            *loader.Status
	AdminDashboard    *pages.AdminDashboard
	EmployeeDashboard *pages.EmployeeDashboard
	Departments       *pages.Departments
	Employees         *pages.Employees
	MyLeaves          *pages.MyLeaves
	AdminLeaves       *pages.AdminLeaves
	Importer          RosterImporter
}

const idPattern = "{id:[0-9]+}"

func Routes(p Pages) []config.Route {
	return []config.Route{
		{Path: "/loader", Method: http.MethodGet, Handler: LoaderHandler(p.Loader)},
		{Path: "/header", Method: http.MethodGet, Handler: HeaderHandler(p.Store)},

		{Path: "/dashboard/admin", Method: http.MethodGet, Handler: AdminDashboardHandler(p.AdminDashboard)},
		{Path: "/dashboard/admin/report", Method: http.MethodGet, Handler: DashboardReportHandler(p.AdminDashboard)},
		{Path: "/dashboard/employee", Method: http.MethodGet, Handler: EmployeeDashboardHandler(p.EmployeeDashboard)},

		{Path: "/departments", Method: http.MethodGet, Handler: ListDepartmentsHandler(p.Departments)},
		{Path: "/departments", Method: http.MethodPost, Handler: SaveDepartmentHandler(p.Departments)},
		{Path: "/departments/" + idPattern, Method: http.MethodPut, Handler: SaveDepartmentHandler(p.Departments)},
		{Path: "/departments/" + idPattern, Method: http.MethodDelete, Handler: DeleteDepartmentHandler(p.Departments)},

		{Path: "/employees", Method: http.MethodGet, Handler: ListEmployeesHandler(p.Employees)},
		{Path: "/employees", Method: http.MethodPost, Handler: SaveEmployeeHandler(p.Employees)},
		{Path: "/employees/import", Method: http.MethodPost, Handler: ImportHandler(p.Importer)},
		{Path: "/employees/" + idPattern, Method: http.MethodPut, Handler: SaveEmployeeHandler(p.Employees)},
		{Path: "/employees/" + idPattern, Method: http.MethodDelete, Handler: DeleteEmployeeHandler(p.Employees)},

		{Path: "/leaves/mine", Method: http.MethodGet, Handler: MyLeavesHandler(p.MyLeaves)},
		{Path: "/leaves/mine", Method: http.MethodPost, Handler: ApplyLeaveHandler(p.MyLeaves)},
		{Path: "/leaves/mine/" + idPattern + "/cancel", Method: http.MethodPut, Handler: CancelLeaveHandler(p.MyLeaves)},
		{Path: "/leaves/admin", Method: http.MethodGet, Handler: AdminLeavesHandler(p.AdminLeaves)},
		{Path: "/leaves/admin/report", Method: http.MethodGet, Handler: LeaveReportHandler(p.AdminLeaves)},
		{Path: "/leaves/admin/" + idPattern, Method: http.MethodGet, Handler: LeaveDetailsHandler(p.AdminLeaves)},
		{Path: "/leaves/admin/" + idPattern + "/action", Method: http.MethodPut, Handler: LeaveActionHandler(p.AdminLeaves)},
	}
}
