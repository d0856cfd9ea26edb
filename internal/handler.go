package internal

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/loader"
	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/pages"
	"github.com/syrilster/ems-console/internal/report"
	"github.com/syrilster/ems-console/internal/session"
	"github.com/syrilster/ems-console/internal/util"
)

const (
	supportedFileFormat = ".xlsx"
	maxUploadSize       = 32 << 20
	xlsxContentType     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", mux.Vars(r)["id"])
	}
	return id, nil
}

// optionalPathID returns zero on routes without an id
func optionalPathID(r *http.Request) (int64, error) {
	if _, ok := mux.Vars(r)["id"]; !ok {
		return 0, nil
	}
	return pathID(r)
}

func LoaderHandler(status *loader.Status) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		util.WithBodyAndStatus(status.State(), http.StatusOK, w)
	}
}

func HeaderHandler(store session.Store) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := pages.Header(r.Context(), store)
		if err != nil {
			pages.Respond(w, nil, err)
			return
		}
		util.WithBodyAndStatus(view, http.StatusOK, w)
	}
}

func AdminDashboardHandler(page *pages.AdminDashboard) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.Load(r.Context())
		pages.Respond(w, view, err)
	}
}

//DashboardReportHandler reloads the dashboard and sends it as a workbook with native charts
func DashboardReportHandler(page *pages.AdminDashboard) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := page.Load(ctx)
		if err != nil || view.Failed() {
			pages.Respond(w, view, err)
			return
		}
		data, err := report.DashboardWorkbook(ctx, view.Summary, page.Registry())
		if err != nil {
			log.WithContext(ctx).WithError(err).Error("Failed to build the dashboard workbook")
			pages.Respond(w, nil, err)
			return
		}
		util.WithAttachment("dashboard.xlsx", xlsxContentType, data, w)
	}
}

func EmployeeDashboardHandler(page *pages.EmployeeDashboard) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.Load(r.Context())
		pages.Respond(w, view, err)
	}
}

func ListDepartmentsHandler(page *pages.Departments) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.List(r.Context())
		pages.Respond(w, view, err)
	}
}

func SaveDepartmentHandler(page *pages.Departments) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var form pages.DepartmentForm
		if err := util.DecodeJSON(r, &form); err != nil {
			pages.BadRequest(w, err)
			return
		}
		id, err := optionalPathID(r)
		if err != nil {
			pages.BadRequest(w, err)
			return
		}
		form.ID = id
		out, err := page.Save(r.Context(), form)
		pages.Respond(w, out, err)
	}
}

func DeleteDepartmentHandler(page *pages.Departments) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			pages.BadRequest(w, err)
			return
		}
		out, err := page.Delete(r.Context(), id, r.URL.Query().Get("name"))
		pages.Respond(w, out, err)
	}
}

func ListEmployeesHandler(page *pages.Employees) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var departmentID int64
		if v := r.URL.Query().Get("departmentId"); v != "" {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				pages.BadRequest(w, fmt.Errorf("invalid departmentId %q", v))
				return
			}
			departmentID = id
		}
		view, err := page.List(r.Context(), departmentID)
		pages.Respond(w, view, err)
	}
}

func SaveEmployeeHandler(page *pages.Employees) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var form pages.EmployeeForm
		if err := util.DecodeJSON(r, &form); err != nil {
			pages.BadRequest(w, err)
			return
		}
		id, err := optionalPathID(r)
		if err != nil {
			pages.BadRequest(w, err)
			return
		}
		form.ID = id
		out, err := page.Save(r.Context(), form)
		pages.Respond(w, out, err)
	}
}

func DeleteEmployeeHandler(page *pages.Employees) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			pages.BadRequest(w, err)
			return
		}
		out, err := page.Delete(r.Context(), id, r.URL.Query().Get("name"))
		pages.Respond(w, out, err)
	}
}

//ImportHandler takes a multipart xlsx roster in the "file" field
func ImportHandler(importer RosterImporter) func(res http.ResponseWriter, req *http.Request) {
	return func(res http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		contextLogger := log.WithContext(ctx)

		if err := req.ParseMultipartForm(maxUploadSize); err != nil {
			contextLogger.WithError(err).Error("Failed to parse request body")
			pages.BadRequest(res, err)
			return
		}
		file, fileHeader, err := req.FormFile("file")
		if err != nil {
			contextLogger.WithError(err).Error("Failed to get the file from request")
			pages.BadRequest(res, err)
			return
		}
		defer file.Close()

		if filepath.Ext(fileHeader.Filename) != supportedFileFormat {
			contextLogger.Errorf("Rejected upload %s", fileHeader.Filename)
			pages.BadRequest(res, fmt.Errorf("unable to open the uploaded file. Please confirm the file is in %s format", supportedFileFormat))
			return
		}

		buf := bytes.NewBuffer(nil)
		if _, err := io.Copy(buf, file); err != nil {
			contextLogger.WithError(err).Error("Failed to copy file contents to buffer")
			util.WithBodyAndStatus(nil, http.StatusInternalServerError, res)
			return
		}

		result, err := importer.ImportRoster(ctx, buf.Bytes())
		if err != nil {
			if _, status := pages.ErrorView(err); status != http.StatusInternalServerError {
				pages.Respond(res, nil, err)
				return
			}
			pages.BadRequest(res, err)
			return
		}
		if len(result.Errors) > 0 {
			contextLogger.Error("There were some errors during the roster import")
			util.WithBodyAndStatus(result, http.StatusUnprocessableEntity, res)
			return
		}
		util.WithBodyAndStatus(result, http.StatusOK, res)
	}
}

func MyLeavesHandler(page *pages.MyLeaves) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.List(r.Context())
		pages.Respond(w, view, err)
	}
}

func ApplyLeaveHandler(page *pages.MyLeaves) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var form pages.LeaveForm
		if err := util.DecodeJSON(r, &form); err != nil {
			pages.BadRequest(w, err)
			return
		}
		out, err := page.Apply(r.Context(), form)
		pages.Respond(w, out, err)
	}
}

func CancelLeaveHandler(page *pages.MyLeaves) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			pages.BadRequest(w, err)
			return
		}
		out, err := page.Cancel(r.Context(), id)
		pages.Respond(w, out, err)
	}
}

func AdminLeavesHandler(page *pages.AdminLeaves) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		view, err := page.List(r.Context(), model.LeaveStatus(r.URL.Query().Get("status")))
		pages.Respond(w, view, err)
	}
}

//LeaveReportHandler exports the filtered leave list as a workbook
func LeaveReportHandler(page *pages.AdminLeaves) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := page.List(ctx, model.LeaveStatus(r.URL.Query().Get("status")))
		if err != nil || view.Failed() {
			pages.Respond(w, view, err)
			return
		}
		data, err := report.LeaveWorkbook(ctx, view.Raw)
		if err != nil {
			log.WithContext(ctx).WithError(err).Error("Failed to build the leave workbook")
			pages.Respond(w, nil, err)
			return
		}
		util.WithAttachment("leave_requests.xlsx", xlsxContentType, data, w)
	}
}

func LeaveDetailsHandler(page *pages.AdminLeaves) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			pages.BadRequest(w, err)
			return
		}
		view, err := page.Details(r.Context(), id)
		pages.Respond(w, view, err)
	}
}

func LeaveActionHandler(page *pages.AdminLeaves) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			pages.BadRequest(w, err)
			return
		}
		var form pages.ActionForm
		if err := util.DecodeJSON(r, &form); err != nil {
			pages.BadRequest(w, err)
			return
		}
		out, err := page.Action(r.Context(), id, form)
		pages.Respond(w, out, err)
	}
}
