// Package report builds the spreadsheets the console exports and imports, and mails status reports
package report

import (
	"context"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"github.com/syrilster/ems-console/internal/charts"
	"github.com/syrilster/ems-console/internal/model"
)

const (
	defaultSheet = "Sheet1"
	LeaveSheet   = "Leaves"
	SummarySheet = "Summary"
	ChartSheet   = "Charts"
	StatusSheet  = "Import"

	// rows kept free for each chart drawn next to its data block
	chartBlockRows = 18
)

var leaveHeader = []interface{}{"ID", "Employee", "Email", "Start Date", "End Date", "Reason", "Status", "Submitted", "Admin Remarks", "Actioned By"}

type styles struct {
	header int
	alert  int
}

func newWorkbook(sheet string) (*excelize.File, *styles, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, nil, err
	}
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Family: "Liberation Serif"}})
	if err != nil {
		return nil, nil, err
	}
	alert, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "FF0000", Family: "Liberation Serif"}})
	if err != nil {
		return nil, nil, err
	}
	return f, &styles{header: header, alert: alert}, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}, style int) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return err
	}
	if style == 0 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(len(values), row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cell, last, style)
}

func toBytes(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

//LeaveWorkbook writes one row per leave request. Rejected requests are highlighted.
func LeaveWorkbook(ctx context.Context, requests []model.LeaveRequest) ([]byte, error) {
	contextLogger := log.WithContext(ctx)
	f, st, err := newWorkbook(LeaveSheet)
	if err != nil {
		contextLogger.WithError(err).Error("Unable to create the leave workbook")
		return nil, err
	}
	defer f.Close()

	_ = f.SetColWidth(LeaveSheet, "B", "C", 30)
	_ = f.SetColWidth(LeaveSheet, "D", "J", 20)
	if err := writeRow(f, LeaveSheet, 1, leaveHeader, st.header); err != nil {
		return nil, err
	}

	for i, r := range requests {
		style := 0
		if r.Status == model.LeaveRejected {
			style = st.alert
		}
		values := []interface{}{
			r.ID,
			r.EmployeeName,
			r.EmployeeEmail,
			r.StartDate.Format(false),
			r.EndDate.Format(false),
			r.Reason,
			string(r.Status),
			r.CreatedAt.Format(true),
			r.AdminRemarks,
			r.ActionByAdminName,
		}
		if err := writeRow(f, LeaveSheet, i+2, values, style); err != nil {
			contextLogger.WithError(err).Errorf("Unable to write leave request %d", r.ID)
			return nil, err
		}
	}
	return toBytes(f)
}

//DashboardWorkbook writes the stat cards and, per registered chart, its data block with a native chart beside it
func DashboardWorkbook(ctx context.Context, summary *model.DashboardSummary, registry *charts.Registry) ([]byte, error) {
	contextLogger := log.WithContext(ctx)
	if summary == nil {
		summary = &model.DashboardSummary{}
	}
	f, st, err := newWorkbook(SummarySheet)
	if err != nil {
		contextLogger.WithError(err).Error("Unable to create the dashboard workbook")
		return nil, err
	}
	defer f.Close()

	_ = f.SetColWidth(SummarySheet, "A", "A", 30)
	stats := [][]interface{}{
		{"Metric", "Value"},
		{"Total Employees", summary.TotalEmployees},
		{"Total Departments", summary.TotalDepartments},
		{"Average Employee Age", summary.AverageEmployeeAge},
	}
	for i, values := range stats {
		style := 0
		if i == 0 {
			style = st.header
		}
		if err := writeRow(f, SummarySheet, i+1, values, style); err != nil {
			return nil, err
		}
	}

	if registry == nil || len(registry.IDs()) == 0 {
		return toBytes(f)
	}
	if _, err := f.NewSheet(ChartSheet); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(ChartSheet, "A", "A", 25)

	row := 1
	for _, id := range registry.IDs() {
		chart, _ := registry.Get(id)
		next, err := writeChartBlock(f, st, row, chart)
		if err != nil {
			contextLogger.WithError(err).Errorf("Unable to write chart %s", id)
			return nil, err
		}
		row = next
	}
	return toBytes(f)
}

// writeChartBlock writes title, header and data rows starting at row and returns the first free row after the block
func writeChartBlock(f *excelize.File, st *styles, row int, chart charts.Chart) (int, error) {
	if err := writeRow(f, ChartSheet, row, []interface{}{chart.Title}, st.header); err != nil {
		return 0, err
	}
	headerRow := row + 1
	header := []interface{}{"Label"}
	for _, ds := range chart.Datasets {
		header = append(header, ds.Label)
	}
	if err := writeRow(f, ChartSheet, headerRow, header, st.header); err != nil {
		return 0, err
	}

	first := headerRow + 1
	for i, label := range chart.Labels {
		values := []interface{}{label}
		for _, ds := range chart.Datasets {
			var v float64
			if i < len(ds.Data) {
				v = ds.Data[i]
			}
			values = append(values, v)
		}
		if err := writeRow(f, ChartSheet, first+i, values, 0); err != nil {
			return 0, err
		}
	}
	last := first + len(chart.Labels) - 1

	next := last + 3
	if floor := row + chartBlockRows; next < floor {
		next = floor
	}
	if len(chart.Labels) == 0 || len(chart.Datasets) == 0 {
		return next, nil
	}

	xlChart := &excelize.Chart{
		Type:  chartType(chart.Type),
		Title: []excelize.RichTextRun{{Text: chart.Title}},
	}
	for i := range chart.Datasets {
		col, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return 0, err
		}
		xlChart.Series = append(xlChart.Series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$%d", ChartSheet, col, headerRow),
			Categories: fmt.Sprintf("'%s'!$A$%d:$A$%d", ChartSheet, first, last),
			Values:     fmt.Sprintf("'%s'!$%s$%d:$%s$%d", ChartSheet, col, first, col, last),
		})
	}
	anchor, err := excelize.CoordinatesToCellName(len(chart.Datasets)+3, row)
	if err != nil {
		return 0, err
	}
	if err := f.AddChart(ChartSheet, anchor, xlChart); err != nil {
		return 0, err
	}
	return next, nil
}

func chartType(t charts.Type) excelize.ChartType {
	switch t {
	case charts.Pie:
		return excelize.Pie
	case charts.Doughnut:
		return excelize.Doughnut
	}
	return excelize.Col
}

// StatusLine is one processed roster row of an import report
type StatusLine struct {
	Line   int
	Email  string
	Failed bool
	Detail string
}

//StatusWorkbook is the audit trail attached to the import status mail. Failed rows are highlighted.
func StatusWorkbook(ctx context.Context, lines []StatusLine) ([]byte, error) {
	f, st, err := newWorkbook(StatusSheet)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Unable to create the import status workbook")
		return nil, err
	}
	defer f.Close()

	_ = f.SetColWidth(StatusSheet, "B", "B", 30)
	_ = f.SetColWidth(StatusSheet, "D", "D", 60)
	if err := writeRow(f, StatusSheet, 1, []interface{}{"Row", "Email", "Status", "Detail"}, st.header); err != nil {
		return nil, err
	}
	for i, l := range lines {
		status, style := "CREATED", 0
		if l.Failed {
			status, style = "FAILED", st.alert
		}
		values := []interface{}{strconv.Itoa(l.Line), l.Email, status, l.Detail}
		if err := writeRow(f, StatusSheet, i+2, values, style); err != nil {
			return nil, err
		}
	}
	return toBytes(f)
}
