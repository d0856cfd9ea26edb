package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/charts"
	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

const (
	ChartRole      = "employeeRoleChart"
	ChartSalary    = "avgSalaryChart"
	ChartDeptCount = "employeeDeptCountChart"
	ChartGender    = "employeeGenderChart"
	ChartAgeGroup  = "employeeAgeGroupChart"
)

// AgeGroups is the fixed label order of the age group chart
var AgeGroups = []string{"Under 20", "20-29", "30-39", "40-49", "50-59", "60+"}

type StatCards struct {
	TotalEmployees   string `json:"totalEmployees"`
	TotalDepartments string `json:"totalDepartments"`
	AverageAge       string `json:"averageAge"`
}

type AdminDashboardView struct {
	Outcome
	Stats   StatCards               `json:"stats"`
	Charts  map[string]charts.Chart `json:"charts"`
	Notices map[string]string       `json:"notices"`
	Summary *model.DashboardSummary `json:"-"`
}

type AdminDashboard struct {
	client   ems.ClientInterface
	store    session.Store
	registry *charts.Registry
}

func NewAdminDashboard(client ems.ClientInterface, store session.Store, registry *charts.Registry) *AdminDashboard {
	if registry == nil {
		registry = charts.NewRegistry()
	}
	return &AdminDashboard{client: client, store: store, registry: registry}
}

// Registry exposes the charts drawn by the last Load
func (d *AdminDashboard) Registry() *charts.Registry {
	return d.registry
}

//Load fetches the summary and redraws every chart. A chart without data is replaced by a notice.
func (d *AdminDashboard) Load(ctx context.Context) (*AdminDashboardView, error) {
	record, err := requireRole(ctx, d.store, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	summary, err := d.client.DashboardSummary(ctx, record.ID)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Error loading dashboard data")
		return &AdminDashboardView{
			Outcome: Outcome{Message: failure(fmt.Sprintf("Failed to load dashboard data: %s. Please try again later.", errorText(err, "unknown error")))},
			Stats:   StatCards{TotalEmployees: "Error", TotalDepartments: "Error", AverageAge: "Error"},
			Charts:  map[string]charts.Chart{},
			Notices: map[string]string{},
		}, nil
	}

	notices := make(map[string]string)
	d.draw(ChartRole, summary.EmployeeCountByRole != nil, notices, "No role data available.", func() charts.Chart {
		return charts.FromCounts(charts.Doughnut, "Employee Count by Role", "Employees", summary.EmployeeCountByRole)
	})
	d.draw(ChartSalary, len(summary.AverageSalaryPerDepartment) > 0, notices, "No salary data available.", func() charts.Chart {
		return salaryChart(summary.AverageSalaryPerDepartment)
	})
	d.draw(ChartDeptCount, summary.EmployeeCountByDepartment != nil, notices, "No department count data.", func() charts.Chart {
		return charts.FromCounts(charts.Bar, "Employees per Department", "Employees", summary.EmployeeCountByDepartment)
	})
	d.draw(ChartGender, summary.EmployeeCountByGender != nil, notices, "No gender data available.", func() charts.Chart {
		return charts.FromCounts(charts.Pie, "Gender Distribution", "Gender", summary.EmployeeCountByGender)
	})
	d.draw(ChartAgeGroup, summary.EmployeeCountByAgeGroup != nil, notices, "No age group data available.", func() charts.Chart {
		return charts.FromOrderedCounts(charts.Bar, "Age Groups", "Employees", AgeGroups, summary.EmployeeCountByAgeGroup)
	})

	return &AdminDashboardView{
		Stats:   statCards(summary),
		Charts:  d.registry.Snapshot(),
		Notices: notices,
		Summary: summary,
	}, nil
}

func (d *AdminDashboard) draw(id string, hasData bool, notices map[string]string, notice string, build func() charts.Chart) {
	if !hasData {
		d.registry.Delete(id)
		notices[id] = notice
		return
	}
	d.registry.Set(id, build())
}

func salaryChart(salaries []model.AverageSalary) charts.Chart {
	labels := make([]string, len(salaries))
	data := make([]float64, len(salaries))
	for i, s := range salaries {
		labels[i] = s.DepartmentName
		data[i] = s.AverageSalary
	}
	return charts.Chart{
		Type:     charts.Bar,
		Title:    "Average Salary by Department",
		Labels:   labels,
		Datasets: []charts.Dataset{{Label: "Average Salary", Data: data}},
	}
}

func statCards(summary *model.DashboardSummary) StatCards {
	age := "- years"
	if summary.AverageEmployeeAge > 0 {
		age = fmt.Sprintf("%.1f years", summary.AverageEmployeeAge)
	}
	return StatCards{
		TotalEmployees:   strconv.FormatInt(summary.TotalEmployees, 10),
		TotalDepartments: strconv.FormatInt(summary.TotalDepartments, 10),
		AverageAge:       age,
	}
}

type ProfileCard struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Department  string `json:"department"`
	Role        string `json:"role"`
	HireDate    string `json:"hireDate"`
	DateOfBirth string `json:"dateOfBirth"`
	Salary      string `json:"salary"`
}

type EmployeeDashboardView struct {
	Outcome
	Profile ProfileCard `json:"profile"`
}

type EmployeeDashboard struct {
	store session.Store
}

func NewEmployeeDashboard(store session.Store) *EmployeeDashboard {
	return &EmployeeDashboard{store: store}
}

//Load renders the profile card from the cached session, no API call is made
func (d *EmployeeDashboard) Load(ctx context.Context) (*EmployeeDashboardView, error) {
	record, err := requireRole(ctx, d.store, model.RoleEmployee)
	if err != nil {
		return nil, err
	}

	card := ProfileCard{
		Name:        "Employee",
		Email:       orDefault(record.Email, "-"),
		Department:  orDefault(record.DepartmentName, "N/A"),
		Role:        orDefault(string(record.Role), "-"),
		HireDate:    record.HireDate.Long(),
		DateOfBirth: record.DateOfBirth.Long(),
		Salary:      model.FormatSalary(record.Salary),
	}
	if record.FirstName != "" {
		card.Name = strings.TrimSpace(record.FirstName + " " + record.LastName)
	}
	return &EmployeeDashboardView{Profile: card}, nil
}

func orDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
