package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

// EmployeeForm creates an employee when ID is zero, otherwise updates it.
// Password is only sent when given.
type EmployeeForm struct {
	ID           int64      `json:"id"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Password     string     `json:"password"`
	Gender       string     `json:"gender"`
	DateOfBirth  string     `json:"dateOfBirth"`
	HireDate     string     `json:"hireDate"`
	Salary       string     `json:"salary"`
	DepartmentID string     `json:"departmentId"`
	Role         model.Role `json:"role"`
}

// Employee validates the form and maps it to the API payload
func (f EmployeeForm) Employee() (model.Employee, error) {
	e := model.Employee{
		FirstName: strings.TrimSpace(f.FirstName),
		LastName:  strings.TrimSpace(f.LastName),
		Email:     strings.TrimSpace(f.Email),
		Password:  strings.TrimSpace(f.Password),
		Gender:    f.Gender,
		Role:      f.Role,
	}
	if f.ID == 0 && e.Password == "" {
		return e, validationError("Password is required for new employees.")
	}
	if e.Gender == "" {
		return e, validationError("Gender is required.")
	}
	if e.Role == "" {
		e.Role = model.RoleEmployee
	}

	var err error
	if e.DateOfBirth, err = model.ParseDate(f.DateOfBirth); err != nil {
		return e, err
	}
	if e.HireDate, err = model.ParseDate(f.HireDate); err != nil {
		return e, err
	}
	if e.Salary, err = optionalFloat("salary", f.Salary); err != nil {
		return e, err
	}
	if e.DepartmentID, err = optionalInt("department", f.DepartmentID); err != nil {
		return e, err
	}
	return e, nil
}

type EmployeeRow struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID *int64 `json:"departmentId,omitempty"`
	Department   string `json:"department"`
	Role         string `json:"role"`
	Gender       string `json:"gender"`
	HireDate     string `json:"hireDate"`
}

type EmployeesView struct {
	Outcome
	Employees   []EmployeeRow      `json:"employees"`
	Departments []model.Department `json:"departments"`
}

type Employees struct {
	client ems.ClientInterface
	store  session.Store
	save   submitGuard
}

func NewEmployees(client ems.ClientInterface, store session.Store) *Employees {
	return &Employees{client: client, store: store}
}

// List returns the admin's employees, restricted to departmentID when it is not zero
func (p *Employees) List(ctx context.Context, departmentID int64) (*EmployeesView, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return nil, err
	}
	contextLogger := log.WithContext(ctx)

	view := &EmployeesView{Employees: []EmployeeRow{}}
	departments, err := p.client.ManagedDepartments(ctx, record.ID, false)
	if err != nil {
		contextLogger.WithError(err).Error("Error fetching departments for form/filters")
		view.Message = failure(strings.TrimSpace("Failed to load department data for form/filters. " + errorText(err, "")))
		departments = []model.Department{}
	}
	view.Departments = departments

	employees, err := p.client.ListEmployees(ctx, record.ID)
	if err != nil {
		contextLogger.WithError(err).Error("Error fetching employees")
		view.Message = failure(strings.TrimSpace("Failed to load employees. " + errorText(err, "")))
		return view, nil
	}

	names := make(map[int64]string, len(departments))
	for _, d := range departments {
		names[d.ID] = d.Name
	}
	for _, e := range employees {
		if departmentID != 0 && (e.DepartmentID == nil || *e.DepartmentID != departmentID) {
			continue
		}
		view.Employees = append(view.Employees, employeeRow(e, names))
	}
	if len(view.Employees) == 0 {
		view.Message = info("No employees found matching the criteria.")
	}
	return view, nil
}

func employeeRow(e model.Employee, departmentNames map[int64]string) EmployeeRow {
	row := EmployeeRow{
		ID:           e.ID,
		Name:         e.FirstName + " " + e.LastName,
		Email:        e.Email,
		DepartmentID: e.DepartmentID,
		Department:   "N/A",
		Role:         string(e.Role),
		Gender:       orDefault(e.Gender, "N/A"),
		HireDate:     e.HireDate.Format(false),
	}
	if e.DepartmentID != nil {
		if name, ok := departmentNames[*e.DepartmentID]; ok {
			row.Department = name
		}
	}
	return row
}

func (p *Employees) Save(ctx context.Context, form EmployeeForm) (Outcome, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return Outcome{}, err
	}

	employee, err := form.Employee()
	if err != nil {
		return Outcome{Message: failure(err.Error())}, nil
	}

	release, err := p.save.acquire()
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	if form.ID != 0 {
		if _, err := p.client.UpdateEmployee(ctx, record.ID, form.ID, employee); err != nil {
			log.WithContext(ctx).WithError(err).Errorf("Error updating employee %d", form.ID)
			return Outcome{Message: failure(errorText(err, "Failed to update employee."))}, nil
		}
		return Outcome{Message: success("Employee updated successfully!")}, nil
	}

	if _, err := p.client.CreateEmployee(ctx, record.ID, employee); err != nil {
		log.WithContext(ctx).WithError(err).Error("Error adding employee")
		return Outcome{Message: failure(errorText(err, "Failed to add employee."))}, nil
	}
	return Outcome{Message: success("Employee added successfully! A welcome email has been sent.")}, nil
}

// Delete removes an employee. name is only used in the messages.
func (p *Employees) Delete(ctx context.Context, id int64, name string) (Outcome, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return Outcome{}, err
	}
	if name == "" {
		name = "ID " + strconv.FormatInt(id, 10)
	}

	if err := p.client.DeleteEmployee(ctx, record.ID, id); err != nil {
		log.WithContext(ctx).WithError(err).Errorf("Error deleting employee %d", id)
		return Outcome{Message: failure(errorText(err, fmt.Sprintf("Failed to delete employee %q.", name)))}, nil
	}
	return Outcome{Message: success(fmt.Sprintf("Employee %q deleted successfully.", name))}, nil
}
