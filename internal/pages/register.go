package pages

import (
	"context"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/syrilster/ems-console/internal/model"
)

const errManagerRequired validationError = "Please select your manager/admin."

// RegistrationForm mirrors the register page fields as submitted
type RegistrationForm struct {
	FirstName        string     `json:"firstName"`
	LastName         string     `json:"lastName"`
	Email            string     `json:"email"`
	Password         string     `json:"password"`
	Role             model.Role `json:"role"`
	Gender           string     `json:"gender"`
	DateOfBirth      string     `json:"dateOfBirth"`
	HireDate         string     `json:"hireDate"`
	Salary           string     `json:"salary"`
	DepartmentID     string     `json:"departmentId"`
	ManagedByAdminID string     `json:"managedByAdminId"`
}

//Draft maps the form to the registration payload. Employee fields are only sent for employees.
func (f RegistrationForm) Draft() (model.RegistrationRequest, error) {
	draft := model.RegistrationRequest{
		FirstName: f.FirstName,
		LastName:  f.LastName,
		Email:     strings.TrimSpace(f.Email),
		Password:  f.Password,
		Role:      f.Role,
		Gender:    f.Gender,
	}
	if f.Role != model.RoleEmployee {
		return draft, nil
	}

	var err error
	if draft.ManagedByAdminID, err = optionalInt("manager", f.ManagedByAdminID); err != nil {
		return draft, err
	}
	if draft.ManagedByAdminID == nil {
		return draft, errManagerRequired
	}
	if draft.DepartmentID, err = optionalInt("department", f.DepartmentID); err != nil {
		return draft, err
	}
	if draft.Salary, err = optionalFloat("salary", f.Salary); err != nil {
		return draft, err
	}
	if draft.DateOfBirth, err = model.ParseDate(f.DateOfBirth); err != nil {
		return draft, err
	}
	if draft.HireDate, err = model.ParseDate(f.HireDate); err != nil {
		return draft, err
	}
	return draft, nil
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsView feeds one select control of the register page
type OptionsView struct {
	Outcome
	Placeholder string   `json:"placeholder"`
	Options     []Option `json:"options"`
}

//Managers lists the admins an employee can register under, labelled "FullName - ID"
func (a *Auth) Managers(ctx context.Context) (*OptionsView, error) {
	admins, err := a.client.ListAdmins(ctx)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Error populating admin managers dropdown")
		return &OptionsView{
			Outcome:     Outcome{Message: failure(errorText(err, "Could not load managers"))},
			Placeholder: "Error loading managers",
			Options:     []Option{},
		}, nil
	}

	view := &OptionsView{Placeholder: "Select your manager/admin", Options: make([]Option, 0, len(admins))}
	if len(admins) == 0 {
		view.Placeholder = "No managers available"
	}
	for _, admin := range admins {
		id := strconv.FormatInt(admin.ID, 10)
		view.Options = append(view.Options, Option{Value: id, Label: admin.FullName + " - " + id})
	}
	return view, nil
}

//Departments lists every department for the optional department select
func (a *Auth) Departments(ctx context.Context) (*OptionsView, error) {
	departments, err := a.client.AllDepartments(ctx)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Error populating departments dropdown")
		return &OptionsView{
			Outcome:     Outcome{Message: failure(errorText(err, "Could not load departments"))},
			Placeholder: "Error loading departments (optional)",
			Options:     []Option{},
		}, nil
	}

	view := &OptionsView{Placeholder: "Select department", Options: make([]Option, 0, len(departments))}
	if len(departments) == 0 {
		view.Placeholder = "No departments for this manager (optional)"
	}
	for _, d := range departments {
		view.Options = append(view.Options, Option{Value: strconv.FormatInt(d.ID, 10), Label: d.Name})
	}
	return view, nil
}
