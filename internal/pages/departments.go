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

// DepartmentForm creates a department when ID is zero, otherwise updates it
type DepartmentForm struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type DepartmentsView struct {
	Outcome
	Departments []model.Department `json:"departments"`
}

type Departments struct {
	client ems.ClientInterface
	store  session.Store
	save   submitGuard
}

func NewDepartments(client ems.ClientInterface, store session.Store) *Departments {
	return &Departments{client: client, store: store}
}

//List returns the departments managed by the logged in admin
func (p *Departments) List(ctx context.Context) (*DepartmentsView, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return nil, err
	}

	departments, err := p.client.ManagedDepartments(ctx, record.ID, true)
	if err != nil {
		log.WithContext(ctx).WithError(err).Error("Error fetching departments")
		return &DepartmentsView{
			Outcome:     Outcome{Message: failure(strings.TrimSpace("Failed to load departments. " + errorText(err, "")))},
			Departments: []model.Department{},
		}, nil
	}

	view := &DepartmentsView{Departments: departments}
	if len(departments) == 0 {
		view.Message = info("No departments found. Add one using the form above.")
	}
	return view, nil
}

func (p *Departments) Save(ctx context.Context, form DepartmentForm) (Outcome, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return Outcome{}, err
	}

	name := strings.TrimSpace(form.Name)
	if name == "" {
		return Outcome{Message: failure("Department name cannot be empty.")}, nil
	}

	release, err := p.save.acquire()
	if err != nil {
		return Outcome{}, err
	}
	defer release()

	department := model.Department{Name: name}
	if form.ID != 0 {
		if _, err := p.client.UpdateDepartment(ctx, record.ID, form.ID, department); err != nil {
			log.WithContext(ctx).WithError(err).Errorf("Error updating department %d", form.ID)
			return Outcome{Message: failure(errorText(err, "Failed to update department."))}, nil
		}
		return Outcome{Message: success("Department updated successfully!")}, nil
	}

	if _, err := p.client.CreateDepartment(ctx, record.ID, department); err != nil {
		log.WithContext(ctx).WithError(err).Error("Error adding department")
		return Outcome{Message: failure(errorText(err, "Failed to add department."))}, nil
	}
	return Outcome{Message: success("Department added successfully!")}, nil
}

// Delete removes a department. name is only used in the messages.
func (p *Departments) Delete(ctx context.Context, id int64, name string) (Outcome, error) {
	record, err := requireRole(ctx, p.store, model.RoleAdmin)
	if err != nil {
		return Outcome{}, err
	}
	if name == "" {
		name = fmt.Sprintf("ID %d", id)
	}

	if err := p.client.DeleteDepartment(ctx, record.ID, id); err != nil {
		log.WithContext(ctx).WithError(err).Errorf("Error deleting department %d", id)
		return Outcome{Message: failure(errorText(err, fmt.Sprintf("Failed to delete department %q.", name)))}, nil
	}
	return Outcome{Message: success(fmt.Sprintf("Department %q deleted successfully.", name))}, nil
}
