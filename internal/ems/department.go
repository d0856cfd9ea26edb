package ems

import (
	"context"
	"fmt"
	"net/http"

	"github.com/syrilster/ems-console/internal/model"
)

const departmentsPath = "/api/departments"

func (c *client) AllDepartments(ctx context.Context) ([]model.Department, error) {
	return list[model.Department](ctx, c, Request{
		Path:       departmentsPath + "/all",
		SkipLoader: true,
	})
}

func (c *client) ManagedDepartments(ctx context.Context, adminID int64, showLoader bool) ([]model.Department, error) {
	return list[model.Department](ctx, c, Request{
		Path:          departmentsPath + "/my-managed",
		Headers:       adminHeaders(adminID),
		SkipLoader:    !showLoader,
		LoaderMessage: "Loading departments...",
	})
}

func (c *client) GetDepartment(ctx context.Context, adminID int64, id int64) (*model.Department, error) {
	return fetch[model.Department](ctx, c, Request{
		Path:          buildDepartmentEndpoint(id),
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Loading department...",
	})
}

func (c *client) CreateDepartment(ctx context.Context, adminID int64, d model.Department) (*model.Department, error) {
	return optional[model.Department](ctx, c, Request{
		Path:          departmentsPath,
		Method:        http.MethodPost,
		Body:          model.Department{Name: d.Name},
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Adding department...",
	})
}

func (c *client) UpdateDepartment(ctx context.Context, adminID int64, id int64, d model.Department) (*model.Department, error) {
	return optional[model.Department](ctx, c, Request{
		Path:          buildDepartmentEndpoint(id),
		Method:        http.MethodPut,
		Body:          model.Department{Name: d.Name},
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Updating department...",
	})
}

func (c *client) DeleteDepartment(ctx context.Context, adminID int64, id int64) error {
	_, err := c.Call(ctx, Request{
		Path:          buildDepartmentEndpoint(id),
		Method:        http.MethodDelete,
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Deleting department...",
	})
	return err
}

func buildDepartmentEndpoint(id int64) string {
	return fmt.Sprintf("%s/%d", departmentsPath, id)
}
