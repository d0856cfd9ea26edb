package ems

import (
	"context"
	"fmt"
	"net/http"

	"github.com/syrilster/ems-console/internal/model"
)

const employeesPath = "/api/employees"

func (c *client) ListEmployees(ctx context.Context, adminID int64) ([]model.Employee, error) {
	return list[model.Employee](ctx, c, Request{
		Path:          employeesPath,
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Loading employees...",
	})
}

func (c *client) GetEmployee(ctx context.Context, adminID int64, id int64) (*model.Employee, error) {
	return fetch[model.Employee](ctx, c, Request{
		Path:          buildEmployeeEndpoint(id),
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Loading employee...",
	})
}

func (c *client) CreateEmployee(ctx context.Context, adminID int64, e model.Employee) (*model.Employee, error) {
	e.ID = 0
	return optional[model.Employee](ctx, c, Request{
		Path:          employeesPath,
		Method:        http.MethodPost,
		Body:          e,
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Adding employee...",
	})
}

func (c *client) UpdateEmployee(ctx context.Context, adminID int64, id int64, e model.Employee) (*model.Employee, error) {
	e.ID = 0
	return optional[model.Employee](ctx, c, Request{
		Path:          buildEmployeeEndpoint(id),
		Method:        http.MethodPut,
		Body:          e,
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Updating employee...",
	})
}

func (c *client) DeleteEmployee(ctx context.Context, adminID int64, id int64) error {
	_, err := c.Call(ctx, Request{
		Path:          buildEmployeeEndpoint(id),
		Method:        http.MethodDelete,
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Deleting employee...",
	})
	return err
}

func buildEmployeeEndpoint(id int64) string {
	return fmt.Sprintf("%s/%d", employeesPath, id)
}
