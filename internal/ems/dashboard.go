package ems

import (
	"context"

	"github.com/syrilster/ems-console/internal/model"
)

const dashboardSummaryPath = "/api/dashboard/summary"

func (c *client) DashboardSummary(ctx context.Context, adminID int64) (*model.DashboardSummary, error) {
	return fetch[model.DashboardSummary](ctx, c, Request{
		Path:          dashboardSummaryPath,
		Headers:       adminHeaders(adminID),
		LoaderMessage: "Loading dashboard...",
	})
}
