package internal

import (
	"fmt"
	"net/http"

	"github.com/syrilster/ems-console/internal/auth"
	"github.com/syrilster/ems-console/internal/charts"
	"github.com/syrilster/ems-console/internal/config"
	"github.com/syrilster/ems-console/internal/ems"
	"github.com/syrilster/ems-console/internal/loader"
	"github.com/syrilster/ems-console/internal/middlewares"
	"github.com/syrilster/ems-console/internal/pages"
	"github.com/syrilster/ems-console/internal/report"
	"github.com/syrilster/ems-console/internal/session"
)

//StatusRoute health check route
func StatusRoute() (route config.Route) {
	route = config.Route{
		Path:    "/health",
		Method:  http.MethodGet,
		Handler: middlewares.RuntimeHealthCheck(),
	}
	return route
}

type ServerConfig interface {
	Version() string
	EMSClient() ems.ClientInterface
	SessionStore() session.Store
	LoaderStatus() *loader.Status
	ChartRegistry() *charts.Registry
	Mailer() *report.Mailer
}

// NewPages builds every console controller over one backend client and session store
func NewPages(cfg ServerConfig) Pages {
	client := cfg.EMSClient()
	store := cfg.SessionStore()
	return Pages{
		Store:             store,
		Loader:            cfg.LoaderStatus(),
		AdminDashboard:    pages.NewAdminDashboard(client, store, cfg.ChartRegistry()),
		EmployeeDashboard: pages.NewEmployeeDashboard(store),
		Departments:       pages.NewDepartments(client, store),
		Employees:         pages.NewEmployees(client, store),
		MyLeaves:          pages.NewMyLeaves(client, store),
		AdminLeaves:       pages.NewAdminLeaves(client, store),
		Importer:          NewService(client, store, cfg.Mailer()),
	}
}

func SetupServer(cfg ServerConfig) *config.Server {
	basePath := fmt.Sprintf("/%v", cfg.Version())
	authPages := pages.NewAuth(cfg.EMSClient(), cfg.SessionStore())
	server := config.NewServer().
		WithRoutes(
			"", StatusRoute(),
		).
		WithRoutes(
			basePath,
			append(auth.Routes(authPages), Routes(NewPages(cfg))...)...,
		)
	return server
}
