package pages

import (
	"context"
	"errors"

	"github.com/syrilster/ems-console/internal/model"
	"github.com/syrilster/ems-console/internal/session"
)

type HeaderView struct {
	LoggedIn      bool   `json:"loggedIn"`
	Greeting      string `json:"greeting,omitempty"`
	DashboardLink *Link  `json:"dashboardLink,omitempty"`
	ShowLogin     bool   `json:"showLogin"`
	ShowRegister  bool   `json:"showRegister"`
}

//Header renders the navigation state shared by every page
func Header(ctx context.Context, store session.Store) (HeaderView, error) {
	record, err := currentUser(ctx, store)
	if errors.Is(err, ErrNotLoggedIn) {
		return HeaderView{ShowLogin: true, ShowRegister: true}, nil
	}

	name := record.FirstName
	if name == "" {
		name = "User"
	}
	view := HeaderView{LoggedIn: true, Greeting: "Hi, " + name}
	switch record.Role {
	case model.RoleAdmin:
		view.DashboardLink = &Link{Href: PageAdminDashboard, Text: "Admin Dashboard"}
	case model.RoleEmployee:
		view.DashboardLink = &Link{Href: PageEmployeeDashboard, Text: "My Dashboard"}
	}
	return view, nil
}
