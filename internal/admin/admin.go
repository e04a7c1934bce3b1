// Package admin holds the pages of the administration client: sign-in, the
// project dashboard with its update overlay, and the add-project page.
package admin

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/folioadmin/folioadmin-go/internal/client"
	"github.com/folioadmin/folioadmin-go/internal/model"
	"github.com/folioadmin/folioadmin-go/internal/notify"
	"github.com/folioadmin/folioadmin-go/internal/session"
)

const (
	msgPleaseLogin = "Please Login"
	msgGeneric     = "Something went wrong"
)

// Route names a page of the client.
type Route string

const (
	RouteLogin      Route = "/"
	RouteDashboard  Route = "/dashboard"
	RouteAddProject Route = "/dashboard/add"
)

// Navigator moves the user to another page.
type Navigator interface {
	Navigate(route Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(Route)

func (f NavigatorFunc) Navigate(r Route) { f(r) }

// ProjectAPI is the subset of the HTTP client used by the pages.
type ProjectAPI interface {
	Login(ctx context.Context, username, password string) (model.LoginResponse, error)
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, token string, in model.ProjectInput) (string, error)
	UpdateProject(ctx context.Context, token string, id int64, in model.ProjectInput) (model.UpdateProjectResponse, error)
	DeleteProject(ctx context.Context, token string, id int64) (string, error)
}

// Sessions loads, creates and clears the signed-in session.
type Sessions interface {
	Load(ctx context.Context) (session.Session, error)
	Create(ctx context.Context, token string) (session.Session, error)
	Clear(ctx context.Context) error
}

// Deps are the collaborators shared by every page.
type Deps struct {
	API       ProjectAPI
	Sessions  Sessions
	Notifier  notify.Notifier
	Navigator Navigator
	Log       zerolog.Logger
}

// Gate loads the session. When there is none, or it cannot be decoded, the
// user is told to sign in and sent to the login page before Gate returns.
func (d Deps) Gate(ctx context.Context) (session.Session, error) {
	s, err := d.Sessions.Load(ctx)
	if err == nil {
		return s, nil
	}

	if !errors.Is(err, session.ErrNoSession) && !errors.Is(err, session.ErrInvalidToken) {
		d.Log.Error().Err(err).Msg("failed to read session")
	}
	d.Notifier.Error(msgPleaseLogin)
	d.Navigator.Navigate(RouteLogin)
	return session.Session{}, err
}

// Logout clears the session and returns to the login page.
func (d Deps) Logout(ctx context.Context) error {
	if err := d.Sessions.Clear(ctx); err != nil {
		return err
	}
	d.Navigator.Navigate(RouteLogin)
	return nil
}

// fail reports a failed mutating call. Authorization rejections end the
// session; anything else shows the server's message.
func (d Deps) fail(ctx context.Context, op string, err error) {
	if client.IsUnauthorized(err) {
		d.Log.Warn().Err(err).Str("op", op).Msg("authorization rejected, ending session")
		if cerr := d.Sessions.Clear(ctx); cerr != nil {
			d.Log.Error().Err(cerr).Msg("failed to clear session")
		}
		d.Notifier.Error(msgPleaseLogin)
		d.Navigator.Navigate(RouteLogin)
		return
	}

	d.Log.Error().Err(err).Str("op", op).Msg("request failed")
	d.Notifier.Error(messageOr(err, msgGeneric))
}

func messageOr(err error, fallback string) string {
	if msg := client.MessageOf(err); msg != "" {
		return msg
	}
	return fallback
}
