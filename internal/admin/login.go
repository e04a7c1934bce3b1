package admin

import (
	"context"
	"fmt"

	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/session"
)

// LoginPage exchanges credentials for a session.
type LoginPage struct {
	Deps
}

// NewLoginPage creates a LoginPage.
func NewLoginPage(deps Deps) *LoginPage {
	return &LoginPage{Deps: deps}
}

// Submit validates f and signs in. Validation failures return
// form.FieldErrors without contacting the server.
func (p *LoginPage) Submit(ctx context.Context, f *form.Login) (session.Session, error) {
	if err := f.Validate(); err != nil {
		return session.Session{}, err
	}

	resp, err := p.API.Login(ctx, f.Username, f.Password)
	if err != nil {
		p.Log.Warn().Err(err).Str("username", f.Username).Msg("login failed")
		p.Notifier.Error(messageOr(err, msgGeneric))
		return session.Session{}, err
	}

	s, err := p.Sessions.Create(ctx, resp.AccessToken)
	if err != nil {
		p.Log.Error().Err(err).Msg("server returned an unusable token")
		p.Notifier.Error(msgGeneric)
		return session.Session{}, fmt.Errorf("create session: %w", err)
	}

	p.Notifier.Success(resp.Message)
	p.Navigator.Navigate(RouteDashboard)
	return s, nil
}
