package admin

import (
	"context"

	"github.com/folioadmin/folioadmin-go/internal/form"
)

// AddPage creates new projects. It does not touch any dashboard state.
type AddPage struct {
	Deps
}

// NewAddPage creates an AddPage.
func NewAddPage(deps Deps) *AddPage {
	return &AddPage{Deps: deps}
}

// Submit validates f and uploads it, returning the server message.
func (p *AddPage) Submit(ctx context.Context, f *form.Project) (string, error) {
	if err := f.ValidateCreate(); err != nil {
		if fields, ok := err.(form.FieldErrors); ok && fields["image"] != "" {
			p.Notifier.Error(form.ImageRequiredMessage())
		}
		return "", err
	}

	s, err := p.Gate(ctx)
	if err != nil {
		return "", err
	}

	msg, err := p.API.CreateProject(ctx, s.Token, f.Input())
	if err != nil {
		p.fail(ctx, "create", err)
		return "", err
	}

	p.Log.Info().Str("title", f.Title).Msg("project created")
	p.Notifier.Success(msg)
	return msg, nil
}
