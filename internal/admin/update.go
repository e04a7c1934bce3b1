package admin

import (
	"context"

	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/model"
)

// UpdateForm is the overlay editing one project. Form starts with the
// project's current values; set Form.Image to replace the image.
type UpdateForm struct {
	Deps
	Form form.Project

	project   model.Project
	onUpdated func(model.Project)
	open      bool
}

func newUpdateForm(deps Deps, p model.Project, onUpdated func(model.Project)) *UpdateForm {
	return &UpdateForm{
		Deps:      deps,
		Form:      form.FromProject(p),
		project:   p,
		onUpdated: onUpdated,
		open:      true,
	}
}

// Project returns the project being edited, as it was when the overlay opened.
func (u *UpdateForm) Project() model.Project { return u.project }

// IsOpen reports whether the overlay is still shown.
func (u *UpdateForm) IsOpen() bool { return u.open }

// Close dismisses the overlay without submitting.
func (u *UpdateForm) Close() { u.open = false }

// Submit validates the form and sends the update. On success the overlay
// closes and the returned project is merged into the dashboard.
func (u *UpdateForm) Submit(ctx context.Context) (model.Project, error) {
	if err := u.Form.ValidateUpdate(); err != nil {
		return model.Project{}, err
	}

	s, err := u.Gate(ctx)
	if err != nil {
		return model.Project{}, err
	}

	resp, err := u.API.UpdateProject(ctx, s.Token, u.project.ID, u.Form.Input())
	if err != nil {
		u.fail(ctx, "update", err)
		return model.Project{}, err
	}

	updated := resp.UpdatedProject
	if updated.ID == 0 {
		updated.ID = u.project.ID
	}

	u.Log.Info().Int64("id", updated.ID).Msg("project updated")
	u.Notifier.Success(resp.Message)
	u.open = false
	if u.onUpdated != nil {
		u.onUpdated(updated)
	}
	return updated, nil
}
