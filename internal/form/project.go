package form

import (
	"strings"

	"github.com/folioadmin/folioadmin-go/internal/model"
)

const msgImageRequired = "image file is required !"

// Project is the add/update project form. Image is not covered by struct
// tags: it is mandatory on create and optional on update.
type Project struct {
	Title       string           `form:"title" validate:"required,max=100"`
	Description string           `form:"description" validate:"required,max=500"`
	Category    string           `form:"category" validate:"required,category"`
	Link        string           `form:"link" validate:"required,url"`
	Github      string           `form:"github" validate:"required,url"`
	Image       *model.ImageFile `form:"image" validate:"-"`
}

// FromProject returns a form pre-populated with p's current values.
func FromProject(p model.Project) Project {
	return Project{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Link:        p.Link,
		Github:      p.Github,
	}
}

// ImageRequiredMessage is the notification shown when a create has no image.
func ImageRequiredMessage() string { return msgImageRequired }

func (p *Project) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.Link = strings.TrimSpace(p.Link)
	p.Github = strings.TrimSpace(p.Github)
}

// ValidateCreate checks the form for a create request.
func (p *Project) ValidateCreate() error {
	p.normalize()
	err := check(p)
	if p.Image != nil && p.Image.Content != nil {
		return err
	}

	fields, ok := err.(FieldErrors)
	if err != nil && !ok {
		return err
	}
	if fields == nil {
		fields = FieldErrors{}
	}
	fields["image"] = msgImageRequired
	return fields
}

// ValidateUpdate checks the form for an update request.
func (p *Project) ValidateUpdate() error {
	p.normalize()
	return check(p)
}

// Input converts the form to the request payload.
func (p Project) Input() model.ProjectInput {
	return model.ProjectInput{
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Link:        p.Link,
		Github:      p.Github,
		Image:       p.Image,
	}
}
