package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/model"
	"github.com/folioadmin/folioadmin-go/internal/repository"
	"github.com/folioadmin/folioadmin-go/internal/uploads"
)

const (
	msgProjectAdded   = "Project added successfully"
	msgProjectUpdated = "Project updated successfully"
	msgProjectDeleted = "Project deleted successfully"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectService handles project records and their images.
type ProjectService struct {
	repo   *repository.ProjectRepository
	images *uploads.Store
	log    zerolog.Logger
}

// NewProjectService creates a new ProjectService.
func NewProjectService(repo *repository.ProjectRepository, images *uploads.Store, log zerolog.Logger) *ProjectService {
	return &ProjectService{repo: repo, images: images, log: log}
}

// List returns every project.
func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.repo.List(ctx)
}

// Create validates f, stores its image and inserts the project.
func (s *ProjectService) Create(ctx context.Context, f form.Project) (model.Project, string, error) {
	if err := f.ValidateCreate(); err != nil {
		return model.Project{}, "", err
	}

	image, err := s.images.Save(f.Image.Name, f.Image.Content)
	if err != nil {
		return model.Project{}, "", err
	}

	p := model.Project{
		Title:       f.Title,
		Description: f.Description,
		Image:       image,
		Category:    f.Category,
		Link:        f.Link,
		Github:      f.Github,
	}
	if err := s.repo.Create(ctx, &p); err != nil {
		s.discard(image)
		return model.Project{}, "", err
	}

	s.log.Info().Int64("id", p.ID).Str("image", image).Msg("project created")
	return p, msgProjectAdded, nil
}

// Update validates f and overwrites project id. A new image replaces the
// stored one, which is then removed.
func (s *ProjectService) Update(ctx context.Context, id int64, f form.Project) (model.UpdateProjectResponse, error) {
	if err := f.ValidateUpdate(); err != nil {
		return model.UpdateProjectResponse{}, err
	}

	existing, err := s.get(ctx, id)
	if err != nil {
		return model.UpdateProjectResponse{}, err
	}

	p := model.Project{
		ID:          id,
		Title:       f.Title,
		Description: f.Description,
		Image:       existing.Image,
		Category:    f.Category,
		Link:        f.Link,
		Github:      f.Github,
	}

	if f.Image != nil && f.Image.Content != nil {
		p.Image, err = s.images.Save(f.Image.Name, f.Image.Content)
		if err != nil {
			return model.UpdateProjectResponse{}, err
		}
	}

	if err := s.repo.Update(ctx, &p); err != nil {
		if p.Image != existing.Image {
			s.discard(p.Image)
		}
		return model.UpdateProjectResponse{}, err
	}
	if p.Image != existing.Image {
		s.discard(existing.Image)
	}

	s.log.Info().Int64("id", id).Msg("project updated")
	return model.UpdateProjectResponse{Message: msgProjectUpdated, UpdatedProject: p}, nil
}

// Delete removes project id and its image.
func (s *ProjectService) Delete(ctx context.Context, id int64) (string, error) {
	existing, err := s.get(ctx, id)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return "", ErrProjectNotFound
		}
		return "", err
	}
	s.discard(existing.Image)

	s.log.Info().Int64("id", id).Msg("project deleted")
	return msgProjectDeleted, nil
}

func (s *ProjectService) get(ctx context.Context, id int64) (*model.Project, error) {
	p, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrProjectNotFound) {
		return nil, ErrProjectNotFound
	}
	return p, err
}

func (s *ProjectService) discard(image string) {
	if image == "" {
		return
	}
	if err := s.images.Remove(image); err != nil {
		s.log.Warn().Err(err).Str("image", image).Msg("failed to remove image")
	}
}
