package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/folioadmin/folioadmin-go/internal/model"
)

var ErrProjectNotFound = errors.New("project not found")

// ProjectRepository handles project persistence.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, description, image, category, link, github`

// List returns every project in insertion order.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Image, &p.Category, &p.Link, &p.Github); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}

	return projects, rows.Err()
}

// Get retrieves a project by ID.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*model.Project, error) {
	p := &model.Project{}
	err := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Image, &p.Category, &p.Link, &p.Github,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	return p, nil
}

// Create inserts p and sets its generated ID.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := `INSERT INTO projects (title, description, image, category, link, github) VALUES (?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Image, p.Category, p.Link, p.Github)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	p.ID = id
	return nil
}

// Update overwrites every column of the project with p.ID. Callers check
// existence with Get first: MySQL reports zero affected rows when nothing
// changed, so the row count cannot tell a missing project apart.
func (r *ProjectRepository) Update(ctx context.Context, p *model.Project) error {
	query := `UPDATE projects SET title = ?, description = ?, image = ?, category = ?, link = ?, github = ?
		WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Image, p.Category, p.Link, p.Github, p.ID)
	return err
}

// Delete removes the project with the given ID.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrProjectNotFound
	}
	return nil
}
