package model

import "io"

// Project categories accepted by the API.
const (
	CategoryWebDevelopment = "Web Development"
	CategoryMobileApp      = "Mobile App"
)

// Categories lists every valid project category in display order.
var Categories = []string{CategoryWebDevelopment, CategoryMobileApp}

// IsCategory reports whether c is one of Categories.
func IsCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Project is a portfolio entry. ID is assigned by the server and Image holds
// the stored filename served under /uploads/.
type Project struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Link        string `json:"link"`
	Github      string `json:"github"`
}

// ImageFile is an image to upload alongside a project.
type ImageFile struct {
	Name    string
	Content io.Reader
}

// ProjectInput carries the multipart fields of a create or update request.
// Image is nil when no new file is sent.
type ProjectInput struct {
	Title       string
	Description string
	Category    string
	Link        string
	Github      string
	Image       *ImageFile
}

// ProjectListResponse is the body of GET /projects.
type ProjectListResponse struct {
	Data []Project `json:"data"`
}

// MessageResponse is the body of create and delete responses, and of errors.
type MessageResponse struct {
	Message string `json:"message"`
}

// UpdateProjectResponse is the body of PATCH /projects/{id}.
type UpdateProjectResponse struct {
	Message        string  `json:"message"`
	UpdatedProject Project `json:"updatedProject"`
}
