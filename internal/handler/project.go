package handler

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/folioadmin/folioadmin-go/internal/form"
	"github.com/folioadmin/folioadmin-go/internal/model"
	"github.com/folioadmin/folioadmin-go/internal/service"
	"github.com/folioadmin/folioadmin-go/internal/uploads"
)

const (
	maxUploadBytes  = 10 << 20 // 10MB
	maxRequestBytes = maxUploadBytes + 1<<20
)

// ProjectHandler handles HTTP requests for project records.
type ProjectHandler struct {
	service *service.ProjectService
	log     zerolog.Logger
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(svc *service.ProjectService, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{service: svc, log: log}
}

// HandleList handles GET /projects requests.
func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list projects failed")
		writeJSON(w, http.StatusInternalServerError, messageResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.ProjectListResponse{Data: projects})
}

// HandleCreate handles multipart POST /projects requests.
func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	f, closeImage, ok := h.readForm(w, r)
	if !ok {
		return
	}
	defer closeImage()

	_, msg, err := h.service.Create(r.Context(), f)
	if err != nil {
		h.writeError(w, "create", err)
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse(msg))
}

// HandleUpdate handles multipart PATCH /projects/{id} requests.
func (h *ProjectHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	f, closeImage, ok := h.readForm(w, r)
	if !ok {
		return
	}
	defer closeImage()

	resp, err := h.service.Update(r.Context(), id, f)
	if err != nil {
		h.writeError(w, "update", err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDelete handles DELETE /projects/{id} requests.
func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := projectID(w, r)
	if !ok {
		return
	}

	msg, err := h.service.Delete(r.Context(), id)
	if err != nil {
		h.writeError(w, "delete", err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse(msg))
}

// readForm parses the multipart body into a project form. The returned
// func closes the uploaded image, if any.
func (h *ProjectHandler) readForm(w http.ResponseWriter, r *http.Request) (form.Project, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		if isTooLarge(err) {
			writeJSON(w, http.StatusRequestEntityTooLarge, messageResponse("request body too large"))
			return form.Project{}, nil, false
		}
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid multipart body"))
		return form.Project{}, nil, false
	}

	f := form.Project{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Link:        r.FormValue("link"),
		Github:      r.FormValue("github"),
	}

	file, hdr, err := r.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return f, func() {}, true
	case err != nil:
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid image upload"))
		return form.Project{}, nil, false
	}

	f.Image = &model.ImageFile{Name: hdr.Filename, Content: file}
	return f, func() { closeFile(file) }, true
}

func (h *ProjectHandler) writeError(w http.ResponseWriter, op string, err error) {
	var fields form.FieldErrors
	switch {
	case errors.As(err, &fields):
		writeJSON(w, http.StatusBadRequest, messageResponse(fields.Error()))
	case errors.Is(err, uploads.ErrUnsupportedType):
		writeJSON(w, http.StatusBadRequest, messageResponse(err.Error()))
	case errors.Is(err, service.ErrProjectNotFound):
		writeJSON(w, http.StatusNotFound, messageResponse(err.Error()))
	default:
		h.log.Error().Err(err).Str("op", op).Msg("project request failed")
		writeJSON(w, http.StatusInternalServerError, messageResponse("internal server error"))
	}
}

func projectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, messageResponse("invalid project id"))
		return 0, false
	}
	return id, true
}

func closeFile(f multipart.File) {
	_ = f.Close()
}

// ImageHandler serves stored project images.
type ImageHandler struct {
	images *uploads.Store
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(images *uploads.Store) *ImageHandler {
	return &ImageHandler{images: images}
}

// HandleGet handles GET /uploads/{filename} requests.
func (h *ImageHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "filename")

	f, err := h.images.Open(name)
	if err != nil {
		if errors.Is(err, uploads.ErrNotFound) || errors.Is(err, uploads.ErrInvalidName) {
			writeJSON(w, http.StatusNotFound, messageResponse(uploads.ErrNotFound.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, messageResponse("internal server error"))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, messageResponse("internal server error"))
		return
	}

	http.ServeContent(w, r, name, info.ModTime(), f)
}
