package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioadmin/folioadmin-go/internal/client"
	"github.com/folioadmin/folioadmin-go/internal/crypto"
	"github.com/folioadmin/folioadmin-go/internal/model"
	"github.com/folioadmin/folioadmin-go/internal/repository"
	"github.com/folioadmin/folioadmin-go/internal/service"
	"github.com/folioadmin/folioadmin-go/internal/uploads"
)

const (
	adminUser = "carl"
	adminPass = "grove-street"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	dir := t.TempDir()

	db, err := repository.NewDB(ctx, repository.DriverSQLite, filepath.Join(dir, "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	images, err := uploads.New(filepath.Join(dir, "uploads"))
	require.NoError(t, err)

	log := zerolog.Nop()
	tokens := crypto.NewTokenIssuer("test-secret", time.Hour)
	authSvc := service.NewAuthService(repository.NewUserRepository(db), tokens, log)
	_, err = authSvc.EnsureAdmin(ctx, adminUser, adminPass)
	require.NoError(t, err)

	router := NewRouter(ctx, RouterConfig{
		Auth:           NewAuthHandler(authSvc, log),
		Projects:       NewProjectHandler(service.NewProjectService(repository.NewProjectRepository(db), images, log), log),
		Images:         NewImageHandler(images),
		Tokens:         tokens,
		AllowedOrigins: []string{"http://localhost:3000"},
		LoginRPS:       100,
		LoginBurst:     100,
		Log:            log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func login(t *testing.T, c *client.Client) string {
	t.Helper()
	resp, err := c.Login(context.Background(), adminUser, adminPass)
	require.NoError(t, err)
	return resp.AccessToken
}

func input(title string, image *model.ImageFile) model.ProjectInput {
	return model.ProjectInput{
		Title:       title,
		Description: "a portfolio project",
		Category:    model.CategoryWebDevelopment,
		Link:        "https://example.test/" + title,
		Github:      "https://github.com/example/" + title,
		Image:       image,
	}
}

func png(name string) *model.ImageFile {
	return &model.ImageFile{Name: name, Content: strings.NewReader("png:" + name)}
}

func TestProjectLifecycle(t *testing.T) {
	srv := newTestServer(t)
	c := client.New(srv.URL)
	ctx := context.Background()
	token := login(t, c)

	msg, err := c.CreateProject(ctx, token, input("alpha", png("alpha.png")))
	require.NoError(t, err)
	assert.Equal(t, "Project added successfully", msg)
	_, err = c.CreateProject(ctx, token, input("beta", png("beta.png")))
	require.NoError(t, err)

	projects, err := c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	alpha := projects[0]
	assert.Equal(t, "alpha", alpha.Title)

	rc, err := c.FetchImage(ctx, alpha.Image)
	require.NoError(t, err)
	data, _ := io.ReadAll(rc)
	rc.Close()
	assert.Equal(t, "png:alpha.png", string(data))

	updated, err := c.UpdateProject(ctx, token, alpha.ID, input("alpha-2", nil))
	require.NoError(t, err)
	assert.Equal(t, alpha.ID, updated.UpdatedProject.ID)
	assert.Equal(t, "alpha-2", updated.UpdatedProject.Title)
	assert.Equal(t, alpha.Image, updated.UpdatedProject.Image)

	msg, err = c.DeleteProject(ctx, token, alpha.ID)
	require.NoError(t, err)
	assert.Equal(t, "Project deleted successfully", msg)

	projects, err = c.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "beta", projects[0].Title)

	_, err = c.FetchImage(ctx, alpha.Image)
	assert.Equal(t, client.KindNotFound, client.KindOf(err))
}

func TestLogin_BadCredentials(t *testing.T) {
	c := client.New(newTestServer(t).URL)

	_, err := c.Login(context.Background(), adminUser, "wrong-password")

	assert.Equal(t, client.KindUnauthorized, client.KindOf(err))
	assert.Equal(t, "invalid username or password", client.MessageOf(err))
}

func TestLogin_InvalidBody(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/login", "application/json", strings.NewReader("{"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body model.MessageResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "invalid request body", body.Message)
}

func TestMutationsRequireToken(t *testing.T) {
	c := client.New(newTestServer(t).URL)
	ctx := context.Background()

	_, err := c.CreateProject(ctx, "", input("alpha", png("alpha.png")))
	assert.True(t, client.IsUnauthorized(err))

	_, err = c.DeleteProject(ctx, "not-a-token", 1)
	assert.True(t, client.IsUnauthorized(err))
}

func TestCreate_MissingImage(t *testing.T) {
	c := client.New(newTestServer(t).URL)
	token := login(t, c)

	_, err := c.CreateProject(context.Background(), token, input("alpha", nil))

	assert.Equal(t, client.KindValidation, client.KindOf(err))
	assert.Contains(t, client.MessageOf(err), "image file is required !")
}

func TestCreate_UnsupportedImageType(t *testing.T) {
	c := client.New(newTestServer(t).URL)
	token := login(t, c)

	_, err := c.CreateProject(context.Background(), token, input("alpha", &model.ImageFile{Name: "notes.txt", Content: strings.NewReader("x")}))

	assert.Equal(t, client.KindValidation, client.KindOf(err))
}

func TestUpdateAndDelete_UnknownProject(t *testing.T) {
	c := client.New(newTestServer(t).URL)
	ctx := context.Background()
	token := login(t, c)

	_, err := c.UpdateProject(ctx, token, 99, input("ghost", nil))
	assert.Equal(t, client.KindNotFound, client.KindOf(err))

	_, err = c.DeleteProject(ctx, token, 99)
	assert.Equal(t, client.KindNotFound, client.KindOf(err))
}

func TestDelete_InvalidID(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, client.New(srv.URL))

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/projects/abc", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/projects/1", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
