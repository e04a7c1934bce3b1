package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folioadmin/folioadmin-go/internal/model"
)

func validProject() Project {
	return Project{
		Title:       "Snackly",
		Description: "Snackly is a food delivery app",
		Category:    model.CategoryMobileApp,
		Link:        "https://snackly.example.com",
		Github:      "https://github.com/example/snackly",
	}
}

func TestLogin_ShortUsername(t *testing.T) {
	f := Login{Username: "ab", Password: "password123"}

	err := f.Validate()

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "length must be at least 3 characters long", fields["username"])
	assert.NotContains(t, fields, "password")
}

func TestLogin_TrimsBeforeChecking(t *testing.T) {
	f := Login{Username: "  ab  ", Password: "  password123  "}

	err := f.Validate()

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Contains(t, fields, "username")
	assert.Equal(t, "password123", f.Password)
}

func TestLogin_Missing(t *testing.T) {
	f := Login{}

	err := f.Validate()

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "User name is required", fields["username"])
	assert.Equal(t, "Password is required", fields["password"])
}

func TestLogin_LongUsernameAndShortPassword(t *testing.T) {
	f := Login{Username: strings.Repeat("a", 21), Password: "short"}

	err := f.Validate()

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "length must be at most 20 characters long", fields["username"])
	assert.Equal(t, "length must be at least 8 characters long", fields["password"])
}

func TestLogin_Valid(t *testing.T) {
	f := Login{Username: "carl_johnson", Password: "grove-street"}
	assert.NoError(t, f.Validate())
}

func TestProject_ValidateUpdateValid(t *testing.T) {
	p := validProject()
	assert.NoError(t, p.ValidateUpdate())
}

func TestProject_ValidateCreateRequiresImage(t *testing.T) {
	p := validProject()

	err := p.ValidateCreate()

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Len(t, fields, 1)
	assert.Equal(t, ImageRequiredMessage(), fields["image"])
}

func TestProject_ValidateCreateWithImage(t *testing.T) {
	p := validProject()
	p.Image = &model.ImageFile{Name: "cover.png", Content: strings.NewReader("png")}

	assert.NoError(t, p.ValidateCreate())
}

func TestProject_FieldRules(t *testing.T) {
	p := Project{
		Title:       strings.Repeat("t", 101),
		Description: strings.Repeat("d", 501),
		Category:    "Games",
		Link:        "not a url",
		Github:      "",
	}

	err := p.ValidateUpdate()

	var fields FieldErrors
	require.ErrorAs(t, err, &fields)
	assert.Equal(t, "length must be at most 100 characters long", fields["title"])
	assert.Equal(t, "length must be at most 500 characters long", fields["description"])
	assert.Equal(t, "must be one of: Web Development, Mobile App", fields["category"])
	assert.Equal(t, "must be a valid URL", fields["link"])
	assert.Equal(t, "Github is required", fields["github"])
}

func TestFromProject_PrePopulates(t *testing.T) {
	p := model.Project{ID: 7, Title: "A", Description: "B", Image: "a.png", Category: model.CategoryWebDevelopment, Link: "https://a.test", Github: "https://github.com/a"}

	f := FromProject(p)

	assert.Equal(t, "A", f.Title)
	assert.Equal(t, "https://github.com/a", f.Github)
	assert.Nil(t, f.Image)
	assert.Equal(t, f.Title, f.Input().Title)
}

func TestFieldErrors_ErrorIsSorted(t *testing.T) {
	err := FieldErrors{"title": "x", "link": "y"}
	assert.Equal(t, "validation failed: link: y; title: x", err.Error())
}
