// Package form holds the input schemas of the admin client and the
// messages shown when a field fails validation.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/folioadmin/folioadmin-go/internal/model"
)

var validate = newValidator()

var labels = map[string]string{
	"username":    "User name",
	"password":    "Password",
	"title":       "Title",
	"description": "Description",
	"category":    "Category",
	"link":        "Link",
	"github":      "Github",
	"image":       "Image",
}

// FieldErrors maps a form field name to the message to show next to it.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + e[f]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("form"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return model.IsCategory(fl.Field().String())
	})
	return v
}

// check runs the struct validator and converts its output to FieldErrors.
func check(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := make(FieldErrors, len(verrs))
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	label := labels[fe.Field()]
	if label == "" {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "min":
		return fmt.Sprintf("length must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("length must be at most %s characters long", fe.Param())
	case "url":
		return "must be a valid URL"
	case "category":
		return "must be one of: " + strings.Join(model.Categories, ", ")
	default:
		return label + " is invalid"
	}
}
