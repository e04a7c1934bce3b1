package model

import "testing"

func TestIsCategory(t *testing.T) {
	if !IsCategory("Web Development") {
		t.Error("expected Web Development to be a category")
	}
	if !IsCategory(CategoryMobileApp) {
		t.Error("expected Mobile App to be a category")
	}
	if IsCategory("web development") {
		t.Error("category match must be exact")
	}
	if IsCategory("") {
		t.Error("empty string is not a category")
	}
}
