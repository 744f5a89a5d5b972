package forms

import (
	"net/url"
	"strings"

	"github.com/kennywhwu/blogly/models"
)

// UserForm carries the submitted fields of the user create/edit pages.
type UserForm struct {
	FirstName string
	LastName  string
	ImageURL  string
}

func ParseUserForm(values url.Values) UserForm {
	return UserForm{
		FirstName: strings.TrimSpace(values.Get("first_name")),
		LastName:  strings.TrimSpace(values.Get("last_name")),
		ImageURL:  strings.TrimSpace(values.Get("image_url")),
	}
}

// Validate returns errs.ValidationErrors covering every failing field, or
// nil when the submission is acceptable.
func (f UserForm) Validate() error {
	ve := validate([]field{
		{"first_name", f.FirstName, []rule{required, maxLength(50)}},
		{"last_name", f.LastName, []rule{required, maxLength(50)}},
		{"image_url", f.ImageURL, []rule{optionalURL}},
	})
	if len(ve) > 0 {
		return ve
	}
	return nil
}

// ImageURLOrDefault resolves an omitted image URL to the fixed placeholder.
func (f UserForm) ImageURLOrDefault() string {
	if f.ImageURL == "" {
		return models.DefaultImageURL
	}
	return f.ImageURL
}
