package forms

import (
	"net/url"
	"strings"
)

// TagForm carries the submitted fields of the tag create/edit pages.
type TagForm struct {
	Name string
}

func ParseTagForm(values url.Values) TagForm {
	return TagForm{Name: strings.TrimSpace(values.Get("name"))}
}

func (f TagForm) Validate() error {
	ve := validate([]field{
		{"name", f.Name, []rule{required, maxLength(50)}},
	})
	if len(ve) > 0 {
		return ve
	}
	return nil
}
