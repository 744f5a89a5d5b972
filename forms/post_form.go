package forms

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/kennywhwu/blogly/errs"
)

// PostForm carries the submitted fields of the post create/edit pages. Tag
// ids are kept as the raw submitted strings until Validate has checked them
// against the current choice set.
type PostForm struct {
	Title   string
	Content string
	TagIDs  []string
}

func ParsePostForm(values url.Values) PostForm {
	return PostForm{
		Title:   strings.TrimSpace(values.Get("title")),
		Content: strings.TrimSpace(values.Get("content")),
		TagIDs:  values["tags"],
	}
}

// Validate checks the text fields and every selected tag id against choices,
// the set of tags that exist right now. The choice set must be
// queried fresh per request so tags created after page load are accepted.
func (f PostForm) Validate(choices map[uint]string) error {
	ve := validate([]field{
		{"title", f.Title, []rule{required, maxLength(100)}},
		{"content", f.Content, []rule{required}},
	})
	for _, raw := range f.TagIDs {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			ve = append(ve, errs.FieldError{Field: "tags", Reason: ReasonInvalidChoice})
			break
		}
		if _, ok := choices[uint(id)]; !ok {
			ve = append(ve, errs.FieldError{Field: "tags", Reason: ReasonInvalidChoice})
			break
		}
	}
	if len(ve) > 0 {
		return ve
	}
	return nil
}

// SelectedTagIDs returns the submitted tag ids as integers. Call only after
// Validate has accepted the form.
func (f PostForm) SelectedTagIDs() []uint {
	ids := make([]uint, 0, len(f.TagIDs))
	for _, raw := range f.TagIDs {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
