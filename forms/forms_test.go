package forms

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/kennywhwu/blogly/errs"
	"github.com/kennywhwu/blogly/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldErrors(t *testing.T, err error) errs.ValidationErrors {
	t.Helper()
	var ve errs.ValidationErrors
	require.True(t, errors.As(err, &ve), "expected ValidationErrors, got %v", err)
	return ve
}

func Test_UserForm(t *testing.T) {
	t.Run("valid submission passes", func(t *testing.T) {
		form := ParseUserForm(url.Values{
			"first_name": {"Jane"},
			"last_name":  {"Doe"},
			"image_url":  {"https://example.com/jane.png"},
		})
		assert.NoError(t, form.Validate())
	})

	t.Run("every missing field is reported, not just the first", func(t *testing.T) {
		form := ParseUserForm(url.Values{})
		ve := fieldErrors(t, form.Validate())
		byField := ve.ByField()
		assert.Equal(t, ReasonRequired, byField["first_name"])
		assert.Equal(t, ReasonRequired, byField["last_name"])
		assert.Len(t, ve, 2)
	})

	t.Run("image url must be well formed when present", func(t *testing.T) {
		form := ParseUserForm(url.Values{
			"first_name": {"Jane"},
			"last_name":  {"Doe"},
			"image_url":  {"not-a-url"},
		})
		ve := fieldErrors(t, form.Validate())
		assert.Equal(t, ReasonInvalidURL, ve.ByField()["image_url"])
	})

	t.Run("omitted image url is valid and resolves to the placeholder", func(t *testing.T) {
		form := ParseUserForm(url.Values{
			"first_name": {"Jane"},
			"last_name":  {"Doe"},
		})
		assert.NoError(t, form.Validate())
		assert.Equal(t, models.DefaultImageURL, form.ImageURLOrDefault())
	})

	t.Run("names are capped at 50 characters", func(t *testing.T) {
		form := ParseUserForm(url.Values{
			"first_name": {strings.Repeat("a", 51)},
			"last_name":  {"Doe"},
		})
		ve := fieldErrors(t, form.Validate())
		assert.Equal(t, ReasonTooLong, ve.ByField()["first_name"])
	})
}

func Test_PostForm(t *testing.T) {
	choices := map[uint]string{2: "golang", 3: "webdev"}

	t.Run("valid submission passes and yields the selected ids", func(t *testing.T) {
		form := ParsePostForm(url.Values{
			"title":   {"Hello"},
			"content": {"First post."},
			"tags":    {"2", "3"},
		})
		require.NoError(t, form.Validate(choices))
		assert.Equal(t, []uint{2, 3}, form.SelectedTagIDs())
	})

	t.Run("a tag id outside the current choice set fails", func(t *testing.T) {
		form := ParsePostForm(url.Values{
			"title":   {"Hello"},
			"content": {"First post."},
			"tags":    {"2", "5"},
		})
		ve := fieldErrors(t, form.Validate(choices))
		assert.Equal(t, ReasonInvalidChoice, ve.ByField()["tags"])
	})

	t.Run("a non-numeric tag id fails the same way", func(t *testing.T) {
		form := ParsePostForm(url.Values{
			"title":   {"Hello"},
			"content": {"First post."},
			"tags":    {"golang"},
		})
		ve := fieldErrors(t, form.Validate(choices))
		assert.Equal(t, ReasonInvalidChoice, ve.ByField()["tags"])
	})

	t.Run("all failing fields are collected in one pass", func(t *testing.T) {
		form := ParsePostForm(url.Values{
			"tags": {"5"},
		})
		ve := fieldErrors(t, form.Validate(choices))
		byField := ve.ByField()
		assert.Equal(t, ReasonRequired, byField["title"])
		assert.Equal(t, ReasonRequired, byField["content"])
		assert.Equal(t, ReasonInvalidChoice, byField["tags"])
	})

	t.Run("title is capped at 100 characters", func(t *testing.T) {
		form := ParsePostForm(url.Values{
			"title":   {strings.Repeat("a", 101)},
			"content": {"ok"},
		})
		ve := fieldErrors(t, form.Validate(nil))
		assert.Equal(t, ReasonTooLong, ve.ByField()["title"])
	})
}

func Test_TagForm(t *testing.T) {
	t.Run("valid submission passes", func(t *testing.T) {
		form := ParseTagForm(url.Values{"name": {"golang"}})
		assert.NoError(t, form.Validate())
	})

	t.Run("name is required", func(t *testing.T) {
		form := ParseTagForm(url.Values{})
		ve := fieldErrors(t, form.Validate())
		assert.Equal(t, ReasonRequired, ve.ByField()["name"])
	})

	t.Run("name is capped at 50 characters", func(t *testing.T) {
		form := ParseTagForm(url.Values{"name": {strings.Repeat("x", 51)}})
		ve := fieldErrors(t, form.Validate())
		assert.Equal(t, ReasonTooLong, ve.ByField()["name"])
	})
}
