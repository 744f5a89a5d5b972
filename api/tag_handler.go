package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"
	"github.com/kennywhwu/blogly/database"
	"github.com/kennywhwu/blogly/errs"
	"github.com/kennywhwu/blogly/forms"
	"github.com/kennywhwu/blogly/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	renderer Renderer
	logger   zerolog.Logger
	session  *scs.SessionManager
	tagRepo  *database.TagRepo
}

func newTagHandler(renderer Renderer, session *scs.SessionManager, tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		renderer: renderer,
		logger:   logger,
		session:  session,
		tagRepo:  tagRepo,
	}
}

// listTags shows all tags ordered by name
func (h tagHandler) listTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.renderer.Render(w, http.StatusOK, "tag_list.html", PageData{
			Title: "Tags",
			Flash: h.session.PopString(r.Context(), flashKey),
			Data:  tags,
		})
	}
}

// newTagForm shows an empty tag form
func (h tagHandler) newTagForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "tag_new.html", PageData{
			Title: "New Tag",
			Form:  url.Values{},
		})
	}
}

// createTag validates the submitted form and adds the tag. A duplicate name
// is rendered like a validation failure on the name field.
func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, errs.NewBadRequestError("malformed form body"))
			return
		}

		form := forms.ParseTagForm(r.PostForm)
		if err := form.Validate(); err != nil {
			var ve errs.ValidationErrors
			errors.As(err, &ve)
			h.renderer.Render(w, http.StatusOK, "tag_new.html", PageData{
				Title:  "New Tag",
				Form:   r.PostForm,
				Errors: ve.ByField(),
			})
			return
		}

		tag := models.Tag{Name: form.Name}
		if err := h.tagRepo.Add(&tag); err != nil {
			if errs.IsConflict(err) {
				h.renderer.Render(w, http.StatusOK, "tag_new.html", PageData{
					Title:  "New Tag",
					Form:   r.PostForm,
					Errors: map[string]string{"name": "already_exists"},
				})
				return
			}
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Tag '%s' added.", tag.Name))
		http.Redirect(w, r, "/tags", http.StatusSeeOther)
	}
}

// showTag shows a tag's details with the posts that carry it
func (h tagHandler) showTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, ok := parseID(r, "tagID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.renderer.Render(w, http.StatusOK, "tag_details.html", PageData{
			Title: tag.Name,
			Flash: h.session.PopString(r.Context(), flashKey),
			Data:  tag,
		})
	}
}

// editTagForm shows the edit form prefilled with the tag's current name
func (h tagHandler) editTagForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, ok := parseID(r, "tagID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		form := url.Values{}
		form.Set("name", tag.Name)

		h.renderer.Render(w, http.StatusOK, "tag_edit.html", PageData{
			Title: "Edit " + tag.Name,
			Data:  tag,
			Form:  form,
		})
	}
}

// updateTag validates the submitted form and overwrites the tag name
func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, ok := parseID(r, "tagID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, errs.NewBadRequestError("malformed form body"))
			return
		}

		form := forms.ParseTagForm(r.PostForm)
		if err := form.Validate(); err != nil {
			var ve errs.ValidationErrors
			errors.As(err, &ve)
			h.renderer.Render(w, http.StatusOK, "tag_edit.html", PageData{
				Title:  "Edit " + tag.Name,
				Data:   tag,
				Form:   r.PostForm,
				Errors: ve.ByField(),
			})
			return
		}

		tag.Name = form.Name
		if err := h.tagRepo.Update(tag); err != nil {
			if errs.IsConflict(err) {
				h.renderer.Render(w, http.StatusOK, "tag_edit.html", PageData{
					Title:  "Edit " + tag.Name,
					Data:   tag,
					Form:   r.PostForm,
					Errors: map[string]string{"name": "already_exists"},
				})
				return
			}
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Updated Tag '%s'", tag.Name))
		http.Redirect(w, r, fmt.Sprintf("/tags/%d", tagID), http.StatusSeeOther)
	}
}

// deleteTag removes the tag and its post links; the posts themselves stay
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, ok := parseID(r, "tagID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		tag, err := h.tagRepo.FindByID(tagID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		if err := h.tagRepo.Delete(tagID); err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Deleted Tag '%s'", tag.Name))
		http.Redirect(w, r, "/tags", http.StatusSeeOther)
	}
}
