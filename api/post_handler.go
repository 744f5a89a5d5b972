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

// homepagePostCount is how many of the newest posts the homepage shows.
const homepagePostCount = 5

type postHandler struct {
	renderer Renderer
	logger   zerolog.Logger
	session  *scs.SessionManager
	postRepo *database.PostRepo
	userRepo *database.UserRepo
	tagRepo  *database.TagRepo
}

func newPostHandler(renderer Renderer, session *scs.SessionManager, postRepo *database.PostRepo, userRepo *database.UserRepo, tagRepo *database.TagRepo) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		renderer: renderer,
		logger:   logger,
		session:  session,
		postRepo: postRepo,
		userRepo: userRepo,
		tagRepo:  tagRepo,
	}
}

// PostFormViewData is the data structure for the post create form page.
type PostFormViewData struct {
	User *models.User
	Tags []*models.Tag
}

// homepage shows the five most recent posts, newest first
func (h postHandler) homepage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := h.postRepo.FindLatest(homepagePostCount)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.renderer.Render(w, http.StatusOK, "homepage.html", PageData{
			Title: "Blogly",
			Flash: h.session.PopString(r.Context(), flashKey),
			Data:  posts,
		})
	}
}

// newPostForm shows the post form for a user, offering every current tag as
// a checkbox choice
func (h postHandler) newPostForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseID(r, "userID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		tags, err := h.tagRepo.FindAll()
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.renderer.Render(w, http.StatusOK, "post_new.html", PageData{
			Title: "New Post",
			Data:  PostFormViewData{User: user, Tags: tags},
			Form:  url.Values{},
		})
	}
}

// createPost validates the submitted form against the current tag table and
// adds the post together with its tag links in one transaction. Validation
// failure, including an unknown tag id, re-renders the form and nothing is
// written.
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := parseID(r, "userID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, errs.NewBadRequestError("malformed form body"))
			return
		}

		choices, err := h.tagRepo.Choices()
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		form := forms.ParsePostForm(r.PostForm)
		if err := form.Validate(choices); err != nil {
			var ve errs.ValidationErrors
			errors.As(err, &ve)
			h.renderFormAgain(w, "post_new.html", "New Post", user, r.PostForm, ve.ByField())
			return
		}

		post := models.Post{
			Title:   form.Title,
			Content: form.Content,
			UserID:  userID,
		}
		if err := h.postRepo.Add(&post, form.SelectedTagIDs()); err != nil {
			if errs.IsConflict(err) {
				h.renderFormAgain(w, "post_new.html", "New Post", user, r.PostForm,
					map[string]string{"title": "already_exists"})
				return
			}
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Post '%s' added.", post.Title))
		http.Redirect(w, r, fmt.Sprintf("/users/%d", userID), http.StatusSeeOther)
	}
}

// showPost shows a post's details with its tags and author
func (h postHandler) showPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, ok := parseID(r, "postID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.renderer.Render(w, http.StatusOK, "post_details.html", PageData{
			Title: post.Title,
			Flash: h.session.PopString(r.Context(), flashKey),
			Data:  post,
		})
	}
}

// editPostForm shows the edit form prefilled with the post's current values.
// Only title and content are editable; the tag set stays as created.
func (h postHandler) editPostForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, ok := parseID(r, "postID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		form := url.Values{}
		form.Set("title", post.Title)
		form.Set("content", post.Content)

		h.renderer.Render(w, http.StatusOK, "post_edit.html", PageData{
			Title: "Edit " + post.Title,
			Data:  post,
			Form:  form,
		})
	}
}

// updatePost validates the submitted form and overwrites title and content
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, ok := parseID(r, "postID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, errs.NewBadRequestError("malformed form body"))
			return
		}

		form := forms.ParsePostForm(r.PostForm)
		if err := form.Validate(nil); err != nil {
			var ve errs.ValidationErrors
			errors.As(err, &ve)
			h.renderer.Render(w, http.StatusOK, "post_edit.html", PageData{
				Title:  "Edit " + post.Title,
				Data:   post,
				Form:   r.PostForm,
				Errors: ve.ByField(),
			})
			return
		}

		post.Title = form.Title
		post.Content = form.Content
		if err := h.postRepo.Update(post); err != nil {
			if errs.IsConflict(err) {
				h.renderer.Render(w, http.StatusOK, "post_edit.html", PageData{
					Title:  "Edit " + post.Title,
					Data:   post,
					Form:   r.PostForm,
					Errors: map[string]string{"title": "already_exists"},
				})
				return
			}
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Updated post '%s'", post.Title))
		http.Redirect(w, r, fmt.Sprintf("/posts/%d", postID), http.StatusSeeOther)
	}
}

// deletePost removes the post and its tag links, then returns to the owner
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, ok := parseID(r, "postID")
		if !ok {
			h.renderer.RenderNotFound(w)
			return
		}

		post, err := h.postRepo.FindByID(postID)
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		if err := h.postRepo.Delete(postID); err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Deleted post '%s'", post.Title))
		http.Redirect(w, r, fmt.Sprintf("/users/%d", post.UserID), http.StatusSeeOther)
	}
}

// renderFormAgain re-renders the post form with the submitted values, the
// field errors and a freshly queried tag choice list.
func (h postHandler) renderFormAgain(w http.ResponseWriter, name, title string, user *models.User, submitted url.Values, fieldErrors map[string]string) {
	tags, err := h.tagRepo.FindAll()
	if err != nil {
		h.renderer.RenderError(w, err)
		return
	}
	h.renderer.Render(w, http.StatusOK, name, PageData{
		Title:  title,
		Data:   PostFormViewData{User: user, Tags: tags},
		Form:   submitted,
		Errors: fieldErrors,
	})
}
