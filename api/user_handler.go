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

type userHandler struct {
	renderer Renderer
	logger   zerolog.Logger
	session  *scs.SessionManager
	userRepo *database.UserRepo
}

func newUserHandler(renderer Renderer, session *scs.SessionManager, userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		renderer: renderer,
		logger:   logger,
		session:  session,
		userRepo: userRepo,
	}
}

// listUsers shows all users ordered by first then last name
func (h userHandler) listUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := h.userRepo.FindAll()
		if err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.renderer.Render(w, http.StatusOK, "user_list.html", PageData{
			Title: "Users",
			Flash: h.session.PopString(r.Context(), flashKey),
			Data:  users,
		})
	}
}

// newUserForm shows an empty user form
func (h userHandler) newUserForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderer.Render(w, http.StatusOK, "user_new.html", PageData{
			Title: "New User",
			Form:  url.Values{},
		})
	}
}

// createUser validates the submitted form and adds the user. A failed
// validation re-renders the form with the submitted values and every field
// error.
func (h userHandler) createUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			h.renderer.RenderError(w, errs.NewBadRequestError("malformed form body"))
			return
		}

		form := forms.ParseUserForm(r.PostForm)
		if err := form.Validate(); err != nil {
			var ve errs.ValidationErrors
			errors.As(err, &ve)
			h.renderer.Render(w, http.StatusOK, "user_new.html", PageData{
				Title:  "New User",
				Form:   r.PostForm,
				Errors: ve.ByField(),
			})
			return
		}

		user := models.User{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			ImageURL:  form.ImageURLOrDefault(),
		}
		if err := h.userRepo.Add(&user); err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Added '%s'", user.FullName()))
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	}
}

// showUser shows a user's details with their posts
func (h userHandler) showUser() http.HandlerFunc {
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

		h.renderer.Render(w, http.StatusOK, "user_details.html", PageData{
			Title: user.FullName(),
			Flash: h.session.PopString(r.Context(), flashKey),
			Data:  user,
		})
	}
}

// editUserForm shows the edit form prefilled with the user's current values
func (h userHandler) editUserForm() http.HandlerFunc {
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

		form := url.Values{}
		form.Set("first_name", user.FirstName)
		form.Set("last_name", user.LastName)
		form.Set("image_url", user.ImageURL)

		h.renderer.Render(w, http.StatusOK, "user_edit.html", PageData{
			Title: "Edit " + user.FullName(),
			Data:  user,
			Form:  form,
		})
	}
}

// updateUser validates the submitted form and overwrites the user's fields
func (h userHandler) updateUser() http.HandlerFunc {
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

		form := forms.ParseUserForm(r.PostForm)
		if err := form.Validate(); err != nil {
			var ve errs.ValidationErrors
			errors.As(err, &ve)
			h.renderer.Render(w, http.StatusOK, "user_edit.html", PageData{
				Title:  "Edit " + user.FullName(),
				Data:   user,
				Form:   r.PostForm,
				Errors: ve.ByField(),
			})
			return
		}

		user.FirstName = form.FirstName
		user.LastName = form.LastName
		user.ImageURL = form.ImageURLOrDefault()
		if err := h.userRepo.Update(user); err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Updated '%s'", user.FullName()))
		http.Redirect(w, r, fmt.Sprintf("/users/%d", userID), http.StatusSeeOther)
	}
}

// deleteUser removes the user and, through the repo's transactional cascade,
// all of their posts and those posts' tag links
func (h userHandler) deleteUser() http.HandlerFunc {
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

		if err := h.userRepo.Delete(userID); err != nil {
			h.renderer.RenderError(w, err)
			return
		}

		h.session.Put(r.Context(), flashKey, fmt.Sprintf("Deleted '%s'", user.FullName()))
		http.Redirect(w, r, "/users", http.StatusSeeOther)
	}
}
