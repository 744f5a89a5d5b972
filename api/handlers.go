package api

import (
	"net/http"
	"strconv"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/kennywhwu/blogly/database"
)

// session key for the one-shot confirmation message shown after a mutation
const flashKey = "flash"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	userHandler userHandler
	postHandler postHandler
	tagHandler  tagHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, renderer Renderer, session *scs.SessionManager) *routeHandlers {
	return &routeHandlers{
		userHandler: newUserHandler(renderer, session, database.UserRepo()),
		postHandler: newPostHandler(renderer, session, database.PostRepo(), database.UserRepo(), database.TagRepo()),
		tagHandler:  newTagHandler(renderer, session, database.TagRepo()),
	}
}

// parseID reads a numeric URL parameter. A non-numeric value means the URL
// doesn't name a resource, which is a 404, not a 400.
func parseID(r *http.Request, param string) (uint, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
