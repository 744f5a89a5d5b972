package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the page routes for every entity
func setupRoutes(r chi.Router, handlers *routeHandlers, renderer Renderer) {
	r.Group(func(r chi.Router) {
		r.Use(RequestLoggingMiddleware)

		r.Get("/", handlers.postHandler.homepage())

		// User endpoints
		r.Get("/users", handlers.userHandler.listUsers())
		r.Get("/users/new", handlers.userHandler.newUserForm())
		r.Post("/users/new", handlers.userHandler.createUser())
		r.Get("/users/{userID}", handlers.userHandler.showUser())
		r.Get("/users/{userID}/edit", handlers.userHandler.editUserForm())
		r.Post("/users/{userID}/edit", handlers.userHandler.updateUser())
		r.Post("/users/{userID}/delete", handlers.userHandler.deleteUser())

		// Post endpoints
		r.Get("/users/{userID}/posts/new", handlers.postHandler.newPostForm())
		r.Post("/users/{userID}/posts/new", handlers.postHandler.createPost())
		r.Get("/posts/{postID}", handlers.postHandler.showPost())
		r.Get("/posts/{postID}/edit", handlers.postHandler.editPostForm())
		r.Post("/posts/{postID}/edit", handlers.postHandler.updatePost())
		r.Post("/posts/{postID}/delete", handlers.postHandler.deletePost())

		// Tag endpoints
		r.Get("/tags", handlers.tagHandler.listTags())
		r.Get("/tags/new", handlers.tagHandler.newTagForm())
		r.Post("/tags/new", handlers.tagHandler.createTag())
		r.Get("/tags/{tagID}", handlers.tagHandler.showTag())
		r.Get("/tags/{tagID}/edit", handlers.tagHandler.editTagForm())
		r.Post("/tags/{tagID}/edit", handlers.tagHandler.updateTag())
		r.Post("/tags/{tagID}/delete", handlers.tagHandler.deleteTag())
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		renderer.RenderNotFound(w)
	})
}
