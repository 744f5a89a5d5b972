package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/kennywhwu/blogly/config"
	"github.com/kennywhwu/blogly/database"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(database database.Database) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port)

	startupTime := time.Now()

	router, err := newRouter(database, withConfig(c))
	if err != nil {
		return Server{}, err
	}

	readTimeout := time.Duration(config.GetInt(c, "READ_TIMEOUT_SECONDS", 30)) * time.Second
	writeTimeout := time.Duration(config.GetInt(c, "WRITE_TIMEOUT_SECONDS", 30)) * time.Second
	idleTimeout := time.Duration(config.GetInt(c, "IDLE_TIMEOUT_SECONDS", 120)) * time.Second

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config   map[string]string
	renderer Renderer
	session  *scs.SessionManager
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withRenderer(renderer Renderer) func(*router) {
	return func(r *router) {
		r.renderer = renderer
	}
}

func withSession(session *scs.SessionManager) func(*router) {
	return func(r *router) {
		r.session = session
	}
}

func newRouter(database database.Database, opts ...func(*router)) (*chi.Mux, error) {
	var router router
	for _, opt := range opts {
		opt(&router)
	}

	if router.renderer == nil {
		templateDir := config.GetString(router.config, "TEMPLATE_DIR", "web/templates")
		renderer, err := NewTemplateRenderer(templateDir, log.With().Str("handlerName", "renderer").Logger())
		if err != nil {
			return nil, fmt.Errorf("failed to parse templates: %w", err)
		}
		router.renderer = renderer
	}

	// The session carries flash confirmations between a mutation's redirect
	// and the next page render.
	if router.session == nil {
		router.session = scs.New()
		router.session.Lifetime = 24 * time.Hour
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(router.session.LoadAndSave)

	handlers := initializeHandlers(database, router.renderer, router.session)

	setupRoutes(chiRouter, handlers, router.renderer)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
