package api

import (
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/kennywhwu/blogly/errs"
	"github.com/rs/zerolog"
)

// PageData is what every template receives: the payload for the page plus
// the re-display state of a failed form submission.
type PageData struct {
	Title  string
	Flash  string
	Data   any
	Form   url.Values        // submitted (or prefilled) field values
	Errors map[string]string // field name to failure reason
}

// Renderer is the view boundary. Handlers hand it a success payload or a
// structured error; expected conditions never escape as faults.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data PageData)
	RenderNotFound(w http.ResponseWriter)
	RenderError(w http.ResponseWriter, err error)
}

// TemplateRenderer renders pages from a parsed html/template set.
type TemplateRenderer struct {
	templates *template.Template
	logger    zerolog.Logger
}

func NewTemplateRenderer(templateDir string, logger zerolog.Logger) (TemplateRenderer, error) {
	tpl, err := template.ParseGlob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return TemplateRenderer{}, err
	}
	return TemplateRenderer{templates: tpl, logger: logger}, nil
}

func (r TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error().Err(err).Str("template", name).Msg("error executing template")
	}
}

func (r TemplateRenderer) RenderNotFound(w http.ResponseWriter) {
	r.Render(w, http.StatusNotFound, "404.html", PageData{Title: "Page Not Found"})
}

// RenderError maps structured errors onto the right page. Not-found renders
// the 404 page; anything else is unexpected, gets logged with its full cause
// chain and becomes a plain 500.
func (r TemplateRenderer) RenderError(w http.ResponseWriter, err error) {
	var apiErr *errs.ApiErr
	if errors.As(err, &apiErr) {
		if apiErr.StatusCode == http.StatusNotFound {
			r.RenderNotFound(w)
			return
		}
		r.logger.Error().Msg(apiErr.GetFullError())
	} else {
		r.logger.Error().Msg(err.Error())
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
