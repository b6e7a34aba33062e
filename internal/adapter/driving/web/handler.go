// Package web implements the HTML driving adapter using templ components.
package web

import (
	"log/slog"
	"mime"
	"net/http"

	"github.com/ericfisherdev/passcheck/internal/adapter/driving/web/templates"
	"github.com/ericfisherdev/passcheck/internal/adapter/driving/web/templates/pages"
	vm "github.com/ericfisherdev/passcheck/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/passcheck/internal/application"
)

// maxFormBytes bounds the check form body.
const maxFormBytes = 64 << 10

// Handler is the web GUI driving adapter that serves the password check page.
type Handler struct {
	checkSvc     *application.CheckService
	guidanceHTML string
	logger       *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(checkSvc *application.CheckService, logger *slog.Logger) *Handler {
	return &Handler{
		checkSvc:     checkSvc,
		guidanceHTML: RenderMarkdown(guidanceMarkdown),
		logger:       logger,
	}
}

// Index renders the empty check form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, vm.IndexViewModel{GuidanceHTML: h.guidanceHTML})
}

// Check evaluates the submitted password and renders the result. The form may
// be url-encoded or multipart; a body without a password field is rejected.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	password, ok, err := passwordField(w, r)
	if err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}
	if !ok {
		http.Error(w, "missing password field", http.StatusBadRequest)
		return
	}

	report := h.checkSvc.Check(r.Context(), password)

	h.render(w, r, vm.IndexViewModel{
		Result:       toCheckResultViewModel(report),
		GuidanceHTML: h.guidanceHTML,
	})
}

// passwordField parses the request body according to its Content-Type and
// reports whether a password field was present. An empty value counts as present.
func passwordField(w http.ResponseWriter, r *http.Request) (string, bool, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return "", false, err
		}
	} else if err := r.ParseForm(); err != nil {
		return "", false, err
	}

	values, ok := r.PostForm["password"]
	if !ok || len(values) == 0 {
		return "", false, nil
	}
	return values[0], true, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data vm.IndexViewModel) {
	layout := templates.Layout("Password Strength Checker", pages.Index(data))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := layout.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render index", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
