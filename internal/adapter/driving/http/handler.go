// Package httphandler implements the JSON driving adapter for the credential vault.
package httphandler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/passcheck/internal/application"
	"github.com/ericfisherdev/passcheck/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the vault JSON endpoints.
type Handler struct {
	vault    *application.VaultService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(vault *application.VaultService, logger *slog.Logger) *Handler {
	return &Handler{
		vault:    vault,
		validate: newValidator(),
		logger:   logger,
	}
}

// RegisterRoutes registers the vault and health endpoints on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("POST /save-password", h.SavePassword)
	mux.HandleFunc("POST /autofill", h.Autofill)
	mux.HandleFunc("GET /get-passwords", h.ListPasswords)
	mux.HandleFunc("POST /create-passkey", h.CreatePasskey)
	mux.HandleFunc("GET /get-passkeys", h.ListPasskeys)
	mux.HandleFunc("GET /health", h.Health)
}

// SavePassword encrypts and stores a new credential for a site.
func (h *Handler) SavePassword(w http.ResponseWriter, r *http.Request) {
	var req SavePasswordRequest
	if err := h.bind(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	if err := h.vault.Save(r.Context(), req.Site, req.Username, req.Password); err != nil {
		h.writeVaultError(w, err, "save password", "site", req.Site)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Status: statusSuccess, Message: "Password saved"})
}

// Autofill returns the most recently saved login for a site.
func (h *Handler) Autofill(w http.ResponseWriter, r *http.Request) {
	var req SiteRequest
	if err := h.bind(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	login, err := h.vault.Autofill(r.Context(), req.Site)
	if err != nil {
		h.writeVaultError(w, err, "autofill", "site", req.Site)
		return
	}

	if login == nil {
		writeJSON(w, http.StatusNotFound, NotFoundResponse{Status: statusNotFound})
		return
	}

	writeJSON(w, http.StatusOK, AutofillResponse{
		Status:   statusSuccess,
		Username: login.Username,
		Password: login.Password,
	})
}

// ListPasswords returns every saved (site, username) pair newest first.
func (h *Handler) ListPasswords(w http.ResponseWriter, r *http.Request) {
	recs, err := h.vault.List(r.Context())
	if err != nil {
		h.writeVaultError(w, err, "list passwords")
		return
	}

	data := make([]SiteLoginResponse, 0, len(recs))
	for _, rec := range recs {
		data = append(data, toSiteLoginResponse(rec))
	}

	writeJSON(w, http.StatusOK, PasswordListResponse{Status: statusSuccess, Data: data})
}

// CreatePasskey generates and stores a new passkey for a site.
func (h *Handler) CreatePasskey(w http.ResponseWriter, r *http.Request) {
	var req SiteRequest
	if err := h.bind(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, bindErrorMessage(err))
		return
	}

	passkey, err := h.vault.CreatePasskey(r.Context(), req.Site)
	if err != nil {
		h.writeVaultError(w, err, "create passkey", "site", req.Site)
		return
	}

	writeJSON(w, http.StatusOK, PasskeyCreatedResponse{Passkey: passkey})
}

// ListPasskeys returns every stored passkey.
func (h *Handler) ListPasskeys(w http.ResponseWriter, r *http.Request) {
	recs, err := h.vault.ListPasskeys(r.Context())
	if err != nil {
		h.writeVaultError(w, err, "list passkeys")
		return
	}

	resp := make([]PasskeyResponse, 0, len(recs))
	for _, rec := range recs {
		resp = append(resp, toPasskeyResponse(rec))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// writeVaultError maps a VaultService error to a JSON response. Validation
// errors are the client's fault; everything else is logged and reported as 500.
func (h *Handler) writeVaultError(w http.ResponseWriter, err error, op string, attrs ...any) {
	switch {
	case errors.Is(err, application.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, driven.ErrDecrypt):
		h.logger.Error("failed to "+op, append(attrs, "error", err)...)
		writeError(w, http.StatusInternalServerError, "stored password could not be decrypted")
	default:
		h.logger.Error("failed to "+op, append(attrs, "error", err)...)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
