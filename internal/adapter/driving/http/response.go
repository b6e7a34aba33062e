package httphandler

import (
	"encoding/json"
	"net/http"

	"github.com/ericfisherdev/passcheck/internal/domain/model"
)

// Result status values shared by the JSON endpoints.
const (
	statusSuccess  = "success"
	statusError    = "error"
	statusNotFound = "not_found"
)

// writeJSON marshals v to JSON and writes it to the response with the given
// status code. If marshaling fails, a 500 error is written instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"status":"error","message":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Status: statusError, Message: message})
}

// MessageResponse is the {status, message} body used by save-password and
// by every error response.
type MessageResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// AutofillResponse is the success body of POST /autofill.
type AutofillResponse struct {
	Status   string `json:"status"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// NotFoundResponse is returned by POST /autofill when the site has no saved login.
type NotFoundResponse struct {
	Status string `json:"status"`
}

// SiteLoginResponse is one entry of GET /get-passwords. The password is never listed.
type SiteLoginResponse struct {
	Site     string `json:"site"`
	Username string `json:"username"`
}

// PasswordListResponse is the body of GET /get-passwords.
type PasswordListResponse struct {
	Status string              `json:"status"`
	Data   []SiteLoginResponse `json:"data"`
}

// PasskeyCreatedResponse is the body of POST /create-passkey.
type PasskeyCreatedResponse struct {
	Passkey string `json:"passkey"`
}

// PasskeyResponse is one entry of GET /get-passkeys.
type PasskeyResponse struct {
	Site    string `json:"site"`
	Passkey string `json:"passkey"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

func toSiteLoginResponse(rec model.PasswordRecord) SiteLoginResponse {
	return SiteLoginResponse{Site: rec.Site, Username: rec.Username}
}

func toPasskeyResponse(rec model.PasskeyRecord) PasskeyResponse {
	return PasskeyResponse{Site: rec.Site, Passkey: rec.Passkey}
}
