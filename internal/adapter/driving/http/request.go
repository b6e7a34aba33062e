package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// maxBodyBytes bounds request bodies; every endpoint takes a few short fields.
const maxBodyBytes = 1 << 20

// errMalformedBody is returned by bind when the body cannot be parsed.
var errMalformedBody = errors.New("malformed request body")

// SavePasswordRequest is the body of POST /save-password.
type SavePasswordRequest struct {
	Site     string `json:"site" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *SavePasswordRequest) fromForm(get func(string) string) {
	r.Site = get("site")
	r.Username = get("username")
	r.Password = get("password")
}

// SiteRequest is the body of POST /autofill and POST /create-passkey.
type SiteRequest struct {
	Site string `json:"site" validate:"required"`
}

func (r *SiteRequest) fromForm(get func(string) string) {
	r.Site = get("site")
}

// formRequest is implemented by request types that can be filled from form fields.
type formRequest interface {
	fromForm(get func(string) string)
}

// newValidator returns a validator that reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind fills dst from a JSON body or from url-encoded/multipart form fields,
// depending on Content-Type, then validates it.
func (h *Handler) bind(w http.ResponseWriter, r *http.Request, dst formRequest) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: %w", errMalformedBody, err)
		}
	} else {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		if mediaType == "multipart/form-data" {
			if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
				return fmt.Errorf("%w: %w", errMalformedBody, err)
			}
		} else if err := r.ParseForm(); err != nil {
			return fmt.Errorf("%w: %w", errMalformedBody, err)
		}
		dst.fromForm(r.FormValue)
	}

	return h.validate.Struct(dst)
}

// bindErrorMessage turns a bind failure into a client-facing message.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return "missing required fields: " + strings.Join(fields, ", ")
	}
	return "invalid request body"
}
