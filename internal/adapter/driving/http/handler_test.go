package httphandler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/passcheck/internal/adapter/driven/aesgcm"
	httphandler "github.com/ericfisherdev/passcheck/internal/adapter/driving/http"
	"github.com/ericfisherdev/passcheck/internal/application"
	"github.com/ericfisherdev/passcheck/internal/domain/model"
)

// --- Mock implementations ---

type mockPasswordStore struct {
	recs []model.PasswordRecord
	err  error
}

func (m *mockPasswordStore) Insert(_ context.Context, rec model.PasswordRecord) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	rec.ID = int64(len(m.recs) + 1)
	m.recs = append(m.recs, rec)
	return rec.ID, nil
}

func (m *mockPasswordStore) LatestBySite(_ context.Context, site string) (*model.PasswordRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := len(m.recs) - 1; i >= 0; i-- {
		if m.recs[i].Site == site {
			rec := m.recs[i]
			return &rec, nil
		}
	}
	return nil, nil
}

func (m *mockPasswordStore) ListAll(_ context.Context) ([]model.PasswordRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]model.PasswordRecord, 0, len(m.recs))
	for i := len(m.recs) - 1; i >= 0; i-- {
		out = append(out, model.PasswordRecord{ID: m.recs[i].ID, Site: m.recs[i].Site, Username: m.recs[i].Username})
	}
	return out, nil
}

type mockPasskeyStore struct {
	recs []model.PasskeyRecord
	err  error
}

func (m *mockPasskeyStore) Insert(_ context.Context, rec model.PasskeyRecord) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	rec.ID = int64(len(m.recs) + 1)
	m.recs = append(m.recs, rec)
	return rec.ID, nil
}

func (m *mockPasskeyStore) ListAll(_ context.Context) ([]model.PasskeyRecord, error) {
	return m.recs, m.err
}

// --- Test helpers ---

type testServer struct {
	handler   http.Handler
	passwords *mockPasswordStore
	passkeys  *mockPasskeyStore
}

func setupServer(t *testing.T) *testServer {
	t.Helper()

	cipher, err := aesgcm.New(bytes.Repeat([]byte{1}, aesgcm.KeySize))
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	passwords := &mockPasswordStore{}
	passkeys := &mockPasskeyStore{}
	vault := application.NewVaultService(passwords, passkeys, cipher, logger)

	mux := http.NewServeMux()
	httphandler.RegisterRoutes(mux, httphandler.NewHandler(vault, logger))

	return &testServer{
		handler:   httphandler.ApplyMiddleware(mux, logger),
		passwords: passwords,
		passkeys:  passkeys,
	}
}

func (s *testServer) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

// --- Tests ---

func TestSavePassword_ThenAutofill(t *testing.T) {
	s := setupServer(t)

	rec := s.postForm(t, "/save-password", url.Values{
		"site":     {"Example.com"},
		"username": {"alice"},
		"password": {"hunter22"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	body := decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.NotEmpty(t, body["message"])

	rec = s.postForm(t, "/autofill", url.Values{"site": {"example.com"}})
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeBody(t, rec)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "hunter22", body["password"])
}

func TestSavePassword_JSONBody(t *testing.T) {
	s := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/save-password",
		strings.NewReader(`{"site":"example.com","username":"alice","password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, s.passwords.recs, 1)
	assert.Equal(t, "example.com", s.passwords.recs[0].Site)
}

func TestSavePassword_MultipartForm(t *testing.T) {
	s := setupServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("site", "example.com"))
	require.NoError(t, mw.WriteField("username", "alice"))
	require.NoError(t, mw.WriteField("password", "hunter22"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/save-password", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, s.passwords.recs, 1)
}

func TestSavePassword_MissingFields(t *testing.T) {
	s := setupServer(t)

	rec := s.postForm(t, "/save-password", url.Values{
		"site":     {"example.com"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.Contains(t, body["message"], "username")
	assert.Empty(t, s.passwords.recs)
}

func TestSavePassword_BlankSiteIsValidationError(t *testing.T) {
	s := setupServer(t)

	rec := s.postForm(t, "/save-password", url.Values{
		"site":     {"   "},
		"username": {"alice"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.passwords.recs)
}

func TestSavePassword_MalformedJSON(t *testing.T) {
	s := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/save-password", strings.NewReader(`{not json`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request body", decodeBody(t, rec)["message"])
}

func TestSavePassword_StorageError(t *testing.T) {
	s := setupServer(t)
	s.passwords.err = errors.New("disk I/O error")

	rec := s.postForm(t, "/save-password", url.Values{
		"site":     {"example.com"},
		"username": {"alice"},
		"password": {"hunter22"},
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, body["message"], "disk I/O")
}

func TestAutofill_NotFound(t *testing.T) {
	s := setupServer(t)

	rec := s.postForm(t, "/autofill", url.Values{"site": {"nosuchsite"}})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, map[string]any{"status": "not_found"}, decodeBody(t, rec))
}

func TestAutofill_MissingSite(t *testing.T) {
	s := setupServer(t)

	rec := s.postForm(t, "/autofill", url.Values{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAutofill_TamperedCiphertext(t *testing.T) {
	s := setupServer(t)
	s.passwords.recs = append(s.passwords.recs, model.PasswordRecord{
		ID: 1, Site: "example.com", Username: "alice", EncryptedPassword: []byte("garbage-ciphertext-that-will-not-open"),
	})

	rec := s.postForm(t, "/autofill", url.Values{"site": {"example.com"}})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "error", body["status"])
	assert.NotContains(t, rec.Body.String(), "password\":")
}

func TestListPasswords_NewestFirstWithoutPasswords(t *testing.T) {
	s := setupServer(t)
	for _, user := range []string{"alice", "bob"} {
		rec := s.postForm(t, "/save-password", url.Values{
			"site": {"example.com"}, "username": {user}, "password": {"secret-" + user},
		})
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := s.get(t, "/get-passwords")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp httphandler.PasswordListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "bob", resp.Data[0].Username)
	assert.Equal(t, "alice", resp.Data[1].Username)
	assert.NotContains(t, rec.Body.String(), "secret-")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestListPasswords_EmptyIsArray(t *testing.T) {
	s := setupServer(t)

	rec := s.get(t, "/get-passwords")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"success","data":[]}`, rec.Body.String())
}

func TestListPasswords_StorageError(t *testing.T) {
	s := setupServer(t)
	s.passwords.err = errors.New("database is locked")

	rec := s.get(t, "/get-passwords")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "error", decodeBody(t, rec)["status"])
}

func TestCreatePasskey_ThenList(t *testing.T) {
	s := setupServer(t)

	rec := s.postForm(t, "/create-passkey", url.Values{"site": {"Example.com"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var created httphandler.PasskeyCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Len(t, created.Passkey, 43)

	rec = s.get(t, "/get-passkeys")
	require.Equal(t, http.StatusOK, rec.Code)

	var listed []httphandler.PasskeyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "example.com", listed[0].Site)
	assert.Equal(t, created.Passkey, listed[0].Passkey)
}

func TestCreatePasskey_MissingSite(t *testing.T) {
	s := setupServer(t)

	rec := s.postForm(t, "/create-passkey", url.Values{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, s.passkeys.recs)
}

func TestListPasskeys_EmptyIsArray(t *testing.T) {
	s := setupServer(t)

	rec := s.get(t, "/get-passkeys")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	s := setupServer(t)

	rec := s.get(t, "/save-password")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	s := setupServer(t)

	rec := s.get(t, "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp httphandler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestApplyMiddleware_RecoversPanic(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := httphandler.ApplyMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), logger)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"internal server error"}`, rec.Body.String())
}
