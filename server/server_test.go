package server

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prompt_generator/apperr"
	"prompt_generator/generator"
)

type fakeCopier struct {
	got string
	err error
}

func (f *fakeCopier) Copy(_ context.Context, text string) (string, error) {
	f.got = text
	if f.err != nil {
		return "", f.err
	}
	return "xclip", nil
}

type fakeSaver struct {
	doc, format string
	err         error
}

func (f *fakeSaver) Save(doc, format string) (string, error) {
	f.doc, f.format = doc, format
	if f.err != nil {
		return "", f.err
	}
	return "/prompts/prompt_20250101_000000." + format, nil
}

func (f *fakeSaver) Dir() string { return "/prompts" }

func newTestServer(t *testing.T, deps Deps) http.Handler {
	t.Helper()
	if deps.Copier == nil {
		deps.Copier = &fakeCopier{}
	}
	if deps.Saver == nil {
		deps.Saver = &fakeSaver{}
	}
	deps.OS = "linux"
	deps.Logger = zerolog.Nop()
	srv, err := New(deps)
	require.NoError(t, err)
	return srv.Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNew_RequiresDeps(t *testing.T) {
	_, err := New(Deps{Saver: &fakeSaver{}})
	assert.Error(t, err)
	_, err = New(Deps{Copier: &fakeCopier{}})
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	h := newTestServer(t, Deps{})
	rec := do(t, h, http.MethodPost, "/api/generate", generator.PromptSpec{Role: "X"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp generateResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Prompt, "## ROLE\nYou are X."))
	assert.Contains(t, resp.HTML, "<h2>ROLE</h2>")
}

func TestGenerate_ValidationError(t *testing.T) {
	h := newTestServer(t, Deps{})
	rec := do(t, h, http.MethodPost, "/api/generate", generator.PromptSpec{Tone: "Formal"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, generator.MinimumFieldsMessage, resp.Error)
	assert.True(t, strings.HasPrefix(resp.Status, "⚠️"))
	assert.Len(t, resp.Fields, 4)
}

func TestGenerate_BadJSON(t *testing.T) {
	h := newTestServer(t, Deps{})
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader("{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCopy(t *testing.T) {
	c := &fakeCopier{}
	h := newTestServer(t, Deps{Copier: c})
	rec := do(t, h, http.MethodPost, "/api/copy", promptReq{Prompt: "doc"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "doc", c.got)

	var resp statusResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "xclip", resp.Tool)
	assert.Contains(t, resp.Status, "(xclip)")
}

func TestCopy_Errors(t *testing.T) {
	c := &fakeCopier{err: &apperr.ClipboardError{Err: errors.New("both failed"), Hint: "install xclip"}}
	h := newTestServer(t, Deps{Copier: c})

	rec := do(t, h, http.MethodPost, "/api/copy", promptReq{Prompt: "doc"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "install xclip")

	rec = do(t, h, http.MethodPost, "/api/copy", promptReq{Prompt: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSave(t *testing.T) {
	s := &fakeSaver{}
	h := newTestServer(t, Deps{Saver: s})

	rec := do(t, h, http.MethodPost, "/api/save", promptReq{Prompt: "doc", Format: "json"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "json", s.format)

	var resp statusResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/prompts/prompt_20250101_000000.json", resp.Path)

	rec = do(t, h, http.MethodPost, "/api/save", promptReq{Prompt: "doc"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "txt", s.format)
}

func TestSave_Errors(t *testing.T) {
	h := newTestServer(t, Deps{Saver: &fakeSaver{err: &apperr.PersistenceError{Kind: apperr.KindIO, Err: fs.ErrPermission}}})
	rec := do(t, h, http.MethodPost, "/api/save", promptReq{Prompt: "doc"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Error while saving")

	h = newTestServer(t, Deps{Saver: &fakeSaver{err: apperr.Validation("no prompt to save.")}})
	rec = do(t, h, http.MethodPost, "/api/save", promptReq{Prompt: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOptions(t *testing.T) {
	h := newTestServer(t, Deps{})
	rec := do(t, h, http.MethodGet, "/api/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp optionsResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "/prompts", resp.SaveDir)
	assert.Equal(t, "linux", resp.OS)
	assert.False(t, resp.TryEnabled)
	assert.NotEmpty(t, resp.Tones)
	assert.Equal(t, "Technical and precise", resp.Defaults.Tone)
}

func TestTry(t *testing.T) {
	h := newTestServer(t, Deps{})
	rec := do(t, h, http.MethodPost, "/api/try", promptReq{Prompt: "doc"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	agent, err := generator.NewAgent(generator.MockLLM{}, "mock")
	require.NoError(t, err)
	h = newTestServer(t, Deps{Trier: agent})

	rec = do(t, h, http.MethodPost, "/api/try", promptReq{Prompt: "## ROLE\nYou are X."})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp tryResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Answer.Text, "- ROLE")
	assert.Equal(t, "mock", resp.Answer.Model)
}

func TestStaticIndex(t *testing.T) {
	h := newTestServer(t, Deps{})
	rec := do(t, h, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Prompt Generator")
}
