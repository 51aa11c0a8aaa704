package server

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"prompt_generator/apperr"
	"prompt_generator/clipboard"
	"prompt_generator/generator"
)

//go:embed web
var embeddedStatic embed.FS

const tryTimeout = 60 * time.Second

// Saver persists a generated document.
type Saver interface {
	Save(doc string, format string) (string, error)
	Dir() string
}

// Trier sends a document to a chat model.
type Trier interface {
	Try(ctx context.Context, doc string) (generator.Answer, error)
}

// Deps are the collaborators resolved at startup.
type Deps struct {
	Copier clipboard.Copier
	Saver  Saver
	// Trier is optional; nil disables /api/try.
	Trier  Trier
	OS     string
	Logger zerolog.Logger
}

type Server struct {
	deps     Deps
	options  generator.Options
	staticFS http.Handler
}

func New(deps Deps) (*Server, error) {
	if deps.Copier == nil {
		return nil, errors.New("clipboard copier required")
	}
	if deps.Saver == nil {
		return nil, errors.New("saver required")
	}

	sub, err := fs.Sub(embeddedStatic, "web")
	if err != nil {
		return nil, err
	}

	return &Server{
		deps:     deps,
		options:  generator.DefaultOptions(),
		staticFS: http.FileServer(http.FS(sub)),
	}, nil
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.logMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Post("/generate", s.handleGenerate)
		r.Post("/copy", s.handleCopy)
		r.Post("/save", s.handleSave)
		r.Post("/try", s.handleTry)
	})
	r.Handle("/*", s.staticFS)
	return r
}

// --- Handlers ---

type optionsResp struct {
	generator.Options
	SaveDir    string `json:"save_dir"`
	OS         string `json:"os"`
	TryEnabled bool   `json:"try_enabled"`
}

type generateResp struct {
	Prompt string `json:"prompt"`
	HTML   string `json:"html"`
}

type promptReq struct {
	Prompt string `json:"prompt"`
	Format string `json:"format,omitempty"`
}

type statusResp struct {
	Status string `json:"status"`
	Tool   string `json:"tool,omitempty"`
	Path   string `json:"path,omitempty"`
}

type tryResp struct {
	Answer generator.Answer `json:"answer"`
	HTML   string           `json:"html"`
}

type errorResp struct {
	Error  string   `json:"error"`
	Status string   `json:"status"`
	Fields []string `json:"fields,omitempty"`
}

func (s *Server) handleOptions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, optionsResp{
		Options:    s.options,
		SaveDir:    s.deps.Saver.Dir(),
		OS:         s.deps.OS,
		TryEnabled: s.deps.Trier != nil,
	})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var spec generator.PromptSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc, err := generator.Assemble(spec)
	if err != nil {
		s.writeError(w, err)
		return
	}
	html, err := generator.RenderHTML(doc)
	if err != nil {
		s.deps.Logger.Warn().Err(err).Msg("render preview")
	}
	writeJSON(w, http.StatusOK, generateResp{Prompt: doc, HTML: html})
}

func (s *Server) handleCopy(w http.ResponseWriter, r *http.Request) {
	var req promptReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	tool, err := clipboard.CopyPrompt(r.Context(), s.deps.Copier, req.Prompt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResp{
		Status: "✅ Prompt copied to the clipboard (" + tool + ")",
		Tool:   tool,
	})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	var req promptReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	format := req.Format
	if format == "" {
		format = "txt"
	}
	path, err := s.deps.Saver.Save(req.Prompt, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statusResp{
		Status: "✅ Prompt saved!\n📂 " + path,
		Path:   path,
	})
}

func (s *Server) handleTry(w http.ResponseWriter, r *http.Request) {
	if s.deps.Trier == nil {
		http.Error(w, "prompt trial disabled; configure llm.provider", http.StatusServiceUnavailable)
		return
	}
	var req promptReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), tryTimeout)
	defer cancel()
	ans, err := s.deps.Trier.Try(ctx, req.Prompt)
	if err != nil {
		s.writeError(w, err)
		return
	}
	html, err := generator.RenderHTML(ans.Text)
	if err != nil {
		s.deps.Logger.Warn().Err(err).Msg("render answer")
	}
	writeJSON(w, http.StatusOK, tryResp{Answer: ans, HTML: html})
}

// --- Helpers ---

func (s *Server) writeError(w http.ResponseWriter, err error) {
	resp := errorResp{Error: err.Error(), Status: apperr.Status(err)}
	code := http.StatusBadGateway

	var verr *apperr.ValidationError
	var perr *apperr.PersistenceError
	var cerr *apperr.ClipboardError
	switch {
	case errors.As(err, &verr):
		code = http.StatusBadRequest
		resp.Fields = verr.Fields
	case errors.As(err, &perr):
		code = http.StatusInternalServerError
	case errors.As(err, &cerr):
		code = http.StatusUnprocessableEntity
	}
	if code >= http.StatusInternalServerError {
		s.deps.Logger.Error().Err(err).Int("code", code).Msg("request failed")
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		s.deps.Logger.Debug().
			Str("method", r.Method).
			Str("path", path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("http request")
	})
}
