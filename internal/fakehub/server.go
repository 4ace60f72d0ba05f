// Package fakehub is an in-memory stand-in for the model hosting API. It
// implements the upload, update and fetch endpoints closely enough to drive
// the client end to end in tests and local runs.
package fakehub

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"modelhub/internal/httpform"
	"modelhub/pkg/types"
)

// maxUploadBytes bounds the multipart body accepted by POST /models.
const maxUploadBytes int64 = 64 << 20

// Submission records what the server received for one request.
type Submission struct {
	Method        string
	Authorization string
	Fields        map[string][]string
	FileName      string
	File          []byte
}

type entry struct {
	model       types.Model
	submissions []Submission
}

// Server holds uploaded models in memory.
type Server struct {
	mu     sync.Mutex
	models map[string]*entry
	// InitialState is applied to new uploads. Defaults to PENDING.
	InitialState types.ProcessingState
	// Tokens, when non-empty, restricts accepted Authorization values.
	Tokens map[string]bool
}

// New returns an empty Server.
func New() *Server {
	return &Server{models: make(map[string]*entry), InitialState: types.ProcessingPending}
}

// Handler returns the chi router serving the API under /models.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Post("/models", s.handleUpload)
	r.Patch("/models/{uid}", s.handleUpdate)
	r.Get("/models/{uid}", s.handleGet)
	return r
}

func (s *Server) authorized(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(auth, " ")
	if !ok || token == "" || (scheme != "Bearer" && scheme != "Token") {
		return auth, false
	}
	if len(s.Tokens) > 0 && !s.Tokens[token] {
		return auth, false
	}
	return auth, true
}

func (s *Server) readForm(w http.ResponseWriter, r *http.Request) (Submission, bool) {
	auth, ok := s.authorized(r)
	if !ok {
		writeJSONError(w, http.StatusUnauthorized, "authentication credentials were not provided")
		return Submission{}, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSONError(w, http.StatusBadRequest, "expected multipart/form-data body")
		return Submission{}, false
	}
	sub := Submission{Method: r.Method, Authorization: auth, Fields: map[string][]string{}}
	for k, v := range r.MultipartForm.Value {
		sub.Fields[k] = append([]string(nil), v...)
	}
	return sub, true
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	sub, ok := s.readForm(w, r)
	if !ok {
		return
	}
	f, hdr, err := r.FormFile("modelFile")
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "modelFile is required")
		return
	}
	defer f.Close()
	buf, err := io.ReadAll(f)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "unreadable modelFile")
		return
	}
	sub.FileName, sub.File = hdr.Filename, buf

	uid := strings.ReplaceAll(uuid.NewString(), "-", "")
	now := time.Now().UTC()
	m := types.Model{
		UID:       uid,
		Name:      hdr.Filename,
		URI:       "/models/" + uid,
		CreatedAt: &now,
		Status:    types.ModelStatus{Processing: s.InitialState},
	}
	applyFields(&m, sub.Fields)

	s.mu.Lock()
	s.models[uid] = &entry{model: m, submissions: []Submission{sub}}
	s.mu.Unlock()

	w.Header().Set("Location", uid)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	sub, ok := s.readForm(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, found := s.models[uid]
	if !found {
		writeJSONError(w, http.StatusNotFound, "model not found")
		return
	}
	applyFields(&e.model, sub.Fields)
	e.submissions = append(e.submissions, sub)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	uid := chi.URLParam(r, "uid")
	s.mu.Lock()
	e, found := s.models[uid]
	var m types.Model
	if found {
		m = e.model
	}
	s.mu.Unlock()
	if !found {
		writeJSONError(w, http.StatusNotFound, "model not found")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to encode response")
	}
}

// applyFields copies recognized form fields onto m.
func applyFields(m *types.Model, f map[string][]string) {
	first := func(k string) (string, bool) {
		if v := f[k]; len(v) > 0 {
			return v[0], true
		}
		return "", false
	}
	if v, ok := first("name"); ok {
		m.Name = v
	}
	if v, ok := first("description"); ok {
		m.Description = v
	}
	if v, ok := first("license"); ok {
		m.License = &types.License{Slug: v}
	}
	if tags, ok := f["tags"]; ok {
		m.Tags = m.Tags[:0]
		for _, t := range tags {
			m.Tags = append(m.Tags, types.Tag{Slug: strings.ToLower(t), Name: t})
		}
	}
	if cats, ok := f["categories"]; ok {
		m.Categories = m.Categories[:0]
		for _, c := range cats {
			m.Categories = append(m.Categories, types.Category{Slug: strings.ToLower(c), Name: c})
		}
	}
	if v, ok := first("private"); ok {
		m.IsPrivate = v == httpform.BoolString(true)
	}
	if v, ok := first("isPublished"); ok {
		m.IsPublished = v == httpform.BoolString(true)
		if m.IsPublished && m.PublishedAt == nil {
			now := time.Now().UTC()
			m.PublishedAt = &now
		}
	}
	if v, ok := first("isInspectable"); ok {
		m.IsInspectable = v == httpform.BoolString(true)
	}
}

// SetProcessing moves uid to state. It reports false for unknown models.
func (s *Server) SetProcessing(uid string, state types.ProcessingState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.models[uid]
	if !ok {
		return false
	}
	e.model.Status.Processing = state
	return true
}

// Model returns a copy of the stored model.
func (s *Server) Model(uid string) (types.Model, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.models[uid]
	if !ok {
		return types.Model{}, false
	}
	return e.model, true
}

// Submissions returns every request received for uid, oldest first.
func (s *Server) Submissions(uid string) []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.models[uid]
	if !ok {
		return nil
	}
	return append([]Submission(nil), e.submissions...)
}

// Len is the number of stored models.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.models)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}
