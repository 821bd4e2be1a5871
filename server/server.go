// Package server exposes the drafting and sync flows over a small JSON API:
// create a drafting session, revise it with comments, preview it as HTML,
// and publish the result to Notion.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"

	"notion_sync/generator"
	"notion_sync/notion"
)

type Server struct {
	genAgent *generator.Agent
	client   *notion.Client
	store    *sessionStore
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*generator.Session
}

func newStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*generator.Session)}
}

func (s *sessionStore) set(id string, sess *generator.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = sess
}

func (s *sessionStore) get(id string) (*generator.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// New builds a Server. The drafting agent is optional; without it only the
// preview endpoint works. The Notion client is required for publishing.
func New(genAgent *generator.Agent, client *notion.Client) (*Server, error) {
	if client == nil {
		return nil, errors.New("notion client required")
	}
	return &Server{
		genAgent: genAgent,
		client:   client,
		store:    newStore(),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/sessions", s.handleSessionCreate)
	mux.HandleFunc("/api/sessions/", s.handleSessionByID)
	mux.HandleFunc("/api/preview", s.handlePreview)
	mux.HandleFunc("/", s.handleIndex)
	return mux
}

// --- Handlers ---

type sessionCreateReq struct {
	Topic       string   `json:"topic"`
	Outline     []string `json:"outline"`
	Tone        string   `json:"tone"`
	Audience    string   `json:"audience"`
	Words       int      `json:"words"`
	Constraints []string `json:"constraints"`
}

type sessionResp struct {
	SessionID string           `json:"session_id"`
	Draft     generator.Draft  `json:"draft"`
	History   []generator.Turn `json:"history"`
}

type reviseReq struct {
	Comment string `json:"comment"`
}

type publishReq struct {
	ParentID string `json:"parent_id,omitempty"`
	Emoji    string `json:"emoji,omitempty"`
}

type publishResp struct {
	PageID string `json:"page_id"`
	URL    string `json:"url"`
}

type previewReq struct {
	Markdown string `json:"markdown"`
}

type previewResp struct {
	HTML string `json:"html"`
}

func (s *Server) handleSessionCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if s.genAgent == nil {
		http.Error(w, "drafting is not configured; set llm in the config file", http.StatusServiceUnavailable)
		return
	}
	var req sessionCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	spec := generator.NoteSpec{
		Topic:       req.Topic,
		Outline:     req.Outline,
		Tone:        req.Tone,
		Audience:    req.Audience,
		Words:       req.Words,
		Constraints: req.Constraints,
	}
	id := newSessionID()
	sess := generator.NewSession(id, spec, s.genAgent)
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()
	draft, err := sess.Propose(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	s.store.set(id, sess)
	writeJSON(w, sessionResp{SessionID: id, Draft: draft, History: sess.History})
}

func (s *Server) handleSessionByID(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/sessions/")
	id, action, _ := strings.Cut(rest, "/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	sess, ok := s.store.get(id)
	if !ok {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	if action == "publish" {
		s.handlePublish(w, r, sess)
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, sessionResp{SessionID: id, Draft: sess.Draft, History: sess.History})
	case http.MethodPost:
		var req reviseReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()
		draft, err := sess.Revise(ctx, req.Comment)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, sessionResp{SessionID: id, Draft: draft, History: sess.History})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request, sess *generator.Session) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if sess.Draft.Markdown == "" {
		http.Error(w, "session has no draft to publish", http.StatusConflict)
		return
	}
	// Body is optional; publish defaults are fine.
	var req publishReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()
	page, err := s.client.CreatePage(ctx, notion.PageParams{
		Title:    sess.Draft.Title,
		Emoji:    req.Emoji,
		ParentID: req.ParentID,
		Markdown: sess.Draft.Markdown,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, publishResp{PageID: page.ID, URL: page.URL})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req previewReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(req.Markdown), &buf); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, previewResp{HTML: buf.String()})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("notion_sync api\n\n" +
		"POST /api/sessions            draft a note\n" +
		"GET  /api/sessions/{id}       fetch a session\n" +
		"POST /api/sessions/{id}       revise with {\"comment\": ...}\n" +
		"POST /api/sessions/{id}/publish  sync the draft to Notion\n" +
		"POST /api/preview             render markdown to HTML\n"))
}

// --- Helpers ---

func newSessionID() string {
	return strings.ReplaceAll(time.Now().Format("20060102T150405.000000000"), ".", "")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
