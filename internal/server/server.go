// Package server exposes editing sessions over HTTP.
//
// Each session owns an editor, its undo history and a mutex; requests for
// the same session are handled one at a time so the editor sees events in
// order. Every committed plan is appended to a Revisions store.
package server

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"wallsketch/internal/editor"
	"wallsketch/internal/history"
	"wallsketch/internal/logging"
	"wallsketch/internal/plan"
)

// Revisions records plan states. store.Repository implements it.
type Revisions interface {
	AppendRevision(ctx context.Context, planID, reason string, p plan.Plan) (int, error)
	Count(ctx context.Context, planID string) (int, error)
	DeletePlan(ctx context.Context, planID string) error
}

type session struct {
	mu      sync.Mutex
	id      string
	editor  *editor.Editor
	history *history.History[plan.Plan]
}

func newSession(id string, p plan.Plan, settings editor.Settings) *session {
	s := &session{
		id:      id,
		editor:  editor.New(p, settings),
		history: history.New(p),
	}
	s.editor.OnChange = s.history.Set
	return s
}

type Server struct {
	mu       sync.RWMutex
	sessions map[string]*session
	revs     Revisions
	settings editor.Settings
}

// New returns a server whose sessions start with settings.
func New(revs Revisions, settings editor.Settings) *Server {
	return &Server{
		sessions: make(map[string]*session),
		revs:     revs,
		settings: settings,
	}
}

func (s *Server) create(ctx context.Context, p plan.Plan) (*session, error) {
	id := uuid.NewString()
	sess := newSession(id, p, s.settings)
	if _, err := s.revs.AppendRevision(ctx, id, "create", p); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	logging.L().Info("session created", "id", id, "walls", len(p.Walls))
	return sess, nil
}

func (s *Server) get(id string) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *Server) remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

// Len returns the number of open sessions.
func (s *Server) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// record stores the session's present plan. Storage failures are logged and
// do not undo the edit.
func (s *Server) record(ctx context.Context, sess *session, reason string) {
	if _, err := s.revs.AppendRevision(ctx, sess.id, reason, sess.history.Present()); err != nil {
		logging.L().Warn("store revision", "id", sess.id, "reason", reason, "err", err)
	}
}
