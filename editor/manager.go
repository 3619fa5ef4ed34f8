package editor

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"lumen-cms/content"
)

// Manager owns every open editing session, keyed by an opaque session
// id handed to the admin client.
type Manager struct {
	saver  DraftSaver
	notify Notifier
	quiet  time.Duration

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(saver DraftSaver, notify Notifier, quiet time.Duration) *Manager {
	return &Manager{
		saver:    saver,
		notify:   notify,
		quiet:    quiet,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session for a new (postID 0) or existing document.
func (m *Manager) Open(postID uint, body content.Content) *Session {
	s := newSession(uuid.NewString(), postID, body, m.saver, m.notify, m.quiet)
	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Close tears the session down and cancels its pending autosave.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		s.Close()
	}
}
