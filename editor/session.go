// Package editor owns the server side of an admin editing session: the
// visual/markdown mode controller and the debounced autosave that
// pushes draft snapshots to the document store.
package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"lumen-cms/content"
)

type Mode string

const (
	ModeVisual   Mode = "visual"
	ModeMarkdown Mode = "markdown"
)

// DefaultQuietPeriod is how long a session must stay idle before a
// pending autosave fires.
const DefaultQuietPeriod = 10 * time.Second

// DraftSaver persists an autosave snapshot as a partial update keyed by
// the document's existing store identifier.
type DraftSaver interface {
	SaveDraft(ctx context.Context, id uint, body content.Content) error
}

// Notifier receives non-fatal session events (conversion failures,
// autosave errors). Failures never interrupt editing.
type Notifier func(event string, err error)

var ErrSessionClosed = errors.New("editor: session closed")

// Session is the exclusive owner of one in-progress document edit. At
// most one representation is live at a time: the block/HTML content in
// visual mode, or the markdown source in markdown mode. The other is
// derived only at the transition boundary.
type Session struct {
	id     string
	saver  DraftSaver
	notify Notifier
	quiet  time.Duration

	mu         sync.Mutex
	postID     uint // 0 until the document first exists in the store
	mode       Mode
	visual     content.Content
	markdown   string
	timer      *time.Timer
	submitting bool
	closed     bool
}

func newSession(id string, postID uint, body content.Content, saver DraftSaver, notify Notifier, quiet time.Duration) *Session {
	if notify == nil {
		notify = func(string, error) {}
	}
	if quiet <= 0 {
		quiet = DefaultQuietPeriod
	}
	return &Session{
		id:     id,
		saver:  saver,
		notify: notify,
		quiet:  quiet,
		postID: postID,
		mode:   ModeVisual,
		visual: body,
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) PostID() uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postID
}

// SetPostID records the store identifier after the document's first
// explicit save, enabling autosave for the rest of the session.
func (s *Session) SetPostID(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.postID = id
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetContent replaces the live visual representation and schedules an
// autosave. Ignored in markdown mode, where the markdown source is the
// single live representation.
func (s *Session) SetContent(body content.Content) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.mode != ModeVisual {
		return errors.New("editor: session is in markdown mode")
	}
	s.visual = body
	s.scheduleLocked()
	return nil
}

// SetMarkdown replaces the live markdown source and schedules an
// autosave. Ignored in visual mode.
func (s *Session) SetMarkdown(source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if s.mode != ModeMarkdown {
		return errors.New("editor: session is in visual mode")
	}
	s.markdown = source
	s.scheduleLocked()
	return nil
}

// Markdown returns the live markdown source. Valid only in markdown
// mode.
func (s *Session) Markdown() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markdown
}

// SwitchMode converts the live representation and makes the target
// mode's representation the new source of truth. A conversion failure
// aborts the transition: the session stays in its prior mode and the
// failure is surfaced through the notifier.
func (s *Session) SwitchMode(target Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	if target == s.mode {
		return nil
	}
	switch target {
	case ModeMarkdown:
		s.markdown = content.HTMLToMarkdown(s.visual.HTML())
		s.visual = content.Content{}
		s.mode = ModeMarkdown
	case ModeVisual:
		rendered, err := content.MarkdownToHTML(s.markdown)
		if err != nil {
			s.notify("mode switch failed", err)
			return err
		}
		s.visual = content.HTMLContent(rendered)
		s.markdown = ""
		s.mode = ModeVisual
	default:
		return errors.New("editor: unknown mode")
	}
	return nil
}

// Snapshot derives the persistable body from whichever representation
// is live. In markdown mode a failed render falls back to the raw
// source rather than losing content.
func (s *Session) Snapshot() content.Content {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() content.Content {
	if s.mode == ModeMarkdown {
		rendered, err := content.MarkdownToHTML(s.markdown)
		if err != nil {
			return content.HTMLContent(s.markdown)
		}
		return content.HTMLContent(rendered)
	}
	return s.visual
}

// BeginSubmit raises the guard flag so no autosave can race the
// explicit save, and cancels any pending debounce.
func (s *Session) BeginSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = true
	s.cancelTimerLocked()
}

func (s *Session) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

// Close cancels any pending autosave so nothing is written after the
// editing surface goes away.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelTimerLocked()
}

func (s *Session) scheduleLocked() {
	s.cancelTimerLocked()
	s.timer = time.AfterFunc(s.quiet, s.autosave)
}

func (s *Session) cancelTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// autosave fires after the quiet period. It is guarded: never for a
// document that has no store identifier yet, never while an explicit
// submit is in flight. A failed autosave only notifies; the next
// debounce cycle is the retry.
func (s *Session) autosave() {
	s.mu.Lock()
	s.timer = nil
	if s.closed || s.submitting || s.postID == 0 {
		s.mu.Unlock()
		return
	}
	id := s.postID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	// the save runs outside the lock so editing stays responsive
	// while the write is in flight
	if err := s.saver.SaveDraft(context.Background(), id, snap); err != nil {
		s.notify("autosave failed", err)
	}
}
