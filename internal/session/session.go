// Package session holds the in-memory page collection for one in-progress
// capture or upload action. A session belongs to a single interactive caller
// and is not safe for concurrent use.
package session

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"docvault/internal/models"
)

// Mode tracks which half of the capture flow the session is in.
type Mode string

const (
	ModeCapturing Mode = "capturing"
	ModeReviewing Mode = "reviewing"
)

// Session is an ordered collection of page records. Insertion order is the
// page order of the final document unless explicitly reordered.
type Session struct {
	pages   []models.PageRecord
	mode    Mode
	counter int
}

// New creates an empty session in capturing mode.
func New() *Session {
	return &Session{mode: ModeCapturing}
}

// AddPage appends a new page at the end and returns its id. When
// suggestedName is empty the page gets a session-scoped sequence label.
func (s *Session) AddPage(image []byte, suggestedName string) string {
	s.counter++
	name := strings.TrimSpace(suggestedName)
	if name == "" {
		name = defaultPageName(s.counter)
	}
	page := models.PageRecord{
		ID:          uuid.NewString(),
		ImageBytes:  image,
		DisplayName: name,
	}
	s.pages = append(s.pages, page)
	return page.ID
}

// RemovePage removes the page with the given id. Removing an unknown id is
// a no-op; the relative order of the remaining pages never changes.
func (s *Session) RemovePage(id string) {
	for i, page := range s.pages {
		if page.ID == id {
			s.pages = append(s.pages[:i], s.pages[i+1:]...)
			return
		}
	}
}

// RenamePage replaces the display name of one page. Empty names are allowed
// here to permit transient states while editing; the submit step enforces
// non-empty names.
func (s *Session) RenamePage(id, name string) {
	for i := range s.pages {
		if s.pages[i].ID == id {
			s.pages[i].DisplayName = name
			return
		}
	}
}

// Reorder moves the page with the given id to target index, clamping the
// target into range. All other pages keep their relative order. Returns
// false when the id is not present.
func (s *Session) Reorder(id string, target int) bool {
	from := -1
	for i, page := range s.pages {
		if page.ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}
	if target < 0 {
		target = 0
	}
	if target >= len(s.pages) {
		target = len(s.pages) - 1
	}
	if target == from {
		return true
	}

	page := s.pages[from]
	rest := make([]models.PageRecord, 0, len(s.pages)-1)
	rest = append(rest, s.pages[:from]...)
	rest = append(rest, s.pages[from+1:]...)

	next := make([]models.PageRecord, 0, len(s.pages))
	next = append(next, rest[:target]...)
	next = append(next, page)
	next = append(next, rest[target:]...)
	s.pages = next
	return true
}

// Snapshot returns a copy of the pages in their current order. Later session
// mutations do not affect the returned slice.
func (s *Session) Snapshot() []models.PageRecord {
	out := make([]models.PageRecord, len(s.pages))
	copy(out, s.pages)
	return out
}

// Len reports the number of pages.
func (s *Session) Len() int {
	return len(s.pages)
}

// Mode reports the current session mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches between capturing and reviewing.
func (s *Session) SetMode(mode Mode) {
	if mode == ModeCapturing || mode == ModeReviewing {
		s.mode = mode
	}
}

func defaultPageName(n int) string {
	return "Scan " + strconv.Itoa(n)
}
