// Package memory persists user preferences and conversation summaries as a
// single JSON document that is rewritten in full after every mutation.
package memory

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
)

// recentConversations is how many entries GetConversations returns without a topic.
const recentConversations = 5

// Conversation is one stored conversation summary.
type Conversation struct {
	Topic     string `json:"topic"`
	Summary   string `json:"summary"`
	Timestamp string `json:"timestamp"`
}

// Document is the on-disk shape of the store.
type Document struct {
	Preferences   map[string][]string `json:"preferences,omitempty"`
	Conversations []Conversation      `json:"conversations,omitempty"`
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to timestamp conversations.
func WithClock(c Clock) Option {
	return func(s *Store) { s.clock = c }
}

// Store owns the memory document. The orchestrator only reaches it through
// the memory tools.
type Store struct {
	path  string
	clock Clock

	mu  sync.Mutex
	doc Document
}

// Open loads the document at path. A missing, unreadable or corrupt file
// yields an empty document; the error is logged, never returned.
func Open(path string, opts ...Option) *Store {
	s := &Store{path: path, clock: realClock{}}
	for _, opt := range opts {
		opt(s)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			slog.Warn("failed to create memory dir", "dir", dir, "err", err)
		}
	}
	s.doc = s.load()
	return s
}

// Path returns the document location.
func (s *Store) Path() string { return s.path }

func (s *Store) load() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Info("failed to read memory, starting empty", "path", s.path, "err", err)
		}
		return Document{}
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		slog.Info("failed to parse memory, starting empty", "path", s.path, "err", err)
		return Document{}
	}
	return doc
}

// save rewrites the whole document. Failures are logged and swallowed; the
// in-memory state stays authoritative. Caller must hold s.mu.
func (s *Store) save() {
	if err := s.write(); err != nil {
		slog.Warn("failed to save memory", "path", s.path, "err", err)
	}
}

func (s *Store) write() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write memory %s: %w", s.path, err)
	}
	return nil
}

// StorePreference adds preference to category unless it is already there
// (exact, case-sensitive match) and persists the document.
func (s *Store) StorePreference(category, preference string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc.Preferences == nil {
		s.doc.Preferences = make(map[string][]string)
	}
	list := s.doc.Preferences[category]
	if !slices.Contains(list, preference) {
		s.doc.Preferences[category] = append(list, preference)
	}
	s.save()

	return map[string]any{"status": "stored", "category": category, "preference": preference}
}

// GetPreferences returns {category: [...]} for a non-empty category (an empty
// list when unknown) or the full category mapping otherwise.
func (s *Store) GetPreferences(category string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if category != "" {
		return map[string]any{category: slices.Clone(nonNil(s.doc.Preferences[category]))}
	}
	out := make(map[string]any, len(s.doc.Preferences))
	for k, v := range s.doc.Preferences {
		out[k] = slices.Clone(nonNil(v))
	}
	return out
}

// StoreConversation appends a timestamped summary and persists the document.
func (s *Store) StoreConversation(topic, summary string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc.Conversations = append(s.doc.Conversations, Conversation{
		Topic:     topic,
		Summary:   summary,
		Timestamp: s.clock.Now().Format(time.RFC3339Nano),
	})
	s.save()

	return map[string]any{"status": "stored", "topic": topic}
}

// GetConversations returns every entry whose topic contains topic
// (case-insensitive) or, with an empty topic, the most recent five in
// chronological order.
func (s *Store) GetConversations(topic string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.doc.Conversations
	var picked []Conversation
	if topic != "" {
		needle := strings.ToLower(topic)
		for _, c := range all {
			if strings.Contains(strings.ToLower(c.Topic), needle) {
				picked = append(picked, c)
			}
		}
	} else {
		start := max(len(all)-recentConversations, 0)
		picked = slices.Clone(all[start:])
	}
	if picked == nil {
		picked = []Conversation{}
	}
	return map[string]any{"conversations": picked}
}

// Preferences returns a copy of the preference mapping.
func (s *Store) Preferences() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]string, len(s.doc.Preferences))
	for k, v := range s.doc.Preferences {
		out[k] = slices.Clone(nonNil(v))
	}
	return out
}

// Conversations returns a copy of every stored conversation.
func (s *Store) Conversations() []Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.doc.Conversations)
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
