// Package session owns the loaded person records, the active selection and
// the output transcript. It is the single owner of that state; the
// enumerator, completion provider and script runner only ever see values it
// passes them explicitly.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dbsmedya/personpad/internal/completion"
	"github.com/dbsmedya/personpad/internal/config"
	"github.com/dbsmedya/personpad/internal/graph"
	"github.com/dbsmedya/personpad/internal/logger"
	"github.com/dbsmedya/personpad/internal/record"
	"github.com/dbsmedya/personpad/internal/script"
)

// ErrNoActiveRecord is returned by operations that need a selected record.
var ErrNoActiveRecord = errors.New("no record selected")

// SelectionError is returned when a selection index is out of range.
type SelectionError struct {
	Index int
	Count int
}

func (e *SelectionError) Error() string {
	if e.Count == 0 {
		return fmt.Sprintf("cannot select record %d: no records loaded", e.Index)
	}
	return fmt.Sprintf("cannot select record %d: valid range is 0-%d", e.Index, e.Count-1)
}

// Entry is one script execution kept in the transcript.
type Entry struct {
	Source string
	Record int // index of the record the script ran against, -1 for none
	Result *script.Result
	At     time.Time
}

// Session is the controller behind every command and the interactive shell.
type Session struct {
	binding  string
	maxDepth int
	runner   *script.Runner
	provider *completion.Provider
	log      *logger.Logger

	mu         sync.RWMutex
	records    []any
	active     int
	source     string
	transcript []Entry
}

// New creates an empty Session from configuration.
func New(cfg *config.Config, log *logger.Logger) *Session {
	if log == nil {
		log = logger.NewNop()
	}
	return &Session{
		binding:  cfg.Completion.Binding,
		maxDepth: cfg.Completion.MaxDepth,
		runner:   script.NewRunner(cfg.Runner, log),
		provider: completion.NewProvider(cfg.Completion),
		log:      log,
		active:   -1,
	}
}

// Runner exposes the script runner, e.g. to attach an observer.
func (s *Session) Runner() *script.Runner {
	return s.runner
}

// Load parses data as a fixture document and replaces the loaded records.
// The first record becomes active. On a ParseError the session is left
// exactly as it was.
func (s *Session) Load(data []byte, source string) ([]any, error) {
	records, err := record.DecodeRecords(data)
	if err != nil {
		s.log.WithSource(source).Warnw("Failed to parse records", "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = records
	s.source = source
	s.active = -1
	if len(records) > 0 {
		s.active = 0
	}

	s.log.WithSource(source).Debugw("Records loaded", "count", len(records))
	return records, nil
}

// Source describes where the loaded records came from.
func (s *Session) Source() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.source
}

// Select makes the record at index active. Out-of-range indices return a
// *SelectionError and keep the previous selection.
func (s *Session) Select(index int) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.records) {
		return nil, &SelectionError{Index: index, Count: len(s.records)}
	}
	s.active = index
	s.log.WithRecord(index).Debugw("Record selected")
	return s.records[index], nil
}

// Active returns the selected record and its index.
func (s *Session) Active() (any, int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.active < 0 {
		return nil, -1, false
	}
	return s.records[s.active], s.active, true
}

// Records returns the loaded records in document order.
func (s *Session) Records() []any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]any, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of loaded records.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Execute runs source against the active record, bound as the configured
// binding name, and appends the run to the transcript. With no active record
// the binding is undefined.
func (s *Session) Execute(source string) *script.Result {
	rec, index, ok := s.Active()
	var bound any = script.Undefined
	if ok {
		bound = rec
	}

	result := s.runner.Execute(source, map[string]any{s.binding: bound})

	log := s.log.WithRecord(index)
	if result.Err != nil {
		log.Infow("Script failed", "error", result.Err.Error(), "duration", result.Duration)
	} else {
		log.Debugw("Script completed", "output_lines", len(result.Output), "duration", result.Duration)
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, Entry{
		Source: source,
		Record: index,
		Result: result,
		At:     time.Now(),
	})
	s.mu.Unlock()

	return result
}

// Suggest returns completion candidates for the text under the cursor.
func (s *Session) Suggest(text string, cursor int) []completion.Suggestion {
	rec, _, _ := s.Active()
	return s.provider.Suggest(rec, text, cursor)
}

// Paths enumerates the property paths of the active record.
func (s *Session) Paths() []graph.PathEntry {
	rec, _, ok := s.Active()
	if !ok {
		return nil
	}
	return graph.Enumerate(rec, s.maxDepth)
}

// Raw returns the active record as JSON in its original key order.
func (s *Session) Raw(indent string) ([]byte, error) {
	rec, _, ok := s.Active()
	if !ok {
		return nil, ErrNoActiveRecord
	}
	return record.Encode(rec, indent)
}

// Transcript returns the executions since the last Clear.
func (s *Session) Transcript() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.transcript))
	copy(out, s.transcript)
	return out
}

// Clear empties the transcript.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcript = nil
}
