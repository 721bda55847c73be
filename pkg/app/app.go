// Package app wires persistence and the entry index into a single
// service the CLI and printers share. The service owns the index: bulk
// loads rebuild it, single-entry mutations go through the incremental
// add/remove path so editing never pays the O(n) rebuild cost.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/entry"
	"tableflip.dev/anno/pkg/granularity"
	"tableflip.dev/anno/pkg/index"
	"tableflip.dev/anno/pkg/store"
)

var ErrNotLoaded = errors.New("app: index not loaded")

// Service provides high-level operations over entries and the calendar
// index. Mutations serialize behind a mutex: the index must satisfy its
// invariants after every individual operation, so there is exactly one
// writer at a time even when a store watcher runs alongside the CLI.
type Service struct {
	Persistence store.Persistence

	mu      sync.Mutex
	ix      *index.Index
	entries map[int64]*entry.Entry
	colors  *ColorCache
}

// NewService creates a Service over the given persistence. Call Reload
// before issuing queries.
func NewService(p store.Persistence) *Service {
	return &Service{
		Persistence: p,
		colors:      NewColorCache(),
	}
}

// Reload replaces the index with a full O(n) rebuild from storage. This
// is the only latency-sensitive path; it runs on app start, profile
// switch, and import completion, never per keystroke.
func (s *Service) Reload(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	all := s.Persistence.LoadAll(ctx)
	weekStart := s.Persistence.WeekStart()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ix = index.Build(all, weekStart)
	s.entries = make(map[int64]*entry.Entry, len(all))
	for _, e := range all {
		if e.Saved() {
			s.entries[e.ID] = e
		}
	}
	s.colors.Reset()

	s.warnWeekDrift(all, weekStart)
	return nil
}

// warnWeekDrift reports week entries whose stored canonical date is no
// longer a week boundary under the current week start setting. Entries
// created under an older convention are surfaced, not rewritten.
func (s *Service) warnWeekDrift(all []*entry.Entry, weekStart int) {
	for _, e := range all {
		if e == nil || e.Granularity != granularity.Week {
			continue
		}
		d, err := caldate.Parse(e.CanonicalDate)
		if err != nil {
			continue
		}
		canonical, err := caldate.Canonicalize(d, granularity.Week, weekStart)
		if err != nil || canonical == d {
			continue
		}
		fmt.Fprintf(os.Stderr,
			"app: entry %d: week start %s predates the current week start setting (expected %s)\n",
			e.ID, e.CanonicalDate, canonical)
	}
}

// Create canonicalizes the date for the granularity, persists the entry,
// and indexes it incrementally.
func (s *Service) Create(ctx context.Context, rawDate string, g granularity.Granularity, title string) (*entry.Entry, error) {
	return s.create(ctx, rawDate, g, title, nil)
}

// TimeOfDay carries the optional clock time for a day entry.
type TimeOfDay struct {
	Hour, Minute, Second int
}

// CreateTimed is Create for a day entry carrying a time of day.
func (s *Service) CreateTimed(ctx context.Context, rawDate string, title string, at TimeOfDay) (*entry.Entry, error) {
	return s.create(ctx, rawDate, granularity.Day, title, &at)
}

func (s *Service) create(ctx context.Context, rawDate string, g granularity.Granularity, title string, at *TimeOfDay) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	d, err := caldate.Parse(rawDate)
	if err != nil {
		return nil, err
	}
	weekStart := s.Persistence.WeekStart()
	canonical, err := caldate.Canonicalize(d, g, weekStart)
	if err != nil {
		return nil, err
	}

	e := entry.New(canonical.String(), g, title)
	if at != nil {
		e.HasTime = true
		e.Hour = at.Hour
		e.Minute = at.Minute
		e.Second = at.Second
	}
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ix == nil {
		s.ix = index.New(weekStart)
		s.entries = make(map[int64]*entry.Entry)
	}
	if err := s.ix.Add(e); err != nil {
		return nil, err
	}
	s.entries[e.ID] = e
	return e, nil
}

// Update edits an entry's content in place. The bucket does not change
// (canonical date and granularity are fixed), so the index entry stays;
// only the persisted record and the color cache need refreshing.
func (s *Service) Update(ctx context.Context, id int64, title, body string, tags []string) (*entry.Entry, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("app: entry %d not found", id)
	}
	e.Title = title
	e.Body = body
	if tags != nil {
		e.Tags = tags
	}
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	s.colors.Invalidate(id)
	return e, nil
}

// Delete removes an entry from storage and from the index.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return fmt.Errorf("app: entry %d not found", id)
	}
	if err := s.Persistence.Delete(e); err != nil {
		return err
	}
	s.ix.Remove(e)
	delete(s.entries, id)
	s.colors.Invalidate(id)
	return nil
}

// Reattach moves an entry to a different granularity or date, modeled as
// delete plus recreate so the entry gets a fresh identity and bucket.
func (s *Service) Reattach(ctx context.Context, id int64, rawDate string, g granularity.Granularity) (*entry.Entry, error) {
	s.mu.Lock()
	old, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("app: entry %d not found", id)
	}
	title, body, tags := old.Title, old.Body, old.Tags

	if err := s.Delete(ctx, id); err != nil {
		return nil, err
	}
	e, err := s.Create(ctx, rawDate, g, title)
	if err != nil {
		return nil, err
	}
	if body != "" || tags != nil {
		return s.Update(ctx, e.ID, title, body, tags)
	}
	return e, nil
}

// HasEntry reports whether the cell containing d at the view granularity
// holds or is covered by an entry.
func (s *Service) HasEntry(d caldate.Date, view granularity.Granularity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ix == nil {
		return false
	}
	return s.ix.HasEntry(d, view)
}

// EntriesForCell returns the entries visible at the given cell, most
// specific granularity first.
func (s *Service) EntriesForCell(d caldate.Date, view granularity.Granularity) []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ix == nil {
		return nil
	}
	return s.ix.EntriesForCell(d, view)
}

// EntriesInRange returns entries whose bucket overlaps [start, end].
func (s *Service) EntriesInRange(start, end caldate.Date) []*entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ix == nil {
		return nil
	}
	return s.ix.EntriesInRange(start, end)
}

// Representative returns the entry whose color represents the cell, or
// nil for an empty cell.
func (s *Service) Representative(d caldate.Date, view granularity.Granularity) *entry.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ix == nil {
		return nil
	}
	return s.ix.Representative(d, view)
}

// Color returns the memoized display color for an entry.
func (s *Service) Color(e *entry.Entry) string {
	return s.colors.Color(e)
}

// Index exposes the current index for read-only consumers (printers).
// Returns ErrNotLoaded before the first Reload.
func (s *Service) Index() (*index.Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ix == nil {
		return nil, ErrNotLoaded
	}
	return s.ix, nil
}

// WatchAndReconcile consumes store change events until ctx is done,
// rebuilding the index on unclassified changes. Granularity-scoped
// changes also trigger a rebuild today: the events do not carry entry
// identities, and reloads are cheap relative to external file churn.
func (s *Service) WatchAndReconcile(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	events, err := s.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	go func() {
		for range events {
			if err := s.Reload(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "app: reload after change: %v\n", err)
			}
		}
	}()
	return nil
}
