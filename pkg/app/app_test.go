package app

import (
	"context"
	"testing"

	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/granularity"
	"tableflip.dev/anno/pkg/store"
)

func testService(t *testing.T, weekStart int) *Service {
	t.Helper()
	p, err := store.Load(store.StaticConfig(t.TempDir(), weekStart))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	s := NewService(p)
	if err := s.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	return s
}

func TestCreateIndexesIncrementally(t *testing.T) {
	s := testService(t, 0)
	ctx := context.Background()

	e, err := s.Create(ctx, "2024-03-15", granularity.Month, "march notes")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == 0 {
		t.Fatalf("expected persisted id")
	}
	if e.CanonicalDate != "2024-03-01" {
		t.Fatalf("create must canonicalize: got %s", e.CanonicalDate)
	}

	// Visible immediately, without a Reload.
	if !s.HasEntry(caldate.MustParse("2024-03-20"), granularity.Day) {
		t.Fatalf("month entry must mark march day cells")
	}
	if s.HasEntry(caldate.MustParse("2024-04-01"), granularity.Day) {
		t.Fatalf("month entry leaked into april")
	}
}

func TestDeleteClearsCells(t *testing.T) {
	s := testService(t, 0)
	ctx := context.Background()

	e, err := s.Create(ctx, "2024-06-07", granularity.Decade, "the twenties")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.CanonicalDate != "2020-01-01" {
		t.Fatalf("decade canonical = %s", e.CanonicalDate)
	}
	probe := caldate.MustParse("2027-01-01")
	if !s.HasEntry(probe, granularity.Year) {
		t.Fatalf("decade entry must mark year cells")
	}

	if err := s.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.HasEntry(probe, granularity.Year) {
		t.Fatalf("deleted decade entry still marks year cells")
	}
}

func TestReloadMatchesIncremental(t *testing.T) {
	s := testService(t, 1)
	ctx := context.Background()

	if _, err := s.Create(ctx, "2024-03-06", granularity.Week, "week of the 4th"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Create(ctx, "2024-03-15", granularity.Day, "ides"); err != nil {
		t.Fatalf("create: %v", err)
	}

	probe := caldate.MustParse("2024-03-10") // sunday of the monday week
	if !s.HasEntry(probe, granularity.Day) {
		t.Fatalf("week entry missing before reload")
	}

	if err := s.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !s.HasEntry(probe, granularity.Day) {
		t.Fatalf("week entry missing after reload")
	}
	got := s.EntriesInRange(caldate.MustParse("2024-03-01"), caldate.MustParse("2024-03-31"))
	if len(got) != 2 {
		t.Fatalf("expected both entries in range, got %d", len(got))
	}
}

func TestUpdateInvalidatesColor(t *testing.T) {
	s := testService(t, 0)
	ctx := context.Background()

	e, err := s.Create(ctx, "2024-06-01", granularity.Day, "garden")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	before := s.Color(e)

	updated, err := s.Update(ctx, e.ID, "harvest", "", nil)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	after := s.Color(updated)
	if before == after {
		t.Fatalf("color cache not invalidated on content change")
	}
}

func TestReattachChangesGranularity(t *testing.T) {
	s := testService(t, 0)
	ctx := context.Background()

	e, err := s.Create(ctx, "2024-03-15", granularity.Day, "note")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	oldID := e.ID

	moved, err := s.Reattach(ctx, e.ID, "2024-03-15", granularity.Month)
	if err != nil {
		t.Fatalf("reattach: %v", err)
	}
	if moved.ID == oldID {
		t.Fatalf("reattach must recreate with a fresh identity")
	}
	if moved.CanonicalDate != "2024-03-01" || moved.Granularity != granularity.Month {
		t.Fatalf("reattach result: %+v", moved)
	}
	if !s.HasEntry(caldate.MustParse("2024-03-15"), granularity.Day) {
		t.Fatalf("month entry should still cover the original day cell")
	}
	if s.Representative(caldate.MustParse("2024-03-15"), granularity.Day).Granularity != granularity.Month {
		t.Fatalf("day bucket should be empty after reattach")
	}
}

func TestQueriesBeforeReloadAreEmpty(t *testing.T) {
	p, err := store.Load(store.StaticConfig(t.TempDir(), 0))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	s := NewService(p)
	if s.HasEntry(caldate.MustParse("2024-03-15"), granularity.Day) {
		t.Fatalf("unloaded service must report no entries")
	}
	if _, err := s.Index(); err != ErrNotLoaded {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}
