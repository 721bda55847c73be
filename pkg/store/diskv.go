package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/anno/pkg/caldate"
	"tableflip.dev/anno/pkg/entry"
	"tableflip.dev/anno/pkg/granularity"
)

// ErrNotCanonical reports an entry whose canonical date is not the bucket
// start for its granularity. Entries must be canonicalized before they
// reach the store; storing them raw would silently bucket them wrong.
var ErrNotCanonical = errors.New("store: canonical date is not a bucket start")

// ErrNotFound reports a lookup for an id with no stored entry.
var ErrNotFound = errors.New("store: entry not found")

// Persistence is the entry repository contract. The index layer consumes
// it read-mostly; mutation notifications arrive through Watch.
type Persistence interface {
	LoadAll(ctx context.Context) []*entry.Entry
	LoadRange(ctx context.Context, start, end caldate.Date) []*entry.Entry
	Get(ctx context.Context, id int64) (*entry.Entry, error)
	Store(e *entry.Entry) error
	Delete(e *entry.Entry) error
	WeekStart() int
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath:  basePath,
		weekStart: cfg.WeekStart(),
	}, nil
}

type persistence struct {
	d         *diskv.Diskv
	basePath  string
	weekStart int
}

func (p *persistence) WeekStart() int { return p.weekStart }

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	if e.ID == 0 {
		// Identity lives in the key; tolerate records written without it.
		if _, _, id, kerr := splitKey(key); kerr == nil {
			e.ID = id
		}
	}
	return e, nil
}

func (p *persistence) LoadAll(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

// LoadRange returns entries whose canonical date falls in [start, end].
// The date is recovered from the key, so out-of-range records are skipped
// without reading their files.
func (p *persistence) LoadRange(ctx context.Context, start, end caldate.Date) []*entry.Entry {
	if start.After(end) {
		start, end = end, start
	}
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		_, d, _, err := splitKey(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		if d.Before(start) || d.After(end) {
			continue
		}
		e, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id int64) (*entry.Entry, error) {
	// Cancel the key stream on early return so the diskv walker stops.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	for key := range p.d.Keys(ctx.Done()) {
		_, _, kid, err := splitKey(key)
		if err != nil || kid != id {
			continue
		}
		return p.read(key)
	}
	return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
}

// Store persists the entry, assigning an id on first save. The canonical
// date must parse and must already be the bucket start for the entry's
// granularity (invariant I1); violations are rejected, never silently
// re-bucketed.
func (p *persistence) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if !e.Granularity.Valid() {
		return fmt.Errorf("store: unknown granularity %q", e.Granularity)
	}
	d, err := caldate.Parse(e.CanonicalDate)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	canonical, err := caldate.Canonicalize(d, e.Granularity, p.weekStart)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	if canonical != d {
		return fmt.Errorf("%w: %s is not a %s start (want %s)",
			ErrNotCanonical, e.CanonicalDate, e.Granularity, canonical)
	}

	if e.ID == 0 {
		id, err := p.nextID()
		if err != nil {
			return err
		}
		e.ID = id
	}
	if e.Created.IsZero() {
		e.Created = entry.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.d.Write(toKey(e, d), data)
}

func (p *persistence) Delete(e *entry.Entry) error {
	if e == nil || e.ID == 0 {
		return errors.New("store: cannot delete unsaved entry")
	}
	d, err := caldate.Parse(e.CanonicalDate)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return p.d.Erase(toKey(e, d))
}

const (
	idCounterFile = ".next-id"
)

// nextID hands out monotonically increasing ids, persisted so identities
// survive restarts.
func (p *persistence) nextID() (int64, error) {
	if p.basePath == "" {
		return 0, errors.New("store: base path unknown")
	}
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return 0, fmt.Errorf("store: ensure base path: %w", err)
	}
	path := filepath.Join(p.basePath, idCounterFile)

	last := int64(0)
	if data, err := os.ReadFile(path); err == nil {
		if v, perr := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64); perr == nil {
			last = v
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, err
	}

	next := last + 1
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.FormatInt(next, 10)), 0o644); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, path); err != nil {
		return 0, err
	}
	return next, nil
}

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

// Keys look like `granularity-encodedDate-id`, stored on disk as
// granularity/encodedDate/id. The date's dashes (including the sign of a
// negative year) are swapped for dots so the key splits unambiguously.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func toKey(e *entry.Entry, d caldate.Date) string {
	return fmt.Sprintf("%s-%s-%d", e.Granularity, encodeDate(d), e.ID)
}

func splitKey(key string) (granularity.Granularity, caldate.Date, int64, error) {
	parts := strings.Split(key, "-")
	if len(parts) != 3 {
		return "", caldate.Date{}, 0, fmt.Errorf("store: malformed key %q", key)
	}
	g, err := granularity.Parse(parts[0])
	if err != nil {
		return "", caldate.Date{}, 0, err
	}
	d, err := caldate.Parse(decodeDate(parts[1]))
	if err != nil {
		return "", caldate.Date{}, 0, err
	}
	id, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", caldate.Date{}, 0, fmt.Errorf("store: malformed key id %q", key)
	}
	return g, d, id, nil
}

func encodeDate(d caldate.Date) string {
	return strings.ReplaceAll(d.String(), "-", ".")
}

func decodeDate(s string) string {
	return strings.ReplaceAll(s, ".", "-")
}
