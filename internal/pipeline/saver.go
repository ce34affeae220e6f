package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"

	"github.com/revati108/arch-board/internal/backend"
)

// ClearMode decides which pending paths a successful save clears.
type ClearMode int

const (
	// ClearSaved clears only paths sent unchanged and accepted.
	ClearSaved ClearMode = iota
	// ClearAll clears every pending path, including edits made while the
	// request was in flight.
	ClearAll
)

func (m ClearMode) String() string {
	if m == ClearAll {
		return "all"
	}
	return "saved"
}

// ParseClearMode reads "saved" or "all". Empty means ClearSaved.
func ParseClearMode(s string) (ClearMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "saved":
		return ClearSaved, nil
	case "all":
		return ClearAll, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownClearMode, s)
}

// Updater writes many options in one request.
type Updater interface {
	BulkUpdate(ctx context.Context, updates map[string]any) (map[string]backend.BulkResult, error)
}

// Report summarizes one save.
type Report struct {
	Saved  []string `json:"saved"`
	Failed []string `json:"failed"`
}

// Saver flushes a Buffer. Concurrent calls share one request; saves never
// overlap.
type Saver struct {
	buf   *Buffer
	api   Updater
	mode  ClearMode
	group singleflight.Group
}

// NewSaver returns a Saver writing buf through api.
func NewSaver(buf *Buffer, api Updater, mode ClearMode) *Saver {
	return &Saver{buf: buf, api: api, mode: mode}
}

// Save sends every pending edit. When the request was shared by concurrent
// callers and edits remain that it did not carry, one follow-up request is
// sent. Otherwise edits made while the request was in flight stay pending
// for the next save. A failed request leaves the buffer unchanged.
func (s *Saver) Save(ctx context.Context) (*Report, error) {
	if s.buf.DirtyCount() == 0 {
		return nil, ErrNothingToSave
	}
	rep, sent, dup, err := s.shared(ctx)
	if err != nil {
		return nil, err
	}
	if !dup || !s.buf.newerThan(sent) {
		return rep, nil
	}
	more, _, _, err := s.shared(ctx)
	if err != nil {
		return nil, err
	}
	return merge(rep, more), nil
}

type flight struct {
	report *Report
	sent   batch
}

func (s *Saver) shared(ctx context.Context) (*Report, batch, bool, error) {
	v, err, dup := s.group.Do("save", func() (any, error) {
		return s.flush(ctx)
	})
	if dup {
		slog.Debug("save shared by concurrent callers")
	}
	if err != nil {
		return nil, batch{}, dup, err
	}
	f := v.(*flight)
	return f.report, f.sent, dup, nil
}

func (s *Saver) flush(ctx context.Context) (*flight, error) {
	sent := s.buf.snapshot()
	if len(sent.updates) == 0 {
		return &flight{report: &Report{}, sent: sent}, nil
	}

	results, err := s.api.BulkUpdate(ctx, sent.updates)
	if err != nil {
		slog.Error("bulk save failed", "paths", len(sent.updates), "error", err)
		return nil, fmt.Errorf("save %d options: %w", len(sent.updates), err)
	}

	rep := &Report{}
	for _, path := range slices.Sorted(maps.Keys(sent.updates)) {
		if r, ok := results[path]; ok && !r.Success {
			rep.Failed = append(rep.Failed, path)
			continue
		}
		rep.Saved = append(rep.Saved, path)
	}
	s.buf.settle(sent, rep.Failed, s.mode)
	slog.Info("options saved", "saved", len(rep.Saved), "failed", len(rep.Failed), "clear_mode", s.mode)
	return &flight{report: rep, sent: sent}, nil
}

func merge(a, b *Report) *Report {
	return &Report{
		Saved:  lo.Uniq(append(slices.Clone(a.Saved), b.Saved...)),
		Failed: lo.Uniq(append(slices.Clone(a.Failed), b.Failed...)),
	}
}
