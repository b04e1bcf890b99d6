package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/output"
)

var (
	ErrNotFound   = errors.New("storage: not found")
	ErrCorruption = errors.New("storage: corrupt series record")
	ErrEmptyRun   = errors.New("storage: category has no elements")
	ErrDuplicate  = errors.New("storage: duplicate element name")
)

// SeriesSource is the part of an output session a snapshot reads from
type SeriesSource interface {
	Path() string
	ProjectSize() ([]int, error)
	Times(code output.TimeCode) (int, error)
	StartDate() (float64, error)
	ElementName(t output.ElementType, index int) (string, error)
	Series(t output.ElementType, index, attr, start, end int) ([]float32, error)
}

// SnapshotRequest selects what Snapshot copies
type SnapshotRequest struct {
	Type output.ElementType
	Attr int
}

// Run describes one stored snapshot
type Run struct {
	ID         ksuid.KSUID        `json:"id"`
	Source     string             `json:"source"`
	Type       output.ElementType `json:"type"`
	Attr       int                `json:"attr"`
	Periods    int                `json:"periods"`
	ReportStep int                `json:"report_step"`
	StartDate  float64            `json:"start_date"`
	Series     int                `json:"series"`
	Created    time.Time          `json:"created"`
}

// Series is one stored element series
type Series struct {
	Element string
	Values  []float32
}

// DefaultStorage keeps exported series in a pebble database. Keys are
// run/<ksuid>/meta for the run description and run/<ksuid>/s/<element> for
// each series.
type DefaultStorage struct {
	db    *pebble.DB
	codec *codec.RecordCodec
}

func NewDefaultStorage(path string) (*DefaultStorage, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}
	return &DefaultStorage{db: db, codec: codec.NewRecordCodec()}, nil
}

func runPrefix(id ksuid.KSUID) []byte {
	return []byte("run/" + id.String() + "/")
}

func metaKey(id ksuid.KSUID) []byte {
	return append(runPrefix(id), "meta"...)
}

func seriesPrefix(id ksuid.KSUID) []byte {
	return append(runPrefix(id), "s/"...)
}

func seriesKey(id ksuid.KSUID, element string) []byte {
	return append(seriesPrefix(id), element...)
}

// prefixEnd returns the smallest key greater than every key with prefix p
func prefixEnd(p []byte) []byte {
	end := append([]byte{}, p...)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func categorySlot(t output.ElementType) (int, bool) {
	switch t {
	case output.Subcatch, output.Node, output.Link, output.System:
		return int(t), true
	}
	return 0, false
}

// Snapshot copies the full series of req.Attr for every element of req.Type
// into a new run. The run is written in one batch. Series are keyed by element
// name, so a category with a repeated name is rejected with ErrDuplicate and
// nothing is written.
func (s *DefaultStorage) Snapshot(src SeriesSource, req SnapshotRequest) (ksuid.KSUID, int, error) {
	slot, ok := categorySlot(req.Type)
	if !ok {
		return ksuid.Nil, 0, fmt.Errorf("cannot snapshot %s series", req.Type)
	}
	size, err := src.ProjectSize()
	if err != nil {
		return ksuid.Nil, 0, err
	}
	count := size[slot]
	if count == 0 {
		return ksuid.Nil, 0, ErrEmptyRun
	}
	periods, err := src.Times(output.NumPeriods)
	if err != nil {
		return ksuid.Nil, 0, err
	}
	step, err := src.Times(output.ReportStep)
	if err != nil {
		return ksuid.Nil, 0, err
	}
	start, err := src.StartDate()
	if err != nil {
		return ksuid.Nil, 0, err
	}

	id := ksuid.New()
	batch := s.db.NewBatch()
	defer batch.Close()

	seen := make(map[string]int, count)
	for i := 0; i < count; i++ {
		name := "system"
		if req.Type != output.System {
			if name, err = src.ElementName(req.Type, i); err != nil {
				return ksuid.Nil, 0, err
			}
		}
		if j, dup := seen[name]; dup {
			return ksuid.Nil, 0, fmt.Errorf("%w: %q at %s %d and %d", ErrDuplicate, name, req.Type, j, i)
		}
		seen[name] = i
		values, err := src.Series(req.Type, i, req.Attr, 0, periods)
		if err != nil {
			return ksuid.Nil, 0, fmt.Errorf("failed to read series of %s: %w", name, err)
		}
		rec, err := s.codec.Encode([]byte(name), values)
		if err != nil {
			return ksuid.Nil, 0, err
		}
		if err := batch.Set(seriesKey(id, name), rec, nil); err != nil {
			return ksuid.Nil, 0, err
		}
	}

	meta, err := json.Marshal(Run{
		ID:         id,
		Source:     src.Path(),
		Type:       req.Type,
		Attr:       req.Attr,
		Periods:    periods,
		ReportStep: step,
		StartDate:  start,
		Series:     count,
		Created:    time.Now().UTC(),
	})
	if err != nil {
		return ksuid.Nil, 0, err
	}
	if err := batch.Set(metaKey(id), meta, nil); err != nil {
		return ksuid.Nil, 0, err
	}

	if err := batch.Commit(pebble.Sync); err != nil {
		return ksuid.Nil, 0, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, count, nil
}

// get copies the value out of pebble's buffer before the closer runs
func (s *DefaultStorage) get(key []byte) ([]byte, error) {
	data, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	return append([]byte{}, data...), nil
}

func (s *DefaultStorage) decode(data []byte) (Series, error) {
	rec, err := s.codec.Decode(data)
	if err == nil {
		err = rec.Validate()
	}
	if err != nil {
		return Series{}, fmt.Errorf("%w: %v", ErrCorruption, err)
	}
	return Series{Element: string(rec.Key), Values: rec.Values}, nil
}

// Get returns the stored series of one element
func (s *DefaultStorage) Get(id ksuid.KSUID, element string) (Series, error) {
	data, err := s.get(seriesKey(id, element))
	if err != nil {
		return Series{}, err
	}
	return s.decode(data)
}

// Run returns the description of a stored run
func (s *DefaultStorage) Run(id ksuid.KSUID) (Run, error) {
	data, err := s.get(metaKey(id))
	if err != nil {
		return Run{}, err
	}
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return Run{}, fmt.Errorf("failed to decode run %s: %w", id, err)
	}
	return run, nil
}

// List returns every series of a run ordered by element name
func (s *DefaultStorage) List(id ksuid.KSUID) ([]Series, error) {
	prefix := seriesPrefix(id)
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var out []Series
	for iter.First(); iter.Valid(); iter.Next() {
		series, err := s.decode(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", iter.Key(), err)
		}
		out = append(out, series)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}
	if out == nil {
		if _, err := s.Run(id); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Runs returns every stored run, oldest first
func (s *DefaultStorage) Runs() ([]Run, error) {
	prefix := []byte("run/")
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixEnd(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var runs []Run
	for iter.First(); iter.Valid(); iter.Next() {
		if !bytes.HasSuffix(iter.Key(), []byte("/meta")) {
			continue
		}
		var run Run
		if err := json.Unmarshal(iter.Value(), &run); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", iter.Key(), err)
		}
		runs = append(runs, run)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	// ksuids sort by creation time
	sort.Slice(runs, func(i, j int) bool {
		return ksuid.Compare(runs[i].ID, runs[j].ID) < 0
	})
	return runs, nil
}

// Delete removes a run and all of its series
func (s *DefaultStorage) Delete(id ksuid.KSUID) error {
	if _, err := s.Run(id); err != nil {
		return err
	}
	prefix := runPrefix(id)
	return s.db.DeleteRange(prefix, prefixEnd(prefix), pebble.Sync)
}

func (s *DefaultStorage) Close() error {
	return s.db.Close()
}
