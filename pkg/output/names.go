package output

import (
	"fmt"

	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/errmgr"
)

// maxNameLen guards the name table against corrupt length prefixes
const maxNameLen = 1 << 16

// ElementNameEntry is one slot of the name table
type ElementNameEntry struct {
	Name   string
	Length int
}

// nameTable holds every element name in the order subcatchments, nodes,
// links, pollutants, plus a reverse index per category.
type nameTable struct {
	entries []ElementNameEntry
	lookup  map[ElementType]map[string]int
}

// readNames reads the whole name table starting at h.namesPos
func readNames(r *fieldReader, h *header) (*nameTable, error) {
	total := h.nsubcatch + h.nnodes + h.nlinks + h.npolluts
	t := &nameTable{
		entries: make([]ElementNameEntry, 0, total),
		lookup:  make(map[ElementType]map[string]int, 4),
	}

	off := h.namesPos
	for _, cat := range []ElementType{Subcatch, Node, Link, Pollutant} {
		n := h.count(cat)
		byName := make(map[string]int, n)
		for i := 0; i < n; i++ {
			buf, err := r.read(off, codec.FieldSize)
			if err != nil {
				return nil, err
			}
			length := codec.Int32(buf)
			if length < 0 || length > maxNameLen {
				return nil, fmt.Errorf("name %d of %s has invalid length %d", i, cat, length)
			}
			off += codec.FieldSize

			text, err := r.read(off, int(length))
			if err != nil {
				return nil, err
			}
			off += int64(length)

			name := string(text)
			t.entries = append(t.entries, ElementNameEntry{Name: name, Length: int(length)})
			if _, dup := byName[name]; !dup {
				byName[name] = i
			}
		}
		t.lookup[cat] = byName
	}

	return t, nil
}

// base returns the global slot of the first element of t
func (h *header) nameBase(t ElementType) int {
	switch t {
	case Node:
		return h.nsubcatch
	case Link:
		return h.nsubcatch + h.nnodes
	case Pollutant:
		return h.nsubcatch + h.nnodes + h.nlinks
	}
	return 0
}

// ensureNames builds the name table on first use
func (s *Session) ensureNames() error {
	if s.names != nil {
		return nil
	}
	t, err := readNames(s.r, &s.h)
	if err != nil {
		return &errmgr.Error{Code: errmgr.CodeNoResults, Op: "read names", Err: err}
	}
	s.names = t
	s.logger.Debug().Int("names", len(t.entries)).Msg("loaded element names")
	return nil
}

// nameSlot validates (t, index) and maps it to a global slot
func (s *Session) nameSlot(t ElementType, index int) (int, error) {
	switch t {
	case Subcatch, Node, Link, Pollutant:
	default:
		return 0, &errmgr.Error{Code: errmgr.CodeInvalidParameter, Op: "element name"}
	}
	if index < 0 || index >= s.h.count(t) {
		return 0, &errmgr.Error{Code: errmgr.CodeElementRange, Op: "element name"}
	}
	return s.h.nameBase(t) + index, nil
}
