package output

import (
	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/errmgr"
)

// categoryBase is the byte offset of the first value of t inside a period
// record, after the record date.
func (h *header) categoryBase(t ElementType) int64 {
	var base int64
	if t == Subcatch {
		return base
	}
	base += int64(h.nsubcatch*h.subcatchVars) * codec.FieldSize
	if t == Node {
		return base
	}
	base += int64(h.nnodes*h.nodeVars) * codec.FieldSize
	if t == Link {
		return base
	}
	return base + int64(h.nlinks*h.linkVars)*codec.FieldSize
}

// valueOffset locates one float32 in the results section
func (h *header) valueOffset(period int, t ElementType, entity, attr int) int64 {
	return h.resultsPos +
		int64(period)*h.bytesPerPeriod +
		codec.DateSize +
		h.categoryBase(t) +
		int64(entity*h.vars(t))*codec.FieldSize +
		int64(attr)*codec.FieldSize
}

func readError(op string, err error) error {
	return &errmgr.Error{Code: errmgr.CodeNoResults, Op: op, Err: err}
}

// readValue decodes the single value at (period, t, entity, attr)
func (s *Session) readValue(period int, t ElementType, entity, attr int) (float32, error) {
	buf, err := s.r.read(s.h.valueOffset(period, t, entity, attr), codec.FieldSize)
	if err != nil {
		return 0, readError("read value", err)
	}
	return codec.Float32(buf), nil
}

// readSeries decodes one attribute of one entity over [start, end)
func (s *Session) readSeries(t ElementType, entity, attr, start, end int) ([]float32, error) {
	out := make([]float32, end-start)
	for p := start; p < end; p++ {
		v, err := s.readValue(p, t, entity, attr)
		if err != nil {
			return nil, err
		}
		out[p-start] = v
	}
	return out, nil
}

// readEntity decodes every attribute of one entity in a single read
func (s *Session) readEntity(period int, t ElementType, entity int) ([]float32, error) {
	n := s.h.vars(t)
	buf, err := s.r.read(s.h.valueOffset(period, t, entity, 0), n*codec.FieldSize)
	if err != nil {
		return nil, readError("read result", err)
	}
	return codec.Float32s(buf), nil
}

// readAttribute decodes one attribute for every entity of t
func (s *Session) readAttribute(period int, t ElementType, attr int) ([]float32, error) {
	n := s.h.count(t)
	out := make([]float32, n)
	for e := 0; e < n; e++ {
		v, err := s.readValue(period, t, e, attr)
		if err != nil {
			return nil, err
		}
		out[e] = v
	}
	return out, nil
}

// readDate decodes the date that opens a period record
func (s *Session) readDate(period int) (float64, error) {
	off := s.h.resultsPos + int64(period)*s.h.bytesPerPeriod
	buf, err := s.r.read(off, codec.DateSize)
	if err != nil {
		return 0, readError("read date", err)
	}
	return codec.Float64(buf), nil
}
