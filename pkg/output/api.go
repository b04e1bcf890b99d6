package output

import (
	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/errmgr"
)

func codeError(code int, op string) error {
	return &errmgr.Error{Code: code, Op: op}
}

// Version reads the engine version stored in the prologue
func (s *Session) Version() (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	buf, err := s.r.read(codec.VersionOffset, codec.FieldSize)
	if err != nil {
		return 0, s.record(readError("version", err))
	}
	return int(codec.Int32(buf)), nil
}

// ProjectSize returns the element counts as [subcatchments, nodes, links,
// system, pollutants]. System is always 1.
func (s *Session) ProjectSize() ([]int, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	return []int{s.h.nsubcatch, s.h.nnodes, s.h.nlinks, 1, s.h.npolluts}, nil
}

// FlowUnits returns the flow unit code
func (s *Session) FlowUnits() (FlowUnits, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.h.flowUnits, nil
}

// UnitSystem is US for CFS, GPM and MGD, SI otherwise
func (s *Session) UnitSystem() (UnitSystem, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	if s.h.flowUnits < CMS {
		return US, nil
	}
	return SI, nil
}

// PollutantUnits reads the concentration unit of every pollutant
func (s *Session) PollutantUnits() ([]ConcUnits, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	n := s.h.npolluts
	out := make([]ConcUnits, n)
	if n == 0 {
		return out, nil
	}
	buf, err := s.r.read(s.h.propsPos-int64(n)*codec.FieldSize, n*codec.FieldSize)
	if err != nil {
		return nil, s.record(readError("pollutant units", err))
	}
	for i, v := range codec.Int32s(buf) {
		out[i] = ConcUnits(v)
	}
	return out, nil
}

// Units returns [unit system, flow units, concentration units...]. With no
// pollutants the concentration slot holds NoUnits, so the result always has
// at least three entries.
func (s *Session) Units() ([]int, error) {
	sys, err := s.UnitSystem()
	if err != nil {
		return nil, err
	}
	conc, err := s.PollutantUnits()
	if err != nil {
		return nil, err
	}

	out := []int{int(sys), int(s.h.flowUnits)}
	if len(conc) == 0 {
		return append(out, int(NoUnits)), nil
	}
	for _, c := range conc {
		out = append(out, int(c))
	}
	return out, nil
}

// StartDate returns the simulation start as a day count since 1899-12-30
func (s *Session) StartDate() (float64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	return s.h.startDate, nil
}

// Times returns the report step in seconds or the number of periods
func (s *Session) Times(code TimeCode) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	switch code {
	case ReportStep:
		return s.h.reportStep, nil
	case NumPeriods:
		return s.h.nperiods, nil
	}
	return 0, s.record(codeError(errmgr.CodeInvalidParameter, "times"))
}

// ElementName returns the name of element index of type t. The name table
// is read from the file on the first call.
func (s *Session) ElementName(t ElementType, index int) (string, error) {
	e, err := s.NameEntry(t, index)
	return e.Name, err
}

// NameEntry returns the name of element index of type t together with the
// length stored in the file for it
func (s *Session) NameEntry(t ElementType, index int) (ElementNameEntry, error) {
	if err := s.ready(); err != nil {
		return ElementNameEntry{}, err
	}
	slot, err := s.nameSlot(t, index)
	if err != nil {
		return ElementNameEntry{}, s.record(err)
	}
	if err := s.ensureNames(); err != nil {
		return ElementNameEntry{}, s.record(err)
	}
	return s.names.entries[slot], nil
}

// ElementIndex returns the index of the first element of type t called name
func (s *Session) ElementIndex(t ElementType, name string) (int, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	switch t {
	case Subcatch, Node, Link, Pollutant:
	default:
		return 0, s.record(codeError(errmgr.CodeInvalidParameter, "element index"))
	}
	if err := s.ensureNames(); err != nil {
		return 0, s.record(err)
	}
	i, ok := s.names.lookup[t][name]
	if !ok {
		return 0, s.record(codeError(errmgr.CodeElementRange, "element index"))
	}
	return i, nil
}

// PeriodDate returns the date stored at the start of a period record
func (s *Session) PeriodDate(period int) (float64, error) {
	if err := s.ready(); err != nil {
		return 0, err
	}
	if period < 0 || period >= s.h.nperiods {
		return 0, s.record(codeError(errmgr.CodePeriodRange, "period date"))
	}
	d, err := s.readDate(period)
	return d, s.record(err)
}

func retrievable(t ElementType) bool {
	return t >= Subcatch && t <= System
}

// Series returns attr of element index of type t for periods [start, end)
func (s *Session) Series(t ElementType, index, attr, start, end int) ([]float32, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	const op = "series"
	switch {
	case !retrievable(t):
		return nil, s.record(codeError(errmgr.CodeInvalidParameter, op))
	case index < 0 || index >= s.h.count(t):
		return nil, s.record(codeError(errmgr.CodeSeriesIndex, op))
	case start < 0 || start >= s.h.nperiods || end <= start || end > s.h.nperiods:
		return nil, s.record(codeError(errmgr.CodePeriodRange, op))
	case attr < 0 || attr >= s.h.vars(t):
		return nil, s.record(codeError(errmgr.CodeInvalidParameter, op))
	}
	out, err := s.readSeries(t, index, attr, start, end)
	if err != nil {
		return nil, s.record(err)
	}
	return out, nil
}

// Attribute returns attr for every element of type t at period
func (s *Session) Attribute(t ElementType, period, attr int) ([]float32, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	const op = "attribute"
	switch {
	case !retrievable(t):
		return nil, s.record(codeError(errmgr.CodeInvalidParameter, op))
	case period < 0 || period >= s.h.nperiods:
		return nil, s.record(codeError(errmgr.CodePeriodRange, op))
	case attr < 0 || attr >= s.h.vars(t):
		return nil, s.record(codeError(errmgr.CodeInvalidParameter, op))
	}
	out, err := s.readAttribute(period, t, attr)
	if err != nil {
		return nil, s.record(err)
	}
	return out, nil
}

// Result returns every attribute of element index of type t at period
func (s *Session) Result(t ElementType, period, index int) ([]float32, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	const op = "result"
	switch {
	case !retrievable(t):
		return nil, s.record(codeError(errmgr.CodeInvalidParameter, op))
	case period < 0 || period >= s.h.nperiods:
		return nil, s.record(codeError(errmgr.CodePeriodRange, op))
	case index < 0 || index >= s.h.count(t):
		return nil, s.record(codeError(errmgr.CodeElementRange, op))
	}
	out, err := s.readEntity(period, t, index)
	if err != nil {
		return nil, s.record(err)
	}
	return out, nil
}

func (s *Session) SubcatchSeries(index int, attr SubcatchAttr, start, end int) ([]float32, error) {
	return s.Series(Subcatch, index, int(attr), start, end)
}

func (s *Session) NodeSeries(index int, attr NodeAttr, start, end int) ([]float32, error) {
	return s.Series(Node, index, int(attr), start, end)
}

func (s *Session) LinkSeries(index int, attr LinkAttr, start, end int) ([]float32, error) {
	return s.Series(Link, index, int(attr), start, end)
}

func (s *Session) SystemSeries(attr SystemAttr, start, end int) ([]float32, error) {
	return s.Series(System, 0, int(attr), start, end)
}

func (s *Session) SubcatchAttribute(period int, attr SubcatchAttr) ([]float32, error) {
	return s.Attribute(Subcatch, period, int(attr))
}

func (s *Session) NodeAttribute(period int, attr NodeAttr) ([]float32, error) {
	return s.Attribute(Node, period, int(attr))
}

func (s *Session) LinkAttribute(period int, attr LinkAttr) ([]float32, error) {
	return s.Attribute(Link, period, int(attr))
}

func (s *Session) SystemAttribute(period int, attr SystemAttr) ([]float32, error) {
	return s.Attribute(System, period, int(attr))
}

func (s *Session) SubcatchResult(period, index int) ([]float32, error) {
	return s.Result(Subcatch, period, index)
}

func (s *Session) NodeResult(period, index int) ([]float32, error) {
	return s.Result(Node, period, index)
}

func (s *Session) LinkResult(period, index int) ([]float32, error) {
	return s.Result(Link, period, index)
}

func (s *Session) SystemResult(period int) ([]float32, error) {
	return s.Result(System, period, 0)
}

// CheckError returns the message for the pending code, if any
func (s *Session) CheckError() (string, bool) {
	if s == nil || s.errs == nil {
		return "", false
	}
	return s.errs.Check()
}

// ClearError drops the pending code
func (s *Session) ClearError() {
	if s == nil || s.errs == nil {
		return
	}
	s.errs.Clear()
}

// ErrorCode returns the pending code, 0 when none
func (s *Session) ErrorCode() int {
	if s == nil || s.errs == nil {
		return errmgr.CodeNone
	}
	return s.errs.Status()
}

// Free releases a buffer returned by the session. It is safe to call on a
// nil pointer or an already freed buffer.
func Free[T any](buf *[]T) {
	if buf == nil {
		return
	}
	*buf = nil
}
