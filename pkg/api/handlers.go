package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/swmmout/pkg/errmgr"
	"github.com/ssargent/swmmout/pkg/output"
	"github.com/ssargent/swmmout/pkg/storage"
)

// badParam is a request that could not be parsed into reader arguments
type badParam struct {
	msg string
}

func (e *badParam) Error() string { return e.msg }

// notFound marks a lookup by element name that matched nothing
type notFound struct {
	err error
}

func (e *notFound) Error() string { return e.err.Error() }
func (e *notFound) Unwrap() error { return e.err }

// read runs fn against the reader while holding the server lock. The
// reader's pending code is cleared first so a failure is attributed to this
// request only.
func (s *Server) read(op string, fn func(r Reader) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	s.reader.ClearError()
	err := fn(s.reader)
	s.metrics.RecordDecode(op, errmgr.Code(err), time.Since(start))
	return err
}

// writeReadError maps a reader failure onto an HTTP response
func (s *Server) writeReadError(w http.ResponseWriter, err error) {
	var bp *badParam
	if errors.As(err, &bp) {
		sendCodeError(w, bp.msg, errmgr.CodeInvalidParameter, http.StatusBadRequest)
		return
	}

	code := errmgr.Code(err)
	var nf *notFound
	switch {
	case errors.As(err, &nf):
		sendCodeError(w, err.Error(), code, http.StatusNotFound)
	case code >= errmgr.CodeSeriesIndex && code <= errmgr.CodeNoResultsMemory:
		sendCodeError(w, err.Error(), code, http.StatusBadRequest)
	default:
		s.logger.Error().Err(err).Int("code", code).Msg("results read failed")
		sendCodeError(w, err.Error(), code, http.StatusInternalServerError)
	}
}

func elementType(r *http.Request) (output.ElementType, error) {
	t, err := output.ParseElementType(chi.URLParam(r, "type"))
	if err != nil {
		return 0, &badParam{msg: err.Error()}
	}
	return t, nil
}

func intQuery(r *http.Request, name string, def int, required bool) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		if required {
			return 0, &badParam{msg: "missing query parameter " + name}
		}
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &badParam{msg: "query parameter " + name + " must be an integer"}
	}
	return v, nil
}

// attrQuery reads the attr parameter as an ordinal or an attribute name
func attrQuery(r *http.Request, t output.ElementType) (int, error) {
	raw := r.URL.Query().Get("attr")
	if raw == "" {
		return 0, &badParam{msg: "missing query parameter attr"}
	}
	return parseAttr(t, raw)
}

func parseAttr(t output.ElementType, raw string) (int, error) {
	attr, err := output.ParseAttribute(t, raw)
	if err != nil {
		return 0, &badParam{msg: err.Error()}
	}
	return attr, nil
}

// bodyAttr accepts a JSON number or string
func bodyAttr(t output.ElementType, raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, &badParam{msg: "missing attr"}
	}
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return parseAttr(t, name)
	}
	return parseAttr(t, string(raw))
}

// resolveIndex accepts either a numeric index or an element name
func resolveIndex(rd Reader, t output.ElementType, raw string) (int, error) {
	if t == output.System {
		return 0, nil
	}
	if idx, err := strconv.Atoi(raw); err == nil {
		return idx, nil
	}
	idx, err := rd.ElementIndex(t, raw)
	if err != nil {
		return 0, &notFound{err: err}
	}
	return idx, nil
}

// handleHealth reports whether the results file is still readable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	err := s.read("health", func(rd Reader) error {
		_, err := rd.Version()
		return err
	})
	if err != nil {
		s.metrics.RecordHealthCheck(false)
		sendCodeError(w, err.Error(), errmgr.Code(err), http.StatusServiceUnavailable)
		return
	}
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleInfo describes the open file
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var info InfoResponse
	err := s.read("info", func(rd Reader) error {
		var err error
		info.Path = rd.Path()
		if info.Version, err = rd.Version(); err != nil {
			return err
		}
		if info.ProjectSize, err = rd.ProjectSize(); err != nil {
			return err
		}
		if info.Units, err = rd.Units(); err != nil {
			return err
		}
		if info.StartDate, err = rd.StartDate(); err != nil {
			return err
		}
		if info.ReportStep, err = rd.Times(output.ReportStep); err != nil {
			return err
		}
		info.Periods, err = rd.Times(output.NumPeriods)
		return err
	})
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	info.StartTime = output.DateTime(info.StartDate).Format(time.RFC3339)
	sendSuccess(w, info)
}

// handleElement resolves an element by index or by name
func (s *Server) handleElement(w http.ResponseWriter, r *http.Request) {
	t, err := elementType(r)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	raw := chi.URLParam(r, "index")

	resp := ElementResponse{Type: t.String()}
	err = s.read("element", func(rd Reader) error {
		idx, err := strconv.Atoi(raw)
		if err != nil {
			if idx, err = rd.ElementIndex(t, raw); err != nil {
				return &notFound{err: err}
			}
		}
		resp.Index = idx
		resp.Name, err = rd.ElementName(t, idx)
		return err
	})
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	sendSuccess(w, resp)
}

// handleSeries returns one attribute of one element over a period range.
// start defaults to 0 and end to the number of periods.
func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	t, err := elementType(r)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	attr, err := attrQuery(r, t)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	start, err := intQuery(r, "start", 0, false)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	end, err := intQuery(r, "end", -1, false)
	if err != nil {
		s.writeReadError(w, err)
		return
	}

	resp := ValuesResponse{Type: t.String(), Attr: &attr, Start: &start}
	err = s.read("series", func(rd Reader) error {
		idx, err := resolveIndex(rd, t, chi.URLParam(r, "index"))
		if err != nil {
			return err
		}
		if end < 0 {
			if end, err = rd.Times(output.NumPeriods); err != nil {
				return err
			}
		}
		resp.Index = &idx
		resp.End = &end
		resp.Values, err = rd.Series(t, idx, attr, start, end)
		return err
	})
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	sendSuccess(w, resp)
}

// handleAttribute returns one attribute of every element at a period
func (s *Server) handleAttribute(w http.ResponseWriter, r *http.Request) {
	t, err := elementType(r)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	period, err := intQuery(r, "period", 0, true)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	attr, err := attrQuery(r, t)
	if err != nil {
		s.writeReadError(w, err)
		return
	}

	resp := ValuesResponse{Type: t.String(), Attr: &attr, Period: &period}
	err = s.read("attribute", func(rd Reader) error {
		var err error
		resp.Values, err = rd.Attribute(t, period, attr)
		return err
	})
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	sendSuccess(w, resp)
}

// handleResult returns every attribute of one element at a period
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	t, err := elementType(r)
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	period, err := intQuery(r, "period", 0, true)
	if err != nil {
		s.writeReadError(w, err)
		return
	}

	resp := ValuesResponse{Type: t.String(), Period: &period}
	err = s.read("result", func(rd Reader) error {
		idx, err := resolveIndex(rd, t, chi.URLParam(r, "index"))
		if err != nil {
			return err
		}
		resp.Index = &idx
		resp.Values, err = rd.Result(t, period, idx)
		return err
	})
	if err != nil {
		s.writeReadError(w, err)
		return
	}
	sendSuccess(w, resp)
}

func (s *Server) requireSnapshots(w http.ResponseWriter) bool {
	if s.snapshots == nil {
		sendError(w, "Snapshot store not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func runID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid snapshot id", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		sendError(w, "Snapshot not found", http.StatusNotFound)
	case errors.Is(err, storage.ErrEmptyRun):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrDuplicate):
		sendError(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error().Err(err).Msg("snapshot store failed")
		sendCodeError(w, err.Error(), errmgr.Code(err), http.StatusInternalServerError)
	}
}

// handleCreateSnapshot copies one attribute of a whole category into the
// snapshot store
func (s *Server) handleCreateSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireSnapshots(w) {
		return
	}
	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON in request body", http.StatusBadRequest)
		return
	}
	t, err := output.ParseElementType(req.Type)
	if err != nil || t == output.Pollutant {
		sendCodeError(w, "Invalid element type", errmgr.CodeInvalidParameter, http.StatusBadRequest)
		return
	}

	attr, err := bodyAttr(t, req.Attr)
	if err != nil {
		s.writeReadError(w, err)
		return
	}

	var (
		id ksuid.KSUID
		n  int
	)
	err = s.read("snapshot", func(rd Reader) error {
		var err error
		id, n, err = s.snapshots.Snapshot(rd, storage.SnapshotRequest{Type: t, Attr: attr})
		return err
	})
	s.metrics.RecordSnapshotOperation("create", err == nil)
	if err != nil {
		if code := errmgr.Code(err); code >= errmgr.CodeSeriesIndex && code <= errmgr.CodeNoResultsMemory {
			s.writeReadError(w, err)
			return
		}
		s.writeStoreError(w, err)
		return
	}

	s.logger.Info().Str("id", id.String()).Int("series", n).Stringer("type", t).Msg("snapshot stored")
	sendCreated(w, SnapshotResponse{ID: id.String(), Series: n})
}

// handleListSnapshots lists stored runs
func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if !s.requireSnapshots(w) {
		return
	}
	runs, err := s.snapshots.Runs()
	s.metrics.RecordSnapshotOperation("list", err == nil)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if runs == nil {
		runs = []storage.Run{}
	}
	sendSuccess(w, runs)
}

// handleGetSnapshot returns a run and all of its series
func (s *Server) handleGetSnapshot(w http.ResponseWriter, r *http.Request) {
	if !s.requireSnapshots(w) {
		return
	}
	id, ok := runID(w, r)
	if !ok {
		return
	}

	run, err := s.snapshots.Run(id)
	if err == nil {
		var series []storage.Series
		series, err = s.snapshots.List(id)
		if err == nil {
			detail := SnapshotDetail{Run: run, Series: make([]SeriesResponse, 0, len(series))}
			for _, sr := range series {
				detail.Series = append(detail.Series, SeriesResponse{Element: sr.Element, Values: sr.Values})
			}
			s.metrics.RecordSnapshotOperation("get", true)
			sendSuccess(w, detail)
			return
		}
	}
	s.metrics.RecordSnapshotOperation("get", false)
	s.writeStoreError(w, err)
}

// handleGetSnapshotSeries returns one stored series
func (s *Server) handleGetSnapshotSeries(w http.ResponseWriter, r *http.Request) {
	if !s.requireSnapshots(w) {
		return
	}
	id, ok := runID(w, r)
	if !ok {
		return
	}

	sr, err := s.snapshots.Get(id, chi.URLParam(r, "element"))
	s.metrics.RecordSnapshotOperation("get_series", err == nil)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	sendSuccess(w, SeriesResponse{Element: sr.Element, Values: sr.Values})
}
