package output

import (
	"errors"
	"fmt"

	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/errmgr"
)

// header is everything Open derives from the file before any retrieval
type header struct {
	version   int
	flowUnits FlowUnits

	nsubcatch int
	nnodes    int
	nlinks    int
	npolluts  int

	subcatchVars int
	nodeVars     int
	linkVars     int
	sysVars      int

	nperiods   int
	reportStep int
	startDate  float64

	namesPos   int64
	propsPos   int64
	resultsPos int64

	bytesPerPeriod int64
}

func headerError(op string, err error) error {
	return &errmgr.Error{Code: errmgr.CodeNotResultsFile, Op: "read header: " + op, Err: err}
}

// readHeader parses the prologue, the variable counts and the epilogue. The
// returned header is only meaningful when err is nil.
func readHeader(r *fieldReader, tr codec.Trailer) (header, error) {
	h := header{
		nperiods:   int(tr.Periods),
		namesPos:   int64(tr.NamesOffset),
		propsPos:   int64(tr.PropertiesOffset),
		resultsPos: int64(tr.ResultsOffset),
	}

	buf, err := r.read(0, codec.PrologueSize)
	if err != nil {
		return header{}, headerError("prologue", err)
	}
	p, err := codec.DecodePrologue(buf)
	if err != nil {
		return header{}, headerError("prologue", err)
	}
	if p.Subcatchments < 0 || p.Nodes < 0 || p.Links < 0 || p.Pollutants < 0 {
		return header{}, headerError("prologue", errors.New("negative element count"))
	}
	h.version = int(p.Version)
	h.flowUnits = FlowUnits(p.FlowUnits)
	h.nsubcatch = int(p.Subcatchments)
	h.nnodes = int(p.Nodes)
	h.nlinks = int(p.Links)
	h.npolluts = int(p.Pollutants)

	// variable lists follow the saved element properties
	off := h.propsPos + codec.PropertyBlockSize(int64(h.nsubcatch), int64(h.nnodes), int64(h.nlinks))
	counts := make([]int, 4)
	for i := range counts {
		buf, err := r.read(off, codec.FieldSize)
		if err != nil {
			return header{}, headerError("variable counts", err)
		}
		n := codec.Int32(buf)
		if n < 0 {
			return header{}, headerError("variable counts", fmt.Errorf("negative variable count %d", n))
		}
		counts[i] = int(n)
		off += codec.FieldSize * (1 + int64(n))
	}
	h.subcatchVars, h.nodeVars, h.linkVars, h.sysVars = counts[0], counts[1], counts[2], counts[3]

	buf, err = r.read(h.resultsPos-codec.EpilogueSize, codec.EpilogueSize)
	if err != nil {
		return header{}, headerError("start date", err)
	}
	e, err := codec.DecodeEpilogue(buf)
	if err != nil {
		return header{}, headerError("start date", err)
	}
	h.startDate = e.StartDate
	h.reportStep = int(e.ReportStep)

	h.bytesPerPeriod = codec.BytesPerPeriod(
		int64(h.nsubcatch), int64(h.nnodes), int64(h.nlinks),
		int64(h.subcatchVars), int64(h.nodeVars), int64(h.linkVars), int64(h.sysVars),
	)

	size, err := r.size()
	if err != nil {
		return header{}, headerError("results", err)
	}
	if end := h.resultsPos + int64(h.nperiods)*h.bytesPerPeriod; end+codec.TrailerSize > size {
		return header{}, headerError("results", fmt.Errorf("results end at %d beyond file size %d", end, size))
	}

	return h, nil
}

// count returns the number of elements of t
func (h *header) count(t ElementType) int {
	switch t {
	case Subcatch:
		return h.nsubcatch
	case Node:
		return h.nnodes
	case Link:
		return h.nlinks
	case System:
		return 1
	case Pollutant:
		return h.npolluts
	}
	return 0
}

// vars returns the number of result variables stored per element of t
func (h *header) vars(t ElementType) int {
	switch t {
	case Subcatch:
		return h.subcatchVars
	case Node:
		return h.nodeVars
	case Link:
		return h.linkVars
	case System:
		return h.sysVars
	}
	return 0
}
