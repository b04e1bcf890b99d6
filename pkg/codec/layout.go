package codec

import (
	"encoding/binary"
	"errors"
	"math"
)

const (
	// FieldSize is the size of every integer and result value
	FieldSize = 4
	// DateSize is the size of a stored date
	DateSize = 8

	// MagicNumber marks a file written by the SWMM engine
	MagicNumber int32 = 516114522

	PrologueFields = 7
	PrologueSize   = PrologueFields * FieldSize
	TrailerFields  = 6
	TrailerSize    = TrailerFields * FieldSize
	EpilogueSize   = DateSize + FieldSize

	// MagicOffset and VersionOffset locate the leading prologue fields
	MagicOffset     = 0
	VersionOffset   = 1 * FieldSize
	FlowUnitsOffset = 2 * FieldSize
	CountsOffset    = 3 * FieldSize
)

var (
	ErrShortPrologue = errors.New("codec: data too short for prologue")
	ErrShortTrailer  = errors.New("codec: data too short for trailer")
	ErrShortEpilogue = errors.New("codec: data too short for epilogue")
)

// Prologue is the fixed header at the start of a results file
type Prologue struct {
	Magic         int32
	Version       int32
	FlowUnits     int32
	Subcatchments int32
	Nodes         int32
	Links         int32
	Pollutants    int32
}

// Trailer is the fixed block at the end of a results file
type Trailer struct {
	NamesOffset      int32
	PropertiesOffset int32
	ResultsOffset    int32
	Periods          int32
	RunStatus        int32
	Magic            int32
}

// Epilogue sits immediately before the results section
type Epilogue struct {
	StartDate  float64
	ReportStep int32
}

// Int32 decodes one field
func Int32(b []byte) int32 {
	return int32(binary.LittleEndian.Uint32(b))
}

// Float32 decodes one result value
func Float32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

// Float64 decodes one date
func Float64(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// PutInt32 encodes one field
func PutInt32(b []byte, v int32) {
	binary.LittleEndian.PutUint32(b, uint32(v))
}

// PutFloat32 encodes one result value
func PutFloat32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// PutFloat64 encodes one date
func PutFloat64(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}

// Float32s decodes consecutive result values into a new slice
func Float32s(b []byte) []float32 {
	out := make([]float32, len(b)/FieldSize)
	for i := range out {
		out[i] = Float32(b[i*FieldSize:])
	}
	return out
}

// Int32s decodes consecutive fields into a new slice
func Int32s(b []byte) []int32 {
	out := make([]int32, len(b)/FieldSize)
	for i := range out {
		out[i] = Int32(b[i*FieldSize:])
	}
	return out
}

// EncodePrologue serializes p
func EncodePrologue(p Prologue) []byte {
	buf := make([]byte, PrologueSize)
	fields := []int32{p.Magic, p.Version, p.FlowUnits, p.Subcatchments, p.Nodes, p.Links, p.Pollutants}
	for i, v := range fields {
		PutInt32(buf[i*FieldSize:], v)
	}
	return buf
}

// DecodePrologue parses the first PrologueSize bytes of buf
func DecodePrologue(buf []byte) (Prologue, error) {
	if len(buf) < PrologueSize {
		return Prologue{}, ErrShortPrologue
	}
	return Prologue{
		Magic:         Int32(buf[0:]),
		Version:       Int32(buf[4:]),
		FlowUnits:     Int32(buf[8:]),
		Subcatchments: Int32(buf[12:]),
		Nodes:         Int32(buf[16:]),
		Links:         Int32(buf[20:]),
		Pollutants:    Int32(buf[24:]),
	}, nil
}

// EncodeTrailer serializes t
func EncodeTrailer(t Trailer) []byte {
	buf := make([]byte, TrailerSize)
	fields := []int32{t.NamesOffset, t.PropertiesOffset, t.ResultsOffset, t.Periods, t.RunStatus, t.Magic}
	for i, v := range fields {
		PutInt32(buf[i*FieldSize:], v)
	}
	return buf
}

// DecodeTrailer parses the first TrailerSize bytes of buf
func DecodeTrailer(buf []byte) (Trailer, error) {
	if len(buf) < TrailerSize {
		return Trailer{}, ErrShortTrailer
	}
	return Trailer{
		NamesOffset:      Int32(buf[0:]),
		PropertiesOffset: Int32(buf[4:]),
		ResultsOffset:    Int32(buf[8:]),
		Periods:          Int32(buf[12:]),
		RunStatus:        Int32(buf[16:]),
		Magic:            Int32(buf[20:]),
	}, nil
}

// EncodeEpilogue serializes e
func EncodeEpilogue(e Epilogue) []byte {
	buf := make([]byte, EpilogueSize)
	PutFloat64(buf[0:], e.StartDate)
	PutInt32(buf[DateSize:], e.ReportStep)
	return buf
}

// DecodeEpilogue parses the first EpilogueSize bytes of buf
func DecodeEpilogue(buf []byte) (Epilogue, error) {
	if len(buf) < EpilogueSize {
		return Epilogue{}, ErrShortEpilogue
	}
	return Epilogue{
		StartDate:  Float64(buf[0:]),
		ReportStep: Int32(buf[DateSize:]),
	}, nil
}

// PropertyBlockSize is the byte footprint of the saved element properties
// that precede the variable lists. Subcatchments store one property (area),
// nodes three (type, invert, max depth) and links five (type, offsets, max
// depth, length), each with a small category header.
func PropertyBlockSize(subcatchments, nodes, links int64) int64 {
	return FieldSize * ((subcatchments + 2) + (3*nodes + 4) + (5*links + 6))
}

// BytesPerPeriod is the size of one results record
func BytesPerPeriod(subcatchments, nodes, links, subcatchVars, nodeVars, linkVars, sysVars int64) int64 {
	return DateSize + FieldSize*(subcatchments*subcatchVars+nodes*nodeVars+links*linkVars+sysVars)
}
