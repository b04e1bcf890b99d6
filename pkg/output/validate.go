package output

import (
	"io"

	"github.com/ssargent/swmmout/pkg/codec"
	"github.com/ssargent/swmmout/pkg/errmgr"
)

// validate reads the trailer and the leading magic number and classifies the
// file. Rules are applied in order: magic mismatch, no periods, run warnings.
func validate(r *fieldReader) (Status, codec.Trailer, error) {
	buf, err := r.readAt(-codec.TrailerSize, io.SeekEnd, codec.TrailerSize)
	if err != nil {
		return StatusCorrupt, codec.Trailer{}, &errmgr.Error{Code: errmgr.CodeNotResultsFile, Op: "validate trailer", Err: err}
	}
	trailer, err := codec.DecodeTrailer(buf)
	if err != nil {
		return StatusCorrupt, codec.Trailer{}, &errmgr.Error{Code: errmgr.CodeNotResultsFile, Op: "validate trailer", Err: err}
	}

	head, err := r.read(codec.MagicOffset, codec.FieldSize)
	if err != nil {
		return StatusCorrupt, trailer, &errmgr.Error{Code: errmgr.CodeNotResultsFile, Op: "validate prologue", Err: err}
	}
	magic := codec.Int32(head)

	switch {
	case magic != trailer.Magic:
		return StatusCorrupt, trailer, &errmgr.Error{Code: errmgr.CodeNotResultsFile, Op: "validate"}
	case trailer.Periods <= 0:
		return StatusEmpty, trailer, &errmgr.Error{Code: errmgr.CodeNoResults, Op: "validate"}
	case trailer.RunStatus != 0:
		return StatusWarned, trailer, nil
	}
	return StatusHealthy, trailer, nil
}
