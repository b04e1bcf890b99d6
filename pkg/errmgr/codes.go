package errmgr

import (
	"errors"
	"fmt"
)

// Stable status codes. Codes below 400 are warnings.
const (
	CodeNone             = 0
	CodeRunWarnings      = 10
	CodeAllocation       = 411
	CodeSeriesIndex      = 420
	CodeInvalidParameter = 421
	CodePeriodRange      = 422
	CodeElementRange     = 423
	CodeNoResultsMemory  = 424
	CodeOpenFailed       = 434
	CodeNotResultsFile   = 435
	CodeNoResults        = 436
	CodeUnspecified      = 440
)

var messages = map[int]string{
	CodeRunWarnings:      "Warning: model run issued warnings",
	CodeAllocation:       "Error 411: memory allocation failure",
	CodeSeriesIndex:      "Input Error 420: element index out of range",
	CodeInvalidParameter: "Input Error 421: invalid parameter code",
	CodePeriodRange:      "Input Error 422: reporting period index out of range",
	CodeElementRange:     "Input Error 423: element index out of range",
	CodeNoResultsMemory:  "Input Error 424: no memory allocated for results",
	CodeOpenFailed:       "File Error 434: unable to open binary output file",
	CodeNotResultsFile:   "File Error 435: invalid file - not created by SWMM",
	CodeNoResults:        "File Error 436: invalid file - contains no results",
	CodeUnspecified:      "ERROR 440: an unspecified error has occurred",
}

// DefaultResolver resolves the codes above; unknown codes map to the
// unspecified error text.
var DefaultResolver Resolver = ResolverFunc(Message)

// Message returns the text for code
func Message(code int) string {
	if msg, ok := messages[code]; ok {
		return msg
	}
	return messages[CodeUnspecified]
}

// Codes lists every documented code in ascending order
func Codes() []int {
	return []int{
		CodeRunWarnings,
		CodeAllocation,
		CodeSeriesIndex,
		CodeInvalidParameter,
		CodePeriodRange,
		CodeElementRange,
		CodeNoResultsMemory,
		CodeOpenFailed,
		CodeNotResultsFile,
		CodeNoResults,
		CodeUnspecified,
	}
}

// IsWarning reports whether code is a non-fatal warning
func IsWarning(code int) bool {
	return code > 0 && code < 400
}

// Error is a domain failure carrying a status code
type Error struct {
	Code int
	Op   string
	Err  error
}

func (e *Error) Error() string {
	msg := Message(e.Code)
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Code extracts the status code from err, 0 for nil and CodeUnspecified for
// errors that carry no code.
func Code(err error) int {
	if err == nil {
		return CodeNone
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnspecified
}
