package output

import (
	"errors"
	"os"

	"github.com/rs/zerolog"

	"github.com/ssargent/swmmout/pkg/errmgr"
)

type state int

const (
	stateUninitialized state = iota
	stateOpen
	stateClosed
)

// Session reads one results file. It is not safe for concurrent use.
type Session struct {
	path  string
	file  File
	r     *fieldReader
	h     header
	names *nameTable
	errs  *errmgr.Manager
	state state

	opener   Opener
	resolver errmgr.Resolver
	logger   zerolog.Logger
}

// Option configures a Session
type Option func(*Session)

// WithResolver replaces the code-to-message table used by CheckError
func WithResolver(r errmgr.Resolver) Option {
	return func(s *Session) {
		s.resolver = r
	}
}

// WithLogger sets the session logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithOpener replaces os.Open
func WithOpener(o Opener) Option {
	return func(s *Session) {
		if o != nil {
			s.opener = o
		}
	}
}

func openFile(path string) (File, error) {
	return os.Open(path)
}

// New creates an uninitialized session with its own error manager
func New(opts ...Option) *Session {
	s := &Session{
		opener: openFile,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.errs = errmgr.New(s.resolver)
	return s
}

// Open opens and validates the file at path and parses its header. A
// fatal outcome closes the session; the returned Status says why.
func (s *Session) Open(path string) (Status, error) {
	if s == nil || s.errs == nil {
		return StatusUnreadable, ErrNotInitialized
	}
	switch s.state {
	case stateOpen:
		return StatusUnreadable, ErrAlreadyOpen
	case stateClosed:
		return StatusUnreadable, ErrClosed
	}

	log := s.logger.With().Str("path", path).Logger()

	f, err := s.opener(path)
	if err != nil {
		return StatusUnreadable, s.fail(&errmgr.Error{Code: errmgr.CodeOpenFailed, Op: "open", Err: err})
	}
	s.path = path
	s.file = f
	s.r = newFieldReader(f)
	s.state = stateOpen

	status, tr, err := validate(s.r)
	if err != nil {
		log.Debug().Err(err).Stringer("status", status).Msg("results file rejected")
		return status, s.fail(err)
	}

	h, err := readHeader(s.r, tr)
	if err != nil {
		log.Debug().Err(err).Msg("results header unreadable")
		return StatusCorrupt, s.fail(err)
	}
	s.h = h

	if status == StatusWarned {
		s.errs.Set(errmgr.CodeRunWarnings)
		log.Warn().Int32("run_status", tr.RunStatus).Msg("model run issued warnings")
	}

	log.Debug().
		Int("subcatchments", h.nsubcatch).
		Int("nodes", h.nnodes).
		Int("links", h.nlinks).
		Int("pollutants", h.npolluts).
		Int("periods", h.nperiods).
		Msg("opened results file")
	return status, nil
}

// Close releases the file and the name table. Closing twice returns
// ErrClosed.
func (s *Session) Close() error {
	if s == nil || s.errs == nil {
		return ErrNotInitialized
	}
	if s.state == stateClosed {
		return ErrClosed
	}
	return s.teardown()
}

func (s *Session) teardown() error {
	var err error
	if s.file != nil {
		err = s.file.Close()
	}
	s.file = nil
	s.r = nil
	s.names = nil
	s.h = header{}
	s.state = stateClosed
	s.logger.Debug().Str("path", s.path).Msg("closed results file")
	return err
}

// fail records the code carried by err and tears the session down
func (s *Session) fail(err error) error {
	s.errs.Set(errmgr.Code(err))
	if cerr := s.teardown(); cerr != nil {
		return errors.Join(err, cerr)
	}
	return err
}

// record stores the code carried by err and returns err unchanged
func (s *Session) record(err error) error {
	if err != nil {
		s.errs.Set(errmgr.Code(err))
	}
	return err
}

// ready reports whether retrieval is allowed
func (s *Session) ready() error {
	if s == nil || s.errs == nil {
		return ErrNotInitialized
	}
	switch s.state {
	case stateOpen:
		return nil
	case stateClosed:
		return ErrClosed
	}
	return ErrNotInitialized
}

// Path returns the path passed to Open
func (s *Session) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}
