// Package output reads SWMM binary results files.
//
// A Session opens one file, checks its trailer and header, and then answers
// metadata and value queries by seeking straight to the requested bytes. Nothing
// beyond the header is cached except the element name table, which is read the
// first time a name is asked for.
//
//	s := output.New()
//	if _, err := s.Open("model.out"); err != nil {
//		return err
//	}
//	defer s.Close()
//	flow, err := s.LinkSeries(0, output.LinkFlowRate, 0, 10)
//
// Domain failures are *errmgr.Error values. They are also recorded on the
// session and stay pending for CheckError until ClearError is called.
package output
