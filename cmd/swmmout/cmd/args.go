package cmd

import (
	"fmt"
	"strconv"

	"github.com/ssargent/swmmout/pkg/output"
)

func parseType(s string) (output.ElementType, error) {
	return output.ParseElementType(s)
}

// parseIndex accepts an element index or name. System has a single element.
func parseIndex(sess *output.Session, t output.ElementType, s string) (int, error) {
	if t == output.System {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	return sess.ElementIndex(t, s)
}

func parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", name, s)
	}
	return n, nil
}
