// Package errmgr tracks the recoverable error status of a results session.
//
// A Manager holds a single status code and a Resolver that turns codes into
// text. Call sites funnel every return code through Set, so a zero code is a
// no-op rather than an error.
package errmgr

// MaxMessageLen bounds the length of a resolved message.
const MaxMessageLen = 256

// Resolver turns an error code into human readable text.
type Resolver interface {
	Lookup(code int) string
}

// ResolverFunc adapts a plain function to the Resolver interface
type ResolverFunc func(code int) string

// Lookup calls f(code)
func (f ResolverFunc) Lookup(code int) string {
	return f(code)
}

// Manager holds the status code of one session
type Manager struct {
	status   int
	resolver Resolver
}

// New creates a manager using the given resolver. A nil resolver falls back
// to DefaultResolver.
func New(resolver Resolver) *Manager {
	if resolver == nil {
		resolver = DefaultResolver
	}
	return &Manager{resolver: resolver}
}

// Set stores the first non-zero code seen since the last Clear and returns
// code unchanged. Later codes and Set(0) leave the status alone.
func (m *Manager) Set(code int) int {
	if code != 0 && m.status == 0 {
		m.status = code
	}
	return code
}

// Status returns the stored code, 0 when none is pending
func (m *Manager) Status() int {
	return m.status
}

// Check resolves the pending code. It reports false when no code is set.
func (m *Manager) Check() (string, bool) {
	if m.status == 0 {
		return "", false
	}

	msg := m.resolver.Lookup(m.status)
	if len(msg) > MaxMessageLen {
		msg = msg[:MaxMessageLen]
	}
	return msg, true
}

// Clear resets the status to 0
func (m *Manager) Clear() {
	m.status = 0
}
