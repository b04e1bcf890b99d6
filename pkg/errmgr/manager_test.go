package errmgr

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_SetZeroIsNoop(t *testing.T) {
	m := New(nil)

	assert.Equal(t, 0, m.Set(0))
	assert.Equal(t, 0, m.Status())

	assert.Equal(t, CodePeriodRange, m.Set(CodePeriodRange))
	assert.Equal(t, 0, m.Set(0))
	assert.Equal(t, CodePeriodRange, m.Status())
}

func TestManager_FirstCodeWins(t *testing.T) {
	m := New(nil)
	assert.Equal(t, CodeElementRange, m.Set(CodeElementRange))
	m.Clear()

	m.Set(CodeRunWarnings)
	assert.Equal(t, CodeElementRange, m.Set(CodeElementRange))
	m.Set(0)
	assert.Equal(t, CodeRunWarnings, m.Status())

	m.Clear()
	m.Set(CodeElementRange)
	assert.Equal(t, CodeElementRange, m.Status())
}

func TestManager_CheckAndClear(t *testing.T) {
	m := New(nil)

	msg, ok := m.Check()
	assert.False(t, ok)
	assert.Empty(t, msg)

	m.Set(CodeNotResultsFile)
	msg, ok = m.Check()
	require.True(t, ok)
	assert.Contains(t, msg, "435")

	m.Clear()
	assert.Equal(t, 0, m.Status())
	_, ok = m.Check()
	assert.False(t, ok)
}

func TestManager_CustomResolver(t *testing.T) {
	var seen []int
	m := New(ResolverFunc(func(code int) string {
		seen = append(seen, code)
		return "custom"
	}))

	m.Set(CodeAllocation)
	msg, ok := m.Check()
	require.True(t, ok)
	assert.Equal(t, "custom", msg)
	assert.Equal(t, []int{CodeAllocation}, seen)
}

func TestManager_CheckTruncatesLongMessages(t *testing.T) {
	m := New(ResolverFunc(func(int) string {
		return strings.Repeat("x", MaxMessageLen*2)
	}))
	m.Set(CodeUnspecified)

	msg, ok := m.Check()
	require.True(t, ok)
	assert.Len(t, msg, MaxMessageLen)
}

func TestMessage_EveryCodeResolves(t *testing.T) {
	for _, code := range Codes() {
		msg := Message(code)
		assert.NotEmpty(t, msg, "code %d", code)
		if code != CodeRunWarnings {
			assert.Contains(t, msg, "4", "code %d", code)
		}
	}

	assert.Equal(t, Message(CodeUnspecified), Message(999))
}

func TestIsWarning(t *testing.T) {
	assert.True(t, IsWarning(CodeRunWarnings))
	assert.False(t, IsWarning(CodeNone))
	assert.False(t, IsWarning(CodeNoResults))
}

func TestError(t *testing.T) {
	err := &Error{Code: CodeNotResultsFile, Op: "open", Err: io.ErrUnexpectedEOF}

	assert.Contains(t, err.Error(), "open: File Error 435")
	assert.Contains(t, err.Error(), io.ErrUnexpectedEOF.Error())
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.True(t, errors.Is(err, &Error{Code: CodeNotResultsFile}))
	assert.False(t, errors.Is(err, &Error{Code: CodeNoResults}))

	wrapped := errors.Join(errors.New("context"), err)
	assert.Equal(t, CodeNotResultsFile, Code(wrapped))
	assert.Equal(t, CodeNone, Code(nil))
	assert.Equal(t, CodeUnspecified, Code(errors.New("plain")))
}
