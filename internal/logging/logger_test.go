package logging

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fadedpez/eights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(level Level) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	l := NewLogger(level)
	l.SetOutput(buf)
	return l, buf
}

func TestLoggerRespectsLevel(t *testing.T) {
	l, buf := newBufferLogger(WARN)

	l.Info("dealt %d cards", 5)
	assert.Empty(t, buf.String())

	l.Warn("deck is low: %d left", 2)
	out := buf.String()
	assert.Contains(t, out, "level=warning")
	assert.Contains(t, out, "deck is low: 2 left")
	assert.Contains(t, out, "logger_test.go")
}

func TestLoggerWithField(t *testing.T) {
	l, buf := newBufferLogger(DEBUG)

	l.WithField("game", "g-1").Debug("round %d starts", 2)

	out := buf.String()
	assert.Contains(t, out, "game=g-1")
	assert.Contains(t, out, "round 2 starts")
}

func TestLogErrorUnpacksGameError(t *testing.T) {
	l, buf := newBufferLogger(INFO)

	l.LogError(types.WrapError(types.ErrDatabaseError, "saving round", errors.New("disk full")))

	out := buf.String()
	assert.Contains(t, out, "code=DATABASE_ERROR")
	assert.Contains(t, out, "disk full")
	assert.Contains(t, out, "saving round")
}

func TestLogErrorPlainError(t *testing.T) {
	l, buf := newBufferLogger(INFO)

	l.LogError(errors.New("boom"))

	assert.Contains(t, buf.String(), "Unexpected error: boom")
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: DEBUG},
		{in: "INFO", want: INFO},
		{in: "warning", want: WARN},
		{in: "Error", want: ERROR},
		{in: "loud", want: INFO, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLevel(tc.in)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSetLevel(t *testing.T) {
	l, buf := newBufferLogger(ERROR)
	l.SetLevel(DEBUG)

	l.Debug("visible")

	assert.Equal(t, DEBUG, l.Level())
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, "DEBUG", DEBUG.String())
}
