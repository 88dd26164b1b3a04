package ui

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineWriterWritesLines(t *testing.T) {
	var buf bytes.Buffer
	lw := NewLineWriter(&buf)

	require.NoError(t, lw.WriteLines([]string{"Station: E70024", "", "+0.0 ~~~~"}))
	assert.Equal(t, "Station: E70024\n\n+0.0 ~~~~\n", buf.String())
}

func TestLineWriterNotATerminal(t *testing.T) {
	lw := NewLineWriter(&bytes.Buffer{})
	assert.Zero(t, lw.width)
}

func TestLineWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineWriter(&buf).WriteLines(nil))
	assert.Empty(t, buf.String())
}

func TestLineWriterWarnsWhenWiderThanTerminal(t *testing.T) {
	var logs bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	lw := &LineWriter{w: &buf, width: 10}

	require.NoError(t, lw.WriteLines([]string{"short", "+1.0 ~~~~~~~~"}))
	assert.Equal(t, "short\n+1.0 ~~~~~~~~\n", buf.String())
	assert.Contains(t, logs.String(), "output is wider than the terminal and will wrap")
	assert.Contains(t, logs.String(), "columns=13")
	assert.Contains(t, logs.String(), "terminal=10")

	logs.Reset()
	require.NoError(t, lw.WriteLines([]string{"0123456789"}))
	assert.Empty(t, logs.String())
}
