package ui

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether the given file descriptor refers to a terminal.
func IsTTY(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}

// TermWidth returns the terminal width in columns, or 0 if it cannot be
// determined.
func TermWidth(fd uintptr) int {
	w, _, err := term.GetSize(int(fd))
	if err != nil || w <= 0 {
		return 0
	}
	return w
}

// LineWriter prints pre-rendered lines. When the destination is a terminal
// it knows the terminal width and warns before printing lines that would
// wrap.
type LineWriter struct {
	w     io.Writer
	width int
}

// NewLineWriter creates a LineWriter for w.
func NewLineWriter(w io.Writer) *LineWriter {
	lw := &LineWriter{w: w}
	if f, ok := w.(*os.File); ok && IsTTY(f.Fd()) {
		lw.width = TermWidth(f.Fd())
	}
	return lw
}

// WriteLines writes each line followed by a newline.
func (lw *LineWriter) WriteLines(lines []string) error {
	if lw.width > 0 {
		longest := 0
		for _, l := range lines {
			longest = max(longest, len(l))
		}
		if longest > lw.width {
			slog.Warn("output is wider than the terminal and will wrap",
				"columns", longest, "terminal", lw.width)
		}
	}

	bw := bufio.NewWriter(lw.w)
	for _, l := range lines {
		if _, err := bw.WriteString(l + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
