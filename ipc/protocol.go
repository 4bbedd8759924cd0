package ipc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrGameOver is returned when the engine closes the stream at a frame
// boundary, which is how a match normally ends.
var ErrGameOver = errors.New("game over")

// The engine speaks newline-terminated text: each logical record is one line
// of whitespace-separated tokens. Constants arrive as one JSON line.
const maxLineBytes = 1 << 20

type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, 64*1024)}
}

// readLine returns the next line without its terminator. A final line with
// no newline is still returned; io.EOF is only reported when nothing was read.
func (l *lineReader) readLine() (string, error) {
	var sb strings.Builder
	for {
		chunk, isPrefix, err := l.r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", err
		}
		sb.Write(chunk)
		// Guard against a runaway peer that never sends a newline.
		if sb.Len() > maxLineBytes {
			return "", fmt.Errorf("line exceeds %d bytes", maxLineBytes)
		}
		if !isPrefix {
			return strings.TrimRight(sb.String(), "\r"), nil
		}
	}
}

// readInts reads one line and parses exactly n integers from it.
func (l *lineReader) readInts(n int) ([]int, error) {
	line, err := l.readLine()
	if err != nil {
		return nil, err
	}
	fields := strings.Fields(line)
	if len(fields) != n {
		return nil, fmt.Errorf("expected %d fields, got %d in %q", n, len(fields), line)
	}
	out := make([]int, n)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("parse field %d of %q: %w", i, line, err)
		}
		out[i] = v
	}
	return out, nil
}

func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return fmt.Errorf("write line: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}
