// Package replay records every turn the bot plays as zstd-compressed JSON
// lines: one header line followed by one line per turn.
package replay

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"

	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/model"
	"github.com/mmaury2727/Halite-Badr-Marius-IEMP9/rules"
)

type Header struct {
	Bot       string          `json:"bot"`
	PlayerID  int             `json:"player_id"`
	Seed      int64           `json:"seed"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	Constants model.Constants `json:"constants"`
	Tuning    rules.Tuning    `json:"tuning"`
}

type TurnRecord struct {
	Turn      int            `json:"turn"`
	Halite    int            `json:"halite"`
	Ships     []model.Ship   `json:"ships"`
	Returning []int          `json:"returning"`
	Priority  *int           `json:"priority,omitempty"`
	Events    []string       `json:"events,omitempty"`
	Plan      rules.TurnPlan `json:"plan"`
}

// Writer appends JSON lines to a zstd stream. It is safe for concurrent use
// although the bot only writes from the turn loop.
type Writer struct {
	mu  sync.Mutex
	f   io.Closer // nil when wrapping a caller-owned writer
	enc *zstd.Encoder
	w   *bufio.Writer
}

// Create opens dir/name.jsonl.zst for writing, creating dir if needed.
func Create(dir, name string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create replay dir: %w", err)
	}
	path := filepath.Join(dir, name+".jsonl.zst")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open replay: %w", err)
	}
	w, err := NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	w.f = f
	return w, nil
}

// NewWriter compresses onto dst. Closing the Writer does not close dst.
func NewWriter(dst io.Writer) (*Writer, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	return &Writer{enc: enc, w: bufio.NewWriterSize(enc, 64*1024)}, nil
}

func (w *Writer) WriteHeader(h Header) error { return w.write(h) }

func (w *Writer) WriteTurn(r TurnRecord) error { return w.write(r) }

func (w *Writer) write(v any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal replay entry: %w", err)
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var err error
	if w.w != nil {
		err = w.w.Flush()
		w.w = nil
	}
	if w.enc != nil {
		if cerr := w.enc.Close(); err == nil {
			err = cerr
		}
		w.enc = nil
	}
	if w.f != nil {
		if cerr := w.f.Close(); err == nil {
			err = cerr
		}
		w.f = nil
	}
	return err
}

// ReadAll decodes a replay stream produced by Writer.
func ReadAll(r io.Reader) (Header, []TurnRecord, error) {
	var h Header
	dec, err := zstd.NewReader(r)
	if err != nil {
		return h, nil, fmt.Errorf("zstd decoder: %w", err)
	}
	defer dec.Close()

	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 16<<20)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return h, nil, fmt.Errorf("read header: %w", err)
		}
		return h, nil, fmt.Errorf("read header: %w", io.ErrUnexpectedEOF)
	}
	if err := json.Unmarshal(sc.Bytes(), &h); err != nil {
		return h, nil, fmt.Errorf("unmarshal header: %w", err)
	}

	var turns []TurnRecord
	for sc.Scan() {
		var t TurnRecord
		if err := json.Unmarshal(sc.Bytes(), &t); err != nil {
			return h, turns, fmt.Errorf("unmarshal turn %d: %w", len(turns)+1, err)
		}
		turns = append(turns, t)
	}
	if err := sc.Err(); err != nil {
		return h, turns, fmt.Errorf("scan replay: %w", err)
	}
	return h, turns, nil
}
