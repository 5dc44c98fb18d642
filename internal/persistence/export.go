package persistence

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

// ExportRecord is one line of an export file.
type ExportRecord struct {
	RunID string `json:"run_id"`
	CaseResult
}

// Exporter appends case results to a zstd-compressed JSON lines file.
type Exporter struct {
	f   *os.File
	enc *zstd.Encoder
	w   *bufio.Writer
}

// NewExporter creates (or truncates) the file at path.
func NewExporter(path string) (*Exporter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &Exporter{f: f, enc: enc, w: bufio.NewWriter(enc)}, nil
}

// Write appends one record as a JSON line.
func (e *Exporter) Write(rec ExportRecord) error {
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := e.w.Write(b); err != nil {
		return err
	}
	return e.w.WriteByte('\n')
}

// Close flushes the compressor and closes the file.
func (e *Exporter) Close() error {
	if err := e.w.Flush(); err != nil {
		_ = e.enc.Close()
		_ = e.f.Close()
		return err
	}
	if err := e.enc.Close(); err != nil {
		_ = e.f.Close()
		return err
	}
	return e.f.Close()
}
