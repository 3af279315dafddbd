package export

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/gzip"
)

// Compress gzips a rendered report for clients that accept it. Text formats
// (JSON, CSV) shrink well; PDF is already compressed but stays correct.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := gzip.NewWriterLevel(&buf, gzip.BestSpeed)
	if err != nil {
		return nil, fmt.Errorf("create gzip writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("gzip report: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("flush gzip report: %w", err)
	}
	return buf.Bytes(), nil
}
