package stream

import (
	"encoding/json"
	"io"
	"net/http"
)

// DeltaRecord is the wire unit emitted to the client: one JSON object
// per line, UTF-8, newline-terminated. Concatenating the Delta fields
// in emission order reconstructs the full answer text.
type DeltaRecord struct {
	Delta string `json:"delta"`
}

// ErrorRecord is the line emitted when a request fails before any
// delta has been written.
type ErrorRecord struct {
	Error string `json:"error"`
}

// DeltaWriter encodes text fragments as newline-delimited DeltaRecord
// lines. When the underlying writer supports flushing (an HTTP response
// writer), each record is flushed immediately so the client sees
// deltas as they arrive.
type DeltaWriter struct {
	w       io.Writer
	flusher http.Flusher
	emitted int
}

// NewDeltaWriter creates a DeltaWriter over w.
func NewDeltaWriter(w io.Writer) *DeltaWriter {
	dw := &DeltaWriter{w: w}
	if f, ok := w.(http.Flusher); ok {
		dw.flusher = f
	}
	return dw
}

// Emit writes one delta record line. The write completes (and is
// flushed) before Emit returns, so a slow consumer throttles the
// producer instead of buffering without bound.
func (dw *DeltaWriter) Emit(delta string) error {
	line, err := json.Marshal(DeltaRecord{Delta: delta})
	if err != nil {
		return err
	}
	line = append(line, '\n')
	if _, err := dw.w.Write(line); err != nil {
		return err
	}
	if dw.flusher != nil {
		dw.flusher.Flush()
	}
	dw.emitted++
	return nil
}

// Emitted reports how many delta records have been written.
func (dw *DeltaWriter) Emitted() int {
	return dw.emitted
}
