// Package stream re-frames raw provider byte streams and encodes the
// line-delimited delta protocol served to clients.
//
// Upstream protocols differ in framing (one JSON object per line, or
// blank-line-delimited Server-Sent-Events blocks); the helpers here
// re-segment either shape across read boundaries and isolate parse
// errors per frame so one malformed frame never aborts a stream.
package stream

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

// Stop is returned by a frame handler to end the stream early without
// reporting an error, e.g. on an end-of-stream sentinel frame.
var Stop = errors.New("stop stream")

// maxFrameSize bounds a single upstream frame. Model deltas are small;
// anything larger indicates a misbehaving upstream.
const maxFrameSize = 1 << 20

// Lines reads newline-delimited frames from r and passes each non-empty
// line to fn. Partial lines spanning read boundaries are buffered until
// complete, so a frame handler always sees whole lines. Reading stops
// when fn returns an error; a Stop return ends the stream cleanly.
func Lines(r io.Reader, fn func(line []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			if errors.Is(err, Stop) {
				return nil
			}
			return err
		}
	}
	return sc.Err()
}

// SSEFrames reads blank-line-delimited Server-Sent-Events frames from r
// and passes each frame's data payload to fn. Frames split across read
// boundaries are buffered until a full frame is available. Frames with
// no data lines (comments, bare event lines) are skipped. Reading stops
// when fn returns an error; a Stop return ends the stream cleanly.
func SSEFrames(r io.Reader, fn func(data []byte) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxFrameSize)
	sc.Split(splitFrames)
	for sc.Scan() {
		data := sseData(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		if err := fn(data); err != nil {
			if errors.Is(err, Stop) {
				return nil
			}
			return err
		}
	}
	return sc.Err()
}

// splitFrames is a bufio.SplitFunc that tokenizes a byte stream into
// blank-line-delimited SSE frames, handling both \n\n and \r\n\r\n
// separators. Incomplete frames stay buffered until more bytes arrive.
func splitFrames(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	lf := bytes.Index(data, []byte("\n\n"))
	crlf := bytes.Index(data, []byte("\r\n\r\n"))
	switch {
	case crlf >= 0 && (lf < 0 || crlf < lf):
		return crlf + 4, data[:crlf], nil
	case lf >= 0:
		return lf + 2, data[:lf], nil
	}

	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// sseData extracts the data payload from one SSE frame: the "data:"
// lines stripped of their prefix and joined with newlines. Other field
// lines (event:, id:, retry:, comments) are ignored.
func sseData(frame []byte) []byte {
	var out [][]byte
	for _, line := range bytes.Split(frame, []byte("\n")) {
		line = bytes.TrimSuffix(line, []byte("\r"))
		rest, ok := bytes.CutPrefix(line, []byte("data:"))
		if !ok {
			continue
		}
		out = append(out, bytes.TrimPrefix(rest, []byte(" ")))
	}
	return bytes.Join(out, []byte("\n"))
}
