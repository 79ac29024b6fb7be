package event

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/evflow/eventflow/ferr"
)

// Reader is a lazy, finite, non-restartable Event Tensor stream reader
// (spec §3). Construct with NewReader, which consumes and validates the
// header line; then drive it with Next until it reports done.
type Reader struct {
	Header Header

	sc      *bufio.Scanner
	lastTS  int64
	hasLast bool
	line    int
	done    bool
}

// NewReader reads and parses the header line from r, returning a Reader
// positioned at the first record.
func NewReader(r io.Reader) (*Reader, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	rd := &Reader{sc: sc}

	for sc.Scan() {
		rd.line++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var hl headerLine
		if err := json.Unmarshal(line, &hl); err != nil {
			return nil, ferr.New(ferr.KindIO, "event.bad_header", fmt.Sprintf("line %d", rd.line), err)
		}
		if hl.Header.Dims == nil {
			return nil, ferr.New(ferr.KindIO, "event.bad_header", fmt.Sprintf("line %d", rd.line), ErrMissingHeader)
		}
		rd.Header = hl.Header
		return rd, nil
	}
	if err := sc.Err(); err != nil {
		return nil, ferr.New(ferr.KindIO, "event.io_error", "", err)
	}
	return nil, ferr.New(ferr.KindIO, "event.empty_stream", "", ErrEmptyStream)
}

// Next returns the next record in the stream. ok is false once the stream is
// exhausted (err is nil in that case); err is non-nil on a malformed line, an
// arity mismatch, or a non-monotonic timestamp, matching spec §4.2's
// "each violation becomes an issue with a line reference" wording applied
// here as a fail-fast read error (the accumulate-all-issues form lives in
// package validate for the validate-event CLI path).
func (r *Reader) Next() (Record, bool, error) {
	if r.done {
		return Record{}, false, nil
	}
	for r.sc.Scan() {
		r.line++
		line := r.sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			r.done = true
			return Record{}, false, ferr.New(ferr.KindIO, "event.bad_record", fmt.Sprintf("line %d", r.line), err)
		}
		if len(rec.Idx) != len(r.Header.Dims) {
			r.done = true
			return Record{}, false, ferr.New(ferr.KindIO, "event.idx_arity", fmt.Sprintf("line %d", r.line), ErrIdxArity)
		}
		if r.hasLast && rec.TS < r.lastTS {
			r.done = true
			return Record{}, false, ferr.New(ferr.KindIO, "event.non_monotonic", fmt.Sprintf("line %d", r.line), ErrNonMonotonic)
		}
		r.lastTS = rec.TS
		r.hasLast = true
		return rec, true, nil
	}
	r.done = true
	if err := r.sc.Err(); err != nil {
		return Record{}, false, ferr.New(ferr.KindIO, "event.io_error", "", err)
	}
	return Record{}, false, nil
}

// ReadAll drains the reader into a slice, for small traces in tests and
// examples. Production paths should prefer Next to preserve laziness.
func ReadAll(r *Reader) ([]Record, error) {
	var out []Record
	for {
		rec, ok, err := r.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, rec)
	}
}
