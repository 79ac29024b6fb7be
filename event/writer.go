package event

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/evflow/eventflow/ferr"
)

// Writer emits an Event Tensor JSONL stream: a header line followed by one
// line per record, with no trailing whitespace (spec §6).
type Writer struct {
	w       *bufio.Writer
	wrote   int
	flushed bool
}

// NewWriter writes the header line immediately and returns a Writer ready
// to accept records via Write.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	bw := bufio.NewWriter(w)
	line, err := json.Marshal(headerLine{Header: h})
	if err != nil {
		return nil, ferr.New(ferr.KindIO, "event.bad_header", "", err)
	}
	if _, err := bw.Write(line); err != nil {
		return nil, ferr.New(ferr.KindIO, "event.io_error", "", err)
	}
	if err := bw.WriteByte('\n'); err != nil {
		return nil, ferr.New(ferr.KindIO, "event.io_error", "", err)
	}
	return &Writer{w: bw}, nil
}

// Write appends one record line.
func (w *Writer) Write(rec Record) error {
	line, err := json.Marshal(rec)
	if err != nil {
		return ferr.New(ferr.KindIO, "event.bad_record", "", err)
	}
	if _, err := w.w.Write(line); err != nil {
		return ferr.New(ferr.KindIO, "event.io_error", "", err)
	}
	if err := w.w.WriteByte('\n'); err != nil {
		return ferr.New(ferr.KindIO, "event.io_error", "", err)
	}
	w.wrote++
	return nil
}

// Count returns the number of records written so far.
func (w *Writer) Count() int { return w.wrote }

// Flush flushes the underlying buffered writer. Callers must call Flush (or
// rely on WriteAll, which does) before relying on the output being durable.
func (w *Writer) Flush() error {
	if w.flushed {
		return nil
	}
	w.flushed = true
	if err := w.w.Flush(); err != nil {
		return ferr.New(ferr.KindIO, "event.io_error", "", err)
	}
	return nil
}

// WriteAll writes a full header + records stream and flushes it.
func WriteAll(w io.Writer, h Header, records []Record) (int, error) {
	wr, err := NewWriter(w, h)
	if err != nil {
		return 0, err
	}
	for _, rec := range records {
		if err := wr.Write(rec); err != nil {
			return wr.Count(), err
		}
	}
	return wr.Count(), wr.Flush()
}
