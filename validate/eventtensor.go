package validate

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/evflow/eventflow/event"
)

// EventTensor streams an Event Tensor JSONL document from r and returns the
// full accumulated list of structural issues, per spec §4.2: it reads the
// header, then streams records enforcing idx arity and non-decreasing ts,
// recording every violation with a line reference rather than stopping at
// the first one (unlike event.Reader, which is the fail-fast runtime path).
func EventTensor(r io.Reader) Issues {
	issues := eventTensor(r)
	logErrors("event_tensor", issues)
	return issues
}

func eventTensor(r io.Reader) Issues {
	var issues Issues

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line := 0
	var header event.Header
	haveHeader := false
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var hl struct {
			Header event.Header `json:"header"`
		}
		if err := json.Unmarshal(raw, &hl); err != nil || hl.Header.Dims == nil {
			issues = append(issues, errIssue(lp(line), "first non-blank line must be {\"header\": {...}}"))
			return issues
		}
		header = hl.Header
		haveHeader = true
		break
	}
	if !haveHeader {
		issues = append(issues, errIssue("$", "empty stream, expected a header line"))
		return issues
	}
	if header.Units.Time != "ns" && header.Units.Time != "us" && header.Units.Time != "µs" && header.Units.Time != "ms" {
		issues = append(issues, errIssue(lp(line)+".header.units.time", "unrecognized time unit %q", header.Units.Time))
	}

	var lastTS int64
	hasLast := false
	for sc.Scan() {
		line++
		raw := sc.Bytes()
		if len(raw) == 0 {
			continue
		}
		var rec event.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			issues = append(issues, errIssue(lp(line), "malformed record: %v", err))
			continue
		}
		if len(rec.Idx) != len(header.Dims) {
			issues = append(issues, errIssue(lp(line), "idx length %d does not match header dims length %d", len(rec.Idx), len(header.Dims)))
		}
		if hasLast && rec.TS < lastTS {
			issues = append(issues, errIssue(lp(line), "ts %d is less than previous ts %d", rec.TS, lastTS))
		}
		lastTS = rec.TS
		hasLast = true
	}
	if err := sc.Err(); err != nil {
		issues = append(issues, errIssue(lp(line), "io error: %v", err))
	}

	return issues
}

func lp(line int) string { return fmt.Sprintf("$.line[%d]", line) }
