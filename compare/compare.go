package compare

import (
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"

	"github.com/evflow/eventflow/event"
	"github.com/evflow/eventflow/ferr"
	"github.com/evflow/eventflow/timeunit"
)

// Compare opens candidatePath and goldenPath as Event Tensor JSONL streams
// and checks them for equivalence within epsTimeUs/epsNumeric, per spec
// §4.6, retaining the default first N mismatches.
func Compare(candidatePath, goldenPath string, epsTimeUs int64, epsNumeric float64) (*Result, error) {
	return CompareN(candidatePath, goldenPath, epsTimeUs, epsNumeric, DefaultFirstN)
}

// CompareN is Compare with an explicit cap on how many mismatches to retain
// with per-field deltas.
func CompareN(candidatePath, goldenPath string, epsTimeUs int64, epsNumeric float64, firstN int) (*Result, error) {
	cf, err := os.Open(candidatePath)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, "compare.open_candidate", candidatePath, err)
	}
	defer cf.Close()
	gf, err := os.Open(goldenPath)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, "compare.open_golden", goldenPath, err)
	}
	defer gf.Close()

	cr, err := event.NewReader(cf)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, "compare.read_candidate_header", candidatePath, err)
	}
	gr, err := event.NewReader(gf)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, "compare.read_golden_header", goldenPath, err)
	}

	if cr.Header.Units.Time != gr.Header.Units.Time {
		return nil, errHeaderTimeUnitMismatch(cr.Header.Units.Time, gr.Header.Units.Time)
	}
	cUnit, err := timeunit.ParseUnit(cr.Header.Units.Time)
	if err != nil {
		return nil, ferr.New(ferr.KindIO, "compare.bad_time_unit", candidatePath, err)
	}

	res := &Result{OK: true}
	index := 0
	for {
		cRec, cOK, cErr := cr.Next()
		gRec, gOK, gErr := gr.Next()
		if cErr != nil {
			return nil, ferr.New(ferr.KindIO, "compare.read_candidate", candidatePath, cErr)
		}
		if gErr != nil {
			return nil, ferr.New(ferr.KindIO, "compare.read_golden", goldenPath, gErr)
		}

		if !cOK && !gOK {
			break
		}
		if cOK && !gOK {
			res.Counts.CandidateExtra++
			res.OK = false
			index++
			continue
		}
		if !cOK && gOK {
			res.Counts.GoldenExtra++
			res.OK = false
			index++
			continue
		}

		res.Counts.Compared++
		mismatch, isMismatch := compareRecords(index, cRec, gRec, cUnit, epsTimeUs, epsNumeric)
		if isMismatch {
			res.Counts.Mismatched++
			res.OK = false
			if len(res.FirstMismatches) < firstN {
				res.FirstMismatches = append(res.FirstMismatches, mismatch)
			}
		}
		index++
	}

	return res, nil
}

// compareRecords applies spec §4.6's three checks in order, reporting the
// first one that fails (ts, then idx, then val) — a record pair either
// matches on all three or contributes exactly one Mismatch.
func compareRecords(index int, c, g event.Record, unit timeunit.Unit, epsTimeUs int64, epsNumeric float64) (Mismatch, bool) {
	cTSUs := timeunit.Convert(c.TS, unit, timeunit.US)
	gTSUs := timeunit.Convert(g.TS, unit, timeunit.US)
	deltaTS := cTSUs - gTSUs
	if deltaTS < 0 {
		deltaTS = -deltaTS
	}
	if deltaTS > epsTimeUs {
		return Mismatch{
			Index: index, Field: FieldTimestamp,
			CandidateTSUs: cTSUs, GoldenTSUs: gTSUs, Delta: float64(deltaTS),
			MetaDiff: metaDiff(c.Meta, g.Meta),
		}, true
	}

	if !idxEqual(c.Idx, g.Idx) {
		return Mismatch{
			Index: index, Field: FieldIndex,
			CandidateIdx: c.Idx, GoldenIdx: g.Idx,
			MetaDiff: metaDiff(c.Meta, g.Meta),
		}, true
	}

	denom := 1.0
	if abs := absFloat(g.Val); abs > denom {
		denom = abs
	}
	relDelta := absFloat(c.Val-g.Val) / denom
	if relDelta > epsNumeric {
		return Mismatch{
			Index: index, Field: FieldValue,
			CandidateVal: c.Val, GoldenVal: g.Val, Delta: relDelta,
			MetaDiff: metaDiff(c.Meta, g.Meta),
		}, true
	}

	return Mismatch{}, false
}

func idxEqual(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func absFloat(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// metaDiff returns a human-readable diff of two records' metadata maps, for
// diagnostics beyond spec §4.6's three required checks. Empty when equal.
func metaDiff(a, b map[string]interface{}) string {
	if cmp.Equal(a, b) {
		return ""
	}
	return fmt.Sprint(cmp.Diff(a, b))
}
