package compare

// DefaultFirstN is the default number of mismatches retained with
// per-field deltas, per spec §4.6.
const DefaultFirstN = 20

// MismatchField names which field of a record pair failed to compare
// equal within tolerance.
type MismatchField string

const (
	FieldTimestamp MismatchField = "ts"
	FieldIndex     MismatchField = "idx"
	FieldValue     MismatchField = "val"
)

// Mismatch captures one record pair (by position in the stream) that failed
// a comparison, with enough detail to reproduce the failing check by hand.
type Mismatch struct {
	Index          int
	Field          MismatchField
	CandidateTSUs  int64
	GoldenTSUs     int64
	CandidateIdx   []int64
	GoldenIdx      []int64
	CandidateVal   float64
	GoldenVal      float64
	Delta          float64
	MetaDiff       string // non-empty only when Meta also differs, via cmp.Diff
}

// Counts summarizes how many records were compared, how many mismatched,
// and whether the two streams differed in length.
type Counts struct {
	Compared       int
	Mismatched     int
	CandidateExtra int // records candidate has beyond golden's length
	GoldenExtra    int // records golden has beyond candidate's length
}

// Result is the outcome of comparing two traces (spec §4.6).
type Result struct {
	OK              bool
	Counts          Counts
	FirstMismatches []Mismatch
}
