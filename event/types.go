package event

// Dtype names one of the four element encodings an Event Tensor header may
// declare (spec §3). EventFlow's in-memory records are always float64/int64
// internally; Dtype is carried through for header round-tripping only —
// Writer encodes every value as a JSON number whatever the declared Dtype.
type Dtype string

const (
	DtypeF32 Dtype = "f32"
	DtypeF16 Dtype = "f16"
	DtypeI16 Dtype = "i16"
	DtypeU8  Dtype = "u8"
)

// Layout names the physical arrangement of records (spec §3).
type Layout string

const (
	LayoutCOO   Layout = "coo"
	LayoutBlock Layout = "block"
)

// Units mirrors the header's `units` object.
type Units struct {
	Time  string `json:"time"`
	Value string `json:"value,omitempty"`
}

// Header is the single header record every Event Tensor JSONL stream opens
// with (spec §3, §6).
type Header struct {
	SchemaVersion string                 `json:"schema_version"`
	Dims          []string               `json:"dims"`
	Units         Units                  `json:"units"`
	Dtype         Dtype                  `json:"dtype"`
	Layout        Layout                 `json:"layout"`
	Metadata      map[string]interface{} `json:"metadata,omitempty"`
}

// Record is one event in canonical form: an integer timestamp, an index
// tuple whose length matches len(Header.Dims), and a scalar value.
type Record struct {
	TS   int64                  `json:"ts"`
	Idx  []int64                `json:"idx"`
	Val  float64                `json:"val"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

// headerLine is the on-wire envelope: {"header": {...}}.
type headerLine struct {
	Header Header `json:"header"`
}
