package entities

// PartKey is the normalized (case-folded, whitespace-stripped) form of a
// part number. It is the sole identity used for aggregation and lookup.
type PartKey string

// PartRecord is the consolidated inventory record for one normalized part key.
type PartRecord struct {
	Key         PartKey
	DisplayNo   string // first-seen original spelling
	Description string // first-seen non-empty description
	Quantity    float64
}

// PartIndex holds the aggregated part records in first-seen order. Iteration
// order matters downstream (keyword scanning and reports must be
// deterministic), so callers range over Keys() instead of a map.
type PartIndex struct {
	records map[PartKey]*PartRecord
	order   []PartKey
}

// NewPartIndex creates an empty part index.
func NewPartIndex() *PartIndex {
	return &PartIndex{records: make(map[PartKey]*PartRecord)}
}

// Add accumulates quantity for a key, keeping the first-seen display
// spelling and the first non-empty description.
func (x *PartIndex) Add(key PartKey, displayNo, description string, qty float64) {
	rec, ok := x.records[key]
	if !ok {
		rec = &PartRecord{Key: key, DisplayNo: displayNo}
		x.records[key] = rec
		x.order = append(x.order, key)
	}
	if rec.Description == "" && description != "" {
		rec.Description = description
	}
	rec.Quantity += qty
}

// Get returns the record for a key, or nil.
func (x *PartIndex) Get(key PartKey) *PartRecord {
	return x.records[key]
}

// Quantity returns the aggregated quantity for a key (0 when absent).
func (x *PartIndex) Quantity(key PartKey) float64 {
	if rec, ok := x.records[key]; ok {
		return rec.Quantity
	}
	return 0
}

// DisplayNo returns the first-seen spelling for a key, falling back to the
// key itself.
func (x *PartIndex) DisplayNo(key PartKey) string {
	if rec, ok := x.records[key]; ok && rec.DisplayNo != "" {
		return rec.DisplayNo
	}
	return string(key)
}

// Description returns the recorded description for a key ("" when absent).
func (x *PartIndex) Description(key PartKey) string {
	if rec, ok := x.records[key]; ok {
		return rec.Description
	}
	return ""
}

// Keys returns all keys in first-seen order.
func (x *PartIndex) Keys() []PartKey {
	return x.order
}

// Len returns the number of distinct keys.
func (x *PartIndex) Len() int {
	return len(x.order)
}

// InvalidPartEntry is one row of the deprecated-part directory.
type InvalidPartEntry struct {
	InvalidPartNo   string
	InvalidDesc     string
	ReplacementNo   string // empty when the part has no replacement
	ReplacementDesc string
}

// InvalidPartDirectory maps normalized invalid part keys to their entries.
type InvalidPartDirectory map[PartKey]InvalidPartEntry
