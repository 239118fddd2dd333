package domain

// Measurement is one recorded body measurement for a given key
// (e.g. "Chest", "Waist").
type Measurement struct {
	ID    string  `json:"id,omitempty"`
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
	Date  Date    `json:"date,omitempty"`
}

// ChartPoint is one sample of a measurement series over time.
type ChartPoint struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

// MeasurementProgress is the latest value for a key plus its change since
// the previous sample.
type MeasurementProgress struct {
	Key    string  `json:"key"`
	Latest float64 `json:"latest"`
	Change float64 `json:"change"`
}
