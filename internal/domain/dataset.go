package domain

// Dataset is an append-only, chronologically ordered store of daily weather
// records. The most recent record is last.
//
// A Dataset is not safe for concurrent Append, but once loading is finished
// any number of goroutines may read from it.
type Dataset struct {
	records []WeatherRecord
}

// NewDataset creates a dataset holding records in the given order.
func NewDataset(records ...WeatherRecord) *Dataset {
	ds := &Dataset{records: make([]WeatherRecord, 0, len(records))}
	ds.records = append(ds.records, records...)
	return ds
}

// Append adds a record as the new most recent day.
func (d *Dataset) Append(r WeatherRecord) {
	d.records = append(d.records, r)
}

// Len returns the number of stored days.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// MostRecent returns the last min(n, Len()) records in chronological order.
// The result is a read-only view over the store; its capacity is capped so a
// later Append can never write through it.
func (d *Dataset) MostRecent(n int) []WeatherRecord {
	size := d.Len()
	if n > size {
		n = size
	}
	if n <= 0 {
		return nil
	}
	return d.records[size-n : size : size]
}

// Latest returns the most recent record.
func (d *Dataset) Latest() (WeatherRecord, error) {
	if d.Len() == 0 {
		return WeatherRecord{}, ErrInvalidDataset
	}
	return d.records[len(d.records)-1], nil
}
