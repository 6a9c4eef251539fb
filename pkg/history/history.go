package history

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/charlie0129/unitconv/pkg/converter"
)

// Record is one completed conversion.
type Record struct {
	ID        string           `json:"id"`
	Time      time.Time        `json:"time"`
	Value     float64          `json:"value"`
	From      string           `json:"from"`
	To        string           `json:"to"`
	FromLabel string           `json:"fromLabel"`
	ToLabel   string           `json:"toLabel"`
	Result    converter.Result `json:"result"`
}

// Recorder keeps the last N conversions, oldest first.
type Recorder struct {
	maxRecordCount int
	records        []Record
	mu             *sync.Mutex
}

// NewRecorder returns a Recorder holding at most maxRecordCount records.
func NewRecorder(maxRecordCount int) *Recorder {
	return &Recorder{
		maxRecordCount: maxRecordCount,
		records:        make([]Record, 0),
		mu:             &sync.Mutex{},
	}
}

// NewRecord returns a record with a fresh ID for a completed conversion.
func NewRecord(req converter.Resolved, res converter.Result) Record {
	return Record{
		ID:        uuid.New().String(),
		Time:      time.Now().Round(0), // strip monotonic clock reading
		Value:     req.Value,
		From:      req.From,
		To:        req.To,
		FromLabel: req.FromLabel,
		ToLabel:   req.ToLabel,
		Result:    res,
	}
}

// Resolved returns the request the record was made for.
func (rec Record) Resolved() converter.Resolved {
	return converter.Resolved{
		Value:     rec.Value,
		From:      rec.From,
		To:        rec.To,
		FromLabel: rec.FromLabel,
		ToLabel:   rec.ToLabel,
	}
}

// Add stores a conversion and returns the stored record.
func (r *Recorder) Add(req converter.Resolved, res converter.Result) Record {
	rec := NewRecord(req, res)

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.maxRecordCount <= 0 {
		return rec
	}
	if len(r.records) >= r.maxRecordCount {
		r.records = r.records[len(r.records)-r.maxRecordCount+1:]
	}
	r.records = append(r.records, rec)

	return rec
}

// List returns a copy of the records, oldest first.
func (r *Recorder) List() []Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	ret := make([]Record, len(r.records))
	copy(ret, r.records)
	return ret
}

// Len returns the number of records.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.records)
}

// Clear removes all records.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = make([]Record, 0)
}

// Resize changes the maximum record count, dropping the oldest records if
// needed.
func (r *Recorder) Resize(maxRecordCount int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.maxRecordCount = maxRecordCount
	switch {
	case maxRecordCount <= 0:
		r.records = make([]Record, 0)
	case len(r.records) > maxRecordCount:
		r.records = r.records[len(r.records)-maxRecordCount:]
	}
}

// PruneBefore drops records made before t and returns how many were dropped.
func (r *Recorder) PruneBefore(t time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := 0
	for i < len(r.records) && r.records[i].Time.Before(t) {
		i++
	}
	if i == 0 {
		return 0
	}
	r.records = append(make([]Record, 0, len(r.records)-i), r.records[i:]...)
	return i
}
