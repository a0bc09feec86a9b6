package renderer

import "sync/atomic"

// ScanlineProducer hands out row indices to workers. Every row in
// [0, total) is returned exactly once across all callers.
type ScanlineProducer struct {
	next  atomic.Int64
	total int
}

// NewScanlineProducer creates a producer for an image with the given number of rows
func NewScanlineProducer(total int) *ScanlineProducer {
	return &ScanlineProducer{total: total}
}

// Next claims the next unrendered row. It returns false once all rows are claimed.
func (p *ScanlineProducer) Next() (int, bool) {
	row := int(p.next.Add(1) - 1)
	if row >= p.total {
		return 0, false
	}
	return row, true
}

// Total is the number of rows the producer hands out
func (p *ScanlineProducer) Total() int {
	return p.total
}
