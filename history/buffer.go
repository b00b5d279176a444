// Package history keeps the rolling window of samples behind the panel's
// temperature chart. The window has a fixed capacity chosen at construction;
// pushing onto a full buffer drops exactly the oldest sample, so the chart
// always shows the most recent readings in arrival order.
package history

// DefaultCapacity is the panel's rolling window size.
const DefaultCapacity = 10

// CacheKey is the snapshot-store key the window is persisted under, so the
// chart resumes where it left off across restarts.
const CacheKey = "history"

// Sample is one charted point: a time-of-day label and the reading taken at
// that moment.
type Sample struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Buffer is a bounded FIFO window of samples. It is not safe for concurrent
// use; the panel mutates it from its single update loop only.
type Buffer struct {
	capacity int
	samples  []Sample
}

// New creates a Buffer holding at most capacity samples. Capacities below
// one fall back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		capacity: capacity,
		samples:  make([]Sample, 0, capacity),
	}
}

// Restore rebuilds a buffer from previously persisted samples, keeping only
// the newest capacity entries. Used to resume the chart across restarts.
func Restore(capacity int, samples []Sample) *Buffer {
	b := New(capacity)
	if len(samples) > b.capacity {
		samples = samples[len(samples)-b.capacity:]
	}
	b.samples = append(b.samples, samples...)
	return b
}

// Push appends sample, evicting the single oldest entry when the buffer is
// already full.
func (b *Buffer) Push(s Sample) {
	b.samples = append(b.samples, s)
	if len(b.samples) > b.capacity {
		b.samples = b.samples[len(b.samples)-b.capacity:]
	}
}

// Len reports the number of buffered samples.
func (b *Buffer) Len() int { return len(b.samples) }

// Cap reports the buffer's fixed capacity.
func (b *Buffer) Cap() int { return b.capacity }

// Samples returns a copy of the window, oldest first.
func (b *Buffer) Samples() []Sample {
	out := make([]Sample, len(b.samples))
	copy(out, b.samples)
	return out
}

// Labels returns a copy of the window's labels, oldest first.
func (b *Buffer) Labels() []string {
	out := make([]string, len(b.samples))
	for i, s := range b.samples {
		out[i] = s.Label
	}
	return out
}

// Values returns a copy of the window's values, oldest first.
func (b *Buffer) Values() []float64 {
	out := make([]float64, len(b.samples))
	for i, s := range b.samples {
		out[i] = s.Value
	}
	return out
}
