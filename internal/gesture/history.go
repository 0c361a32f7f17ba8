package gesture

// History retention parameters.
const (
	// HistoryCapacity is the maximum number of entries retained.
	HistoryCapacity = 10
	// HistoryMinConfidence is the confidence a result must exceed
	// (strictly) to be recorded.
	HistoryMinConfidence = 0.7
)

// History is a bounded FIFO buffer of recent high-confidence classifications.
// It keeps at most HistoryCapacity entries, evicting the oldest first, and
// only admits results whose confidence exceeds HistoryMinConfidence.
//
// History is not safe for concurrent use. The detection pipeline is the
// single writer; readers go through App accessors that copy under the App
// lock.
type History struct {
	entries []Result
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{
		entries: make([]Result, 0, HistoryCapacity),
	}
}

// Record appends the result if its confidence exceeds the threshold,
// evicting the oldest entry when the buffer is full. It reports whether
// the result was accepted.
func (h *History) Record(r Result) bool {
	if r.Confidence <= HistoryMinConfidence {
		return false
	}

	if len(h.entries) >= HistoryCapacity {
		// Shift left by one, dropping the oldest entry.
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:HistoryCapacity-1]
	}
	h.entries = append(h.entries, r)

	return true
}

// Recent returns up to n entries, most recent first. Passing n larger than
// the current length returns everything; n <= 0 returns nil.
func (h *History) Recent(n int) []Result {
	if n <= 0 {
		return nil
	}
	if n > len(h.entries) {
		n = len(h.entries)
	}

	out := make([]Result, n)
	for i := 0; i < n; i++ {
		out[i] = h.entries[len(h.entries)-1-i]
	}
	return out
}

// Entries returns a copy of the buffer in arrival order, oldest first.
func (h *History) Entries() []Result {
	out := make([]Result, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.entries)
}
