package controls

// History is a bounded undo stack. The top entry is the current state:
// Push after every change, and Undo drops the top and returns the one
// beneath it.
type History[T any] struct {
	depth   int
	entries []T
}

func NewHistory[T any](depth int) *History[T] {
	return &History[T]{depth: max(depth, 1)}
}

// Push records v, forgetting the oldest entry past the depth.
func (h *History[T]) Push(v T) {
	h.entries = append(h.entries, v)
	if over := len(h.entries) - h.depth; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

// Undo returns the previous state. ok is false when there is none; the
// last remaining entry is never dropped.
func (h *History[T]) Undo() (v T, ok bool) {
	if len(h.entries) < 2 {
		return v, false
	}
	h.entries = h.entries[:len(h.entries)-1]
	return h.entries[len(h.entries)-1], true
}

func (h *History[T]) Clear() { h.entries = h.entries[:0] }

func (h *History[T]) Len() int { return len(h.entries) }
