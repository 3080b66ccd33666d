package model

// Window is a fixed-capacity sliding window of samples. It starts full of
// zeros; each Push evicts the oldest value. It is not safe for concurrent use.
type Window struct {
	buf   []float64
	start int
}

func NewWindow(capacity int) *Window {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Window{buf: make([]float64, capacity)}
}

func (w *Window) Push(v float64) {
	w.buf[w.start] = v
	w.start = (w.start + 1) % len(w.buf)
}

// Values returns a copy of the window, oldest first.
func (w *Window) Values() []float64 {
	out := make([]float64, 0, len(w.buf))
	out = append(out, w.buf[w.start:]...)
	return append(out, w.buf[:w.start]...)
}

func (w *Window) Len() int { return len(w.buf) }
