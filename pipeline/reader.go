package pipeline

// Reader consumes computed blocks sample by sample. It's not safe for
// concurrent use.
type Reader struct {
	blocks  <-chan []float32
	recycle func([]float32)
	block   []float32
	cursor  int
	done    bool
}

// NewReader returns a reader of the block queue.
func NewReader(blocks <-chan []float32) *Reader {
	return &Reader{blocks: blocks}
}

// Next returns the next sample. When the current block is drained, it
// blocks until the next one is available. False is returned once the
// queue is closed and drained.
func (r *Reader) Next() (float32, bool) {
	for r.cursor >= len(r.block) {
		if r.done {
			return 0, false
		}
		if r.block != nil && r.recycle != nil {
			r.recycle(r.block)
		}
		r.block, r.cursor = nil, 0
		b, ok := <-r.blocks
		if !ok {
			r.done = true
			return 0, false
		}
		r.block = b
	}
	v := r.block[r.cursor]
	r.cursor++
	return v, true
}

// Fill writes interleaved frames into out, the same mono sample to every
// channel of the frame. After the queue is closed, silence is written.
// Number of frames filled with signal is returned.
func (r *Reader) Fill(out []float32, channels int) int {
	if channels < 1 {
		channels = 1
	}
	frames := 0
	for i := 0; i < len(out); i += channels {
		v, ok := r.Next()
		if ok {
			frames++
		}
		end := min(i+channels, len(out))
		for j := i; j < end; j++ {
			out[j] = v
		}
	}
	return frames
}

// Done returns true when the queue is closed and drained.
func (r *Reader) Done() bool {
	return r.done
}
