package runtime

import "io"

// Context is the executor's sole channel to the outside world (spec.md
// §6): it exposes the byte sink Print/Stringify write through, and it
// threads down to every dunder call so instances could, in principle,
// observe it too.
type Context interface {
	OutputStream() io.Writer
}

// StreamContext is the concrete Context used by the CLI and by tests:
// a single io.Writer, matching the original interpreter's
// SimpleContext.
type StreamContext struct {
	out io.Writer
}

// NewStreamContext wraps w as a Context.
func NewStreamContext(w io.Writer) *StreamContext {
	return &StreamContext{out: w}
}

func (c *StreamContext) OutputStream() io.Writer { return c.out }
