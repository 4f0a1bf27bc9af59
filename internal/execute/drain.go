package execute

import (
	"bufio"
	"io"
)

const (
	drainInitialBufferSizeConstant = 64 * 1024
	drainMaximumLineSizeConstant   = 1024 * 1024
)

// OutputDrain reads a standard stream to completion on its own goroutine and
// buffers the decoded lines. The collected lines become visible only after
// the stream closes, so callers never observe a partial read.
type OutputDrain struct {
	collectedLines []string
	readError      error
	completed      chan struct{}
}

// StartOutputDrain begins draining the provided stream immediately.
func StartOutputDrain(stream io.Reader) *OutputDrain {
	drain := &OutputDrain{completed: make(chan struct{})}
	go drain.consume(stream)
	return drain
}

func (drain *OutputDrain) consume(stream io.Reader) {
	defer close(drain.completed)

	lineScanner := bufio.NewScanner(stream)
	lineScanner.Buffer(make([]byte, drainInitialBufferSizeConstant), drainMaximumLineSizeConstant)
	for lineScanner.Scan() {
		drain.collectedLines = append(drain.collectedLines, lineScanner.Text())
	}
	drain.readError = lineScanner.Err()
	if drain.readError != nil {
		// A scan failure such as an oversized line must not stop the drain:
		// the writer would block on a full pipe and stall the whole run.
		// Discard the remainder so the stream keeps flowing to close.
		_, _ = io.Copy(io.Discard, stream)
	}
}

// Wait blocks until the stream has closed and returns the complete ordered
// line sequence. The drain terminates once the producing process exits (or is
// killed) and its pipe is fully consumed.
func (drain *OutputDrain) Wait() []string {
	<-drain.completed
	duplicatedLines := make([]string, len(drain.collectedLines))
	copy(duplicatedLines, drain.collectedLines)
	return duplicatedLines
}

// ReadError reports a non-EOF error observed while scanning, such as
// bufio.ErrTooLong for a line exceeding the buffer cap. The collected lines
// are the complete prefix read before the error; the rest of the stream was
// discarded. It must only be consulted after Wait has returned.
func (drain *OutputDrain) ReadError() error {
	return drain.readError
}
