// Package stats emits the per-stage CSV log of the engine: one line
// `operation,input_size,output_size,micros` per completed stage. A nil
// Recorder is valid everywhere and records nothing, so library callers
// pay nothing for instrumentation they did not ask for.
package stats

import (
	"fmt"
	"io"
	"time"
)

// Recorder appends stage lines to a writer. The engine is
// single-threaded, so the recorder is not synchronized.
type Recorder struct {
	w   io.Writer
	now func() time.Time
}

// NewRecorder returns a recorder writing to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, now: time.Now}
}

// Stage opens a stage with its input size and returns the closer that
// stamps the output size and elapsed microseconds. Safe on a nil
// receiver.
func (r *Recorder) Stage(operation string, inputSize int) func(outputSize int) {
	if r == nil {
		return func(int) {}
	}
	start := r.now()
	return func(outputSize int) {
		micros := r.now().Sub(start).Microseconds()
		fmt.Fprintf(r.w, "%s,%d,%d,%d\n", operation, inputSize, outputSize, micros)
	}
}

// Line emits a one-off stage with zero duration, for counts discovered
// outside a timed region. Safe on a nil receiver.
func (r *Recorder) Line(operation string, inputSize, outputSize int) {
	if r == nil {
		return
	}
	fmt.Fprintf(r.w, "%s,%d,%d,0\n", operation, inputSize, outputSize)
}
