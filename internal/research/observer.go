// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"io"
)

// Observer receives progress notifications as the pipeline advances.
// Each stage reports twice with the same step number, once before it
// runs and once after (R5.1); the engine adds start, completion, and
// cache-hit notifications of its own.
type Observer interface {
	Progress(message string, step, total int)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) Progress(string, int, int) {}

// WriterObserver prints each notification as a "Step N/M: message" line.
type WriterObserver struct {
	W io.Writer
}

func (o WriterObserver) Progress(message string, step, total int) {
	fmt.Fprintf(o.W, "Step %d/%d: %s\n", step, total, message)
}
