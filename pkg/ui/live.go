package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/k0kubun/go-ansi"
)

// Live repaints a block of terminal lines in place.
type Live struct {
	w     io.Writer
	lines int
}

func NewLive() *Live {
	return &Live{w: ansi.NewAnsiStdout()}
}

// Update moves the cursor back over the previous frame, wipes it and
// draws the new one.
func (l *Live) Update(block string) {
	if !strings.HasSuffix(block, "\n") {
		block += "\n"
	}
	if l.lines > 0 {
		fmt.Fprintf(l.w, "\x1b[%dA", l.lines)
	}
	fmt.Fprint(l.w, "\x1b[0J")
	fmt.Fprint(l.w, block)
	l.lines = strings.Count(block, "\n")
}
