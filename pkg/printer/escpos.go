package printer

import (
	"bytes"
	"fmt"
	"strings"
)

// ESC/POS control bytes
const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Text alignment
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character size
const (
	SizeNormal = 0x00
	SizeDouble = 0x11 // double width and height
	SizeWide   = 0x10
	SizeTall   = 0x01
)

// Job builds an ESC/POS byte stream for one print job.
type Job struct {
	buf   bytes.Buffer
	width int // characters per line: 32 for 58mm paper, 48 for 80mm
}

// NewJob creates an initialized print job with the given character width.
func NewJob(charWidth int) *Job {
	if charWidth <= 0 {
		charWidth = 32
	}
	j := &Job{width: charWidth}
	j.buf.Write([]byte{esc, '@'})
	return j
}

// Feed advances the paper n lines.
func (j *Job) Feed(n int) *Job {
	for i := 0; i < n; i++ {
		j.buf.WriteByte(lf)
	}
	return j
}

// Align sets text alignment for subsequent lines.
func (j *Job) Align(a int) *Job {
	j.buf.Write([]byte{esc, 'a', byte(a)})
	return j
}

// Bold toggles emphasized printing.
func (j *Job) Bold(on bool) *Job {
	b := byte(0)
	if on {
		b = 1
	}
	j.buf.Write([]byte{esc, 'E', b})
	return j
}

// Size sets the character size for subsequent lines.
func (j *Job) Size(s byte) *Job {
	j.buf.Write([]byte{gs, '!', s})
	return j
}

// Line writes a line of text followed by a feed.
func (j *Job) Line(s string) *Job {
	j.buf.WriteString(s)
	j.buf.WriteByte(lf)
	return j
}

// Linef writes a formatted line followed by a feed.
func (j *Job) Linef(format string, args ...any) *Job {
	return j.Line(fmt.Sprintf(format, args...))
}

// Rule prints a full-width rule of the given character.
func (j *Job) Rule(char byte) *Job {
	return j.Line(strings.Repeat(string(char), j.width))
}

// TwoCol prints a left-aligned label and a right-aligned value on one line.
func (j *Job) TwoCol(label, value string) *Job {
	pad := j.width - len(label) - len(value)
	if pad < 1 {
		pad = 1
	}
	j.buf.WriteString(label)
	j.buf.WriteString(strings.Repeat(" ", pad))
	j.buf.WriteString(value)
	j.buf.WriteByte(lf)
	return j
}

// ItemLine prints a receipt item line: qty x name, then a right-aligned
// amount. Long names are truncated to keep the amount on the same line.
func (j *Job) ItemLine(qty int, name, amount string) *Job {
	label := fmt.Sprintf("%dx %s", qty, name)
	max := j.width - len(amount) - 1
	if max > 0 && len(label) > max {
		label = label[:max]
	}
	return j.TwoCol(label, amount)
}

// Cut sends the paper cut command.
func (j *Job) Cut() *Job {
	j.buf.Write([]byte{gs, 'V', 0x00})
	return j
}

// Bytes returns the accumulated ESC/POS byte stream.
func (j *Job) Bytes() []byte {
	return j.buf.Bytes()
}
