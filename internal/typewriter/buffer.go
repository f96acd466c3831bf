package typewriter

import "strings"

// Buffer is a Sink that accumulates rendered text. Line breaks are stored as
// '\n' and counted separately.
type Buffer struct {
	b      strings.Builder
	breaks int
}

func (b *Buffer) Reset() {
	b.b.Reset()
	b.breaks = 0
}

func (b *Buffer) Char(r rune) { b.b.WriteRune(r) }

func (b *Buffer) LineBreak() {
	b.b.WriteByte('\n')
	b.breaks++
}

// LineBreaks returns the number of line breaks written since the last Reset.
func (b *Buffer) LineBreaks() int { return b.breaks }

func (b *Buffer) String() string { return b.b.String() }
