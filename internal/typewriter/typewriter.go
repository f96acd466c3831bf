// Package typewriter paces a streamed text response into single glyphs with
// a fixed delay between them.
package typewriter

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"
)

// Pacing used by the client.
const (
	FortuneDelay = 20 * time.Millisecond
	NameDelay    = 25 * time.Millisecond
)

// Kind distinguishes a printable rune from a line break.
type Kind int

const (
	Char Kind = iota
	LineBreak
)

// Glyph is one unit of output.
type Glyph struct {
	Kind Kind
	Rune rune
}

// Sink receives rendered output. Reset is called once before the first glyph.
type Sink interface {
	Reset()
	Char(r rune)
	LineBreak()
}

// Typewriter yields glyphs from r one at a time. Multi-byte runes split across
// transport chunks are reassembled by the buffered reader before they are
// emitted, so chunk boundaries never affect output.
type Typewriter struct {
	r       *bufio.Reader
	delay   time.Duration
	emitted int
}

// New wraps r. delay is applied between consecutive glyphs, not before the
// first one.
func New(r io.Reader, delay time.Duration) *Typewriter {
	return &Typewriter{r: bufio.NewReader(r), delay: delay}
}

// Delay returns the inter-glyph delay.
func (t *Typewriter) Delay() time.Duration { return t.delay }

// Emitted returns how many glyphs Next has produced.
func (t *Typewriter) Emitted() int { return t.emitted }

// Next waits out the inter-glyph delay (after the first glyph) and returns the
// next glyph. It returns io.EOF at the end of the stream. Invalid UTF-8 bytes
// come back as utf8.RuneError.
func (t *Typewriter) Next(ctx context.Context) (Glyph, error) {
	if t.emitted > 0 && t.delay > 0 {
		timer := time.NewTimer(t.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Glyph{}, ctx.Err()
		case <-timer.C:
		}
	}

	r, _, err := t.r.ReadRune()
	if err != nil {
		return Glyph{}, err
	}
	t.emitted++
	if r == '\n' {
		return Glyph{Kind: LineBreak}, nil
	}
	return Glyph{Kind: Char, Rune: r}, nil
}

// Render drives a Typewriter to completion into sink. It returns nil when the
// stream ends cleanly.
func Render(ctx context.Context, r io.Reader, delay time.Duration, sink Sink) error {
	tw := New(r, delay)
	sink.Reset()
	for {
		g, err := tw.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		Apply(sink, g)
	}
}

// Apply writes one glyph to sink.
func Apply(sink Sink, g Glyph) {
	if g.Kind == LineBreak {
		sink.LineBreak()
		return
	}
	sink.Char(g.Rune)
}
