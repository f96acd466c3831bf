package tui

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"github.com/tinytelemetry/lucky/internal/typewriter"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// streamSpec describes a page whose result is streamed text.
type streamSpec struct {
	panel       string
	resultID    string
	textID      string
	buttonID    string
	working     string
	placeholder string
	prompt      string
	fallback    string
	validate    func(string) error
	open        func(ctx context.Context, input string) (io.ReadCloser, error)
	delay       time.Duration
}

// streamPage renders fortune and name analysis: one input, one button, and a
// scrolling typewriter area.
type streamPage struct {
	app      *App
	spec     streamSpec
	input    textinput.Model
	viewport viewport.Model
	buf      typewriter.Buffer
}

func newStreamPage(a *App, spec streamSpec) *streamPage {
	return &streamPage{
		app:      a,
		spec:     spec,
		input:    newInput(spec.prompt, spec.placeholder, 32),
		viewport: viewport.New(80, 10),
	}
}

func (p *streamPage) ID() string {
	if p.spec.panel == panelName {
		return TabName
	}
	return TabFortune
}

func (p *streamPage) HandleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, p.app.keys.Submit):
		return p.start()
	case key.Matches(msg, p.app.keys.ScrollUp):
		p.viewport.HalfPageUp()
		return nil
	case key.Matches(msg, p.app.keys.ScrollDown):
		p.viewport.HalfPageDown()
		return nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *streamPage) View(width, height int) string {
	els := p.app.state.Elements
	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("  ")
	b.WriteString(els.Get(p.spec.buttonID).RenderButton())
	b.WriteString("\n\n")
	if els.Get(p.spec.resultID).Hidden {
		return b.String()
	}
	p.resize(width, height)
	b.WriteString(resultStyle.Render(p.viewport.View()))
	return b.String()
}

func (p *streamPage) resize(width, height int) {
	p.viewport.Width = max(width-4, 10)
	p.viewport.Height = max(height-6, 3)
	p.viewport.SetContent(p.content())
}

func (p *streamPage) content() string {
	return renderTextBlock(p.app.state.Elements.Get(p.spec.textID), p.viewport.Width)
}

// syncViewport refreshes the viewport from the text element, following the
// newest line.
func (p *streamPage) syncViewport() {
	p.viewport.SetContent(p.content())
	p.viewport.GotoBottom()
}

// start validates the input, clears the target, and opens the stream.
func (p *streamPage) start() tea.Cmd {
	a := p.app
	els := a.state.Elements
	if els.Get(p.spec.buttonID).Disabled {
		return nil
	}
	value := p.input.Value()
	if err := p.spec.validate(value); err != nil {
		p.fail(err.Error())
		return nil
	}

	a.begin(p.spec.buttonID, p.spec.working)
	p.buf.Reset()
	els.Get(p.spec.textID).SetText("")
	els.Get(p.spec.resultID).Hidden = false
	p.syncViewport()

	ctx, open := a.ctx, p.spec.open
	target, btn := p.spec.textID, p.spec.buttonID
	return tea.Batch(guard(btn, func() tea.Msg {
		body, err := open(ctx, value)
		if err != nil {
			return streamEndMsg{target: target, btn: btn, err: err}
		}
		return streamOpenedMsg{target: target, body: body}
	}), a.startSpinner())
}

// fail replaces the target with a red message.
func (p *streamPage) fail(msg string) {
	p.buf.Reset()
	els := p.app.state.Elements
	els.Get(p.spec.textID).SetError(msg)
	els.Get(p.spec.resultID).Hidden = false
	p.syncViewport()
}

// textStream is an open response being typed out.
type textStream struct {
	body io.ReadCloser
	tw   *typewriter.Typewriter
}

func (s *textStream) close() {
	if s.body != nil {
		s.body.Close()
		s.body = nil
	}
}

// next reads one glyph, waiting out the typewriter delay first.
func (s *textStream) next(ctx context.Context, target, btn string) tea.Cmd {
	tw := s.tw
	return guard(btn, func() tea.Msg {
		g, err := tw.Next(ctx)
		if errors.Is(err, io.EOF) {
			return streamEndMsg{target: target, btn: btn}
		}
		if err != nil {
			return streamEndMsg{target: target, btn: btn, err: err}
		}
		return glyphMsg{target: target, glyph: g}
	})
}

type streamOpenedMsg struct {
	target string
	body   io.ReadCloser
}

type glyphMsg struct {
	target string
	glyph  typewriter.Glyph
}

// streamEndMsg ends a stream: cleanly when err is nil.
type streamEndMsg struct {
	target string
	btn    string
	err    error
}

func (m streamEndMsg) buttonID() string { return m.btn }

// streamPageFor maps a text element id back to its page.
func (a *App) streamPageFor(target string) *streamPage {
	if target == a.name.spec.textID {
		return a.name
	}
	return a.fortune
}

func (a *App) handleStreamOpened(msg streamOpenedMsg) tea.Cmd {
	p := a.streamPageFor(msg.target)
	if old, ok := a.streams[msg.target]; ok {
		old.close()
	}
	s := &textStream{body: msg.body, tw: typewriter.New(msg.body, p.spec.delay)}
	a.streams[msg.target] = s
	return s.next(a.ctx, msg.target, p.spec.buttonID)
}

func (a *App) handleGlyph(msg glyphMsg) tea.Cmd {
	s, ok := a.streams[msg.target]
	if !ok {
		return nil
	}
	p := a.streamPageFor(msg.target)
	typewriter.Apply(&p.buf, msg.glyph)
	a.state.Elements.Get(msg.target).SetText(p.buf.String())
	p.syncViewport()
	return s.next(a.ctx, msg.target, p.spec.buttonID)
}

// dropStream closes and forgets the open stream for target, if any.
func (a *App) dropStream(target string) {
	if s, ok := a.streams[target]; ok {
		s.close()
		delete(a.streams, target)
	}
}

func (a *App) handleStreamEnd(msg streamEndMsg) tea.Cmd {
	a.dropStream(msg.target)
	if msg.err == nil {
		return nil
	}
	// streamed pages always show their fixed message, whatever the server said
	p := a.streamPageFor(msg.target)
	log.Printf("tui: %s: %v", msg.btn, msg.err)
	p.fail(p.spec.fallback)
	return nil
}
