package tui

import "github.com/charmbracelet/lipgloss"

// Element is a named render target: a text block, a button, a panel, or a
// tab control. Pages render from elements; handlers only mutate them.
type Element struct {
	ID       string
	Text     string
	Error    bool // render Text in the error color
	Hidden   bool
	Disabled bool // buttons only
	Active   bool // panels and tab controls
	Reveal   int  // remaining frames of the reveal highlight
}

// Render draws a text element, honoring Hidden and Error.
func (e *Element) Render() string {
	if e.Hidden {
		return ""
	}
	if e.Error {
		return errorStyle.Render(e.Text)
	}
	return e.Text
}

// RenderButton draws a button element.
func (e *Element) RenderButton() string {
	if e.Disabled {
		return disabledButtonStyle.Render(e.Text)
	}
	return buttonStyle.Render(e.Text)
}

// SetError replaces the text with a red message and shows the element.
func (e *Element) SetError(msg string) {
	e.Text = msg
	e.Error = true
	e.Hidden = false
}

// SetText replaces the text in the default color.
func (e *Element) SetText(s string) {
	e.Text = s
	e.Error = false
}

// Elements memoizes element lookups by id. The first Get for an id runs the
// query; later calls return the stored handle. There is no invalidation, so
// ids must never be re-created.
type Elements struct {
	query   func(id string) *Element
	cache   map[string]*Element
	queries int
}

// NewElements builds a cache over query.
func NewElements(query func(id string) *Element) *Elements {
	return &Elements{query: query, cache: make(map[string]*Element)}
}

// Get returns the element for id, querying at most once.
func (es *Elements) Get(id string) *Element {
	if el, ok := es.cache[id]; ok {
		return el
	}
	es.queries++
	el := es.query(id)
	es.cache[id] = el
	return el
}

// Queries returns how many times the underlying query ran.
func (es *Elements) Queries() int { return es.queries }

// elementSpec is the initial state of a known element.
type elementSpec struct {
	text   string
	hidden bool
}

// layout lists every element the client renders, with its initial state.
var layout = map[string]elementSpec{
	// panels and tab controls
	panelNumber:  {},
	panelFortune: {},
	panelName:    {},
	panelLucky:   {},
	panelRanking: {},

	"tab-number":  {text: "号码评估"},
	"tab-fortune": {text: "生辰算命"},
	"tab-name":    {text: "姓名分析"},
	"tab-lucky":   {text: "幸运转盘"},
	"tab-ranking": {text: "排行榜"},

	// number evaluation
	"result":       {hidden: true},
	"price":        {text: "-"},
	"level":        {text: "-"},
	"suggestion":   {text: "-"},
	"evaluate-btn": {text: "立即评估"},

	// fortune
	"fortune-result": {hidden: true},
	"fortune-text":   {},
	"fortune-btn":    {text: "开始算命"},

	// name analysis
	"name-result": {hidden: true},
	"name-text":   {},
	"name-btn":    {text: "开始分析"},

	// lucky draw
	"draw-result": {hidden: true},
	"spin-btn":    {text: "开始抽奖"},

	// ranking
	"ranking-status": {hidden: true},
	"ranking-btn":    {text: "刷新排行"},

	// share card
	"share-status": {hidden: true},
	"share-btn":    {text: "生成分享卡"},
}

// queryLayout is the production query: it materializes elements from layout.
// Unknown ids get an empty element rather than nil so renders never panic.
func queryLayout(id string) *Element {
	spec := layout[id]
	return &Element{ID: id, Text: spec.text, Hidden: spec.hidden}
}

// renderTextBlock wraps a text element to width.
func renderTextBlock(e *Element, width int) string {
	if e.Hidden {
		return ""
	}
	style := lipgloss.NewStyle().Width(width)
	if e.Error {
		style = style.Foreground(ColorRed)
	}
	return style.Render(e.Text)
}
