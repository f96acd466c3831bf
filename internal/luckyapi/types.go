package luckyapi

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Amount holds a price as the server sent it. The service returns either a
// bare number (88) or a display string ("8888元"). The text is kept verbatim
// along with its form, so a price is sent back the way it arrived.
type Amount struct {
	text   string
	number bool
}

// NumberAmount is a price written as a JSON number.
func NumberAmount(s string) Amount { return Amount{text: s, number: true} }

// TextAmount is a price written as a JSON string.
func TextAmount(s string) Amount { return Amount{text: s} }

func (a Amount) String() string { return a.text }

// IsNumber reports whether the price is encoded as a JSON number.
func (a Amount) IsNumber() bool { return a.number && isJSONNumber(a.text) }

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = TextAmount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = NumberAmount(n.String())
	return nil
}

// MarshalJSON writes number-form prices bare and everything else quoted.
// Number text that is not a valid JSON number is quoted too.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.IsNumber() {
		return []byte(a.text), nil
	}
	return json.Marshal(a.text)
}

// UnmarshalYAML reads fixture prices: unquoted numbers keep the number form.
func (a *Amount) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("luckyapi: price must be a scalar, line %d", value.Line)
	}
	switch value.ShortTag() {
	case "!!null":
		*a = Amount{}
	case "!!int", "!!float":
		*a = NumberAmount(value.Value)
	default:
		*a = TextAmount(value.Value)
	}
	return nil
}

func isJSONNumber(s string) bool {
	if s == "" || (s[0] != '-' && (s[0] < '0' || s[0] > '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

// EvaluationResult is the /evaluate response.
type EvaluationResult struct {
	Price      Amount `json:"price"`
	Level      string `json:"level"`
	Suggestion string `json:"suggestion"`
}

// DrawResult is the /lucky_draw response.
type DrawResult struct {
	Prize   string `json:"prize"`
	Message string `json:"message"`
	Score   int    `json:"score"`
}

// RankingEntry is one leaderboard row.
type RankingEntry struct {
	Number    string `json:"number"`
	Price     Amount `json:"price"`
	Level     string `json:"level"`
	Timestamp string `json:"timestamp"`
}

// RankingSnapshot is the full /rankings payload. It replaces any earlier
// snapshot wholesale.
type RankingSnapshot struct {
	TopNumbers        []RankingEntry `json:"top_numbers"`
	RecentEvaluations []RankingEntry `json:"recent_evaluations"`
}

// ShareKind selects the share-card template.
type ShareKind string

const (
	ShareNumber ShareKind = "number"
	ShareLucky  ShareKind = "lucky"
)

// ShareCardRequest is the /generate_share_card body. Content is passed
// through to the server untouched.
type ShareCardRequest struct {
	Type    ShareKind `json:"type"`
	Content any       `json:"content"`
}

// ShareCard is the /generate_share_card response.
type ShareCard struct {
	Image string `json:"image"`
}

// RankingSubmission is the /add_to_ranking body.
type RankingSubmission struct {
	Number string `json:"number"`
	Price  Amount `json:"price"`
	Level  string `json:"level"`
}

type errorBody struct {
	Error string `json:"error"`
}
