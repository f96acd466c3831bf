package stubserver

import (
	"fmt"
	"os"
	"strings"

	"github.com/tinytelemetry/lucky/internal/luckyapi"
	"gopkg.in/yaml.v3"
)

// Evaluation is one canned /evaluate answer.
type Evaluation struct {
	Price      string `yaml:"price"`
	Level      string `yaml:"level"`
	Suggestion string `yaml:"suggestion"`
}

// PrizeLine is the canned message and score for one prize name.
type PrizeLine struct {
	Message string `yaml:"message"`
	Score   int    `yaml:"score"`
}

// Fixtures is the YAML document the stub replays. Evaluations are keyed by
// number with "default" answering everything else; Failures make /evaluate
// answer 400 with the given message. NameAnalysis has {name} substituted.
type Fixtures struct {
	Evaluations  map[string]Evaluation   `yaml:"evaluations"`
	Failures     map[string]string       `yaml:"failures"`
	Fortune      string                  `yaml:"fortune"`
	NameAnalysis string                  `yaml:"name_analysis"`
	Prizes       map[string]PrizeLine    `yaml:"prizes"`
	ShareImage   string                  `yaml:"share_image"`
	Rankings     []luckyapi.RankingEntry `yaml:"rankings"`
}

// transparent 1x1 PNG
const defaultShareImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

// DefaultFixtures is used when no fixture file is configured.
func DefaultFixtures() Fixtures {
	return Fixtures{
		Evaluations: map[string]Evaluation{
			"8888":    {Price: "9888元", Level: "至尊", Suggestion: "四八连号，财气逼人，宜长期持有。"},
			"default": {Price: "3888元", Level: "吉祥", Suggestion: "数字平稳，适合日常使用。"},
		},
		Failures: map[string]string{
			"0000": "无效号码",
		},
		Fortune:      "生肖：龙\n星座：白羊座\n\n性格分析：积极进取。\n开运建议：多穿红色。",
		NameAnalysis: "姓名：{name}\n五格数理：吉\n寓意：光明磊落。",
		Prizes: map[string]PrizeLine{
			"特等奖":  {Message: "鸿运当头！", Score: 100},
			"一等奖":  {Message: "好运连连！", Score: 80},
			"二等奖":  {Message: "喜从天降！", Score: 60},
			"三等奖":  {Message: "小有收获！", Score: 40},
			"幸运奖":  {Message: "幸运常伴！", Score: 20},
			"谢谢参与": {Message: "再接再厉！", Score: 0},
		},
		ShareImage: defaultShareImage,
	}
}

// LoadFixtures reads a YAML fixture file. Keys missing from the file fall back
// to DefaultFixtures.
func LoadFixtures(path string) (Fixtures, error) {
	fx := DefaultFixtures()
	if strings.TrimSpace(path) == "" {
		return fx, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fx, fmt.Errorf("stubserver: read fixtures: %w", err)
	}
	var loaded Fixtures
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fx, fmt.Errorf("stubserver: parse fixtures %s: %w", path, err)
	}
	fx.merge(loaded)
	return fx, nil
}

func (f *Fixtures) merge(o Fixtures) {
	if o.Evaluations != nil {
		f.Evaluations = o.Evaluations
	}
	if o.Failures != nil {
		f.Failures = o.Failures
	}
	if o.Fortune != "" {
		f.Fortune = o.Fortune
	}
	if o.NameAnalysis != "" {
		f.NameAnalysis = o.NameAnalysis
	}
	if o.Prizes != nil {
		f.Prizes = o.Prizes
	}
	if o.ShareImage != "" {
		f.ShareImage = o.ShareImage
	}
	if o.Rankings != nil {
		f.Rankings = o.Rankings
	}
}
