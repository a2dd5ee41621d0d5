// Package presets holds the ticker lists behind the dashboard's dataset modes
// and the rules for turning user input into a clean ticker list.
package presets

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Mode selects which dataset the dashboard compares.
type Mode string

const (
	ModeCustom  Mode = "custom"
	ModeTop10   Mode = "top10"
	ModeIndices Mode = "indices"
)

//go:embed presets.yaml
var embedded []byte

// List is one preset: the selectable tickers and those selected by default.
type List struct {
	Tickers []string `yaml:"tickers" json:"tickers"`
	Default []string `yaml:"default" json:"default"`
}

// Presets is the full preset file.
type Presets struct {
	Top10   List `yaml:"top10" json:"top10"`
	Indices List `yaml:"indices" json:"indices"`
	Custom  List `yaml:"custom" json:"custom"`
}

// Load reads presets from path, or the embedded defaults when path is empty.
func Load(path string) (*Presets, error) {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read presets %s: %w", path, err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a presets document and normalizes every ticker in it.
func Parse(data []byte) (*Presets, error) {
	var p Presets
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse presets: %w", err)
	}
	for _, l := range []*List{&p.Top10, &p.Indices, &p.Custom} {
		l.Tickers = Clean(l.Tickers)
		l.Default = Clean(l.Default)
	}
	if len(p.Top10.Tickers) == 0 || len(p.Indices.Tickers) == 0 {
		return nil, fmt.Errorf("parse presets: top10 and indices must list tickers")
	}
	return &p, nil
}

// ParseMode accepts the mode names case-insensitively; empty means custom.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeCustom, nil
	case ModeCustom, ModeTop10, ModeIndices:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (custom|top10|indices)", s)
	}
}

// Resolve returns the tickers to compare. For custom mode the free text is
// parsed (empty text means the custom defaults); for preset modes the
// selection is restricted to the preset list. A nil selection falls back to
// the mode's defaults, while an explicit empty one stays empty.
func (p *Presets) Resolve(mode Mode, text string, selected []string) []string {
	switch mode {
	case ModeTop10:
		return pick(p.Top10, selected)
	case ModeIndices:
		return pick(p.Indices, selected)
	default:
		if selected != nil {
			return Clean(selected)
		}
		if text == "" {
			return append([]string(nil), p.Custom.Default...)
		}
		return ParseTickers(text)
	}
}

func pick(l List, selected []string) []string {
	if selected == nil {
		return append([]string(nil), l.Default...)
	}
	allowed := make(map[string]struct{}, len(l.Tickers))
	for _, t := range l.Tickers {
		allowed[t] = struct{}{}
	}
	out := []string{}
	for _, t := range Clean(selected) {
		if _, ok := allowed[t]; ok {
			out = append(out, t)
		}
	}
	return out
}

// ParseTickers splits comma separated input into clean tickers.
func ParseTickers(text string) []string {
	return Clean(strings.Split(text, ","))
}

// Clean trims and upper-cases tickers, dropping empties and duplicates while
// keeping first-seen order.
func Clean(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
