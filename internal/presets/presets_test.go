package presets

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoad_Embedded(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(p.Top10.Tickers) != 10 || p.Top10.Tickers[0] != "AAPL" {
		t.Fatalf("unexpected top10 %v", p.Top10.Tickers)
	}
	if !reflect.DeepEqual(p.Indices.Tickers, []string{"^GSPC", "^IXIC", "^DJI"}) {
		t.Fatalf("unexpected indices %v", p.Indices.Tickers)
	}
	if !reflect.DeepEqual(p.Custom.Default, []string{"AAPL", "MSFT", "TSLA"}) {
		t.Fatalf("unexpected custom default %v", p.Custom.Default)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "presets.yaml")
	doc := "top10:\n  tickers: [ibm, ibm, ' ko ']\nindices:\n  tickers: ['^n225']\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(p.Top10.Tickers, []string{"IBM", "KO"}) {
		t.Fatalf("got %v", p.Top10.Tickers)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := Parse([]byte("top10: {}\n")); err == nil {
		t.Fatalf("expected error for empty lists")
	}
}

func TestParseTickers(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"AAPL, MSFT, TSLA", []string{"AAPL", "MSFT", "TSLA"}},
		{" aapl ,,msft, ", []string{"AAPL", "MSFT"}},
		{"aapl,AAPL", []string{"AAPL"}},
		{"", []string{}},
		{" , ", []string{}},
	}
	for _, tc := range cases {
		if got := ParseTickers(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("ParseTickers(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	cases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeCustom, false},
		{"Top10", ModeTop10, false},
		{" indices ", ModeIndices, false},
		{"crypto", "", true},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Fatalf("ParseMode(%q)=%q,%v", tc.in, got, err)
		}
	}
}

func TestResolve(t *testing.T) {
	p, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cases := []struct {
		name     string
		mode     Mode
		text     string
		selected []string
		want     []string
	}{
		{name: "top10 defaults", mode: ModeTop10, want: []string{"AAPL", "MSFT"}},
		{name: "indices defaults", mode: ModeIndices, want: []string{"^GSPC", "^IXIC"}},
		{name: "top10 filters unknown", mode: ModeTop10, selected: []string{"nvda", "IBM"}, want: []string{"NVDA"}},
		{name: "top10 explicit empty", mode: ModeTop10, selected: []string{}, want: []string{}},
		{name: "custom defaults", mode: ModeCustom, want: []string{"AAPL", "MSFT", "TSLA"}},
		{name: "custom text", mode: ModeCustom, text: "ko, pep", want: []string{"KO", "PEP"}},
		{name: "custom selected wins", mode: ModeCustom, text: "ko", selected: []string{"ibm"}, want: []string{"IBM"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Resolve(tc.mode, tc.text, tc.selected); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}
