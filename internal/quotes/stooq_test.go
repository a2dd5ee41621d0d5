package quotes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const stooqCSV = "Date,Open,High,Low,Close,Volume\n" +
	"2024-01-03,184.2,185.8,183.4,184.25,58414460\n" +
	"2024-01-02,187.1,188.4,183.8,185.64,82488670\n"

func TestStooqSymbol(t *testing.T) {
	p := NewStooqProvider(http.DefaultClient)
	cases := map[string]string{
		"AAPL":   "aapl.us",
		"^GSPC":  "^spx",
		"^IXIC":  "^ndq",
		"BRK.B":  "brk.b",
		"^FTSE":  "^ftse",
		"VOD.UK": "vod.uk",
	}
	for in, want := range cases {
		if got := p.symbol(in); got != want {
			t.Fatalf("symbol(%q)=%q want %q", in, got, want)
		}
	}
}

func TestStooq_FetchDaily(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(stooqCSV))
	}))
	defer srv.Close()

	p := NewStooqProvider(srv.Client())
	p.BaseURL = srv.URL + "/q/d/l/"
	s, err := p.FetchDaily(context.Background(), "aapl", period2024())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if s.Source != "stooq" || len(s.Points) != 2 {
		t.Fatalf("unexpected series %+v", s)
	}
	if !s.First().Date.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) || s.First().Close != 185.64 {
		t.Fatalf("points not sorted ascending: %+v", s.Points)
	}
	for _, want := range []string{"s=aapl.us", "d1=20240101", "d2=20241231", "i=d"} {
		if !strings.Contains(gotQuery, want) {
			t.Fatalf("query %q missing %q", gotQuery, want)
		}
	}
}

func TestStooq_NoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("No data"))
	}))
	defer srv.Close()

	p := NewStooqProvider(srv.Client())
	p.BaseURL = srv.URL
	if _, err := p.FetchDaily(context.Background(), "NOPE", period2024()); !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestParseStooqCSV_TableDriven(t *testing.T) {
	header := "Date,Open,High,Low,Close,Volume\n"
	cases := []struct {
		name     string
		content  string
		wantErr  bool
		wantRows int
	}{
		{name: "ok", content: stooqCSV, wantRows: 2},
		{name: "index without volume", content: "Date,Open,High,Low,Close\n2024-01-02,1,1,1,4742.83\n", wantRows: 1},
		{name: "bad header order", content: "Open,Date,High,Low,Close,Volume\n", wantErr: true},
		{name: "bad col count", content: header + "2024-01-02,1,2\n", wantErr: true},
		{name: "empty close tolerated", content: header + "2024-01-02,1,1,1,,0\n", wantRows: 0},
		{name: "invalid close", content: header + "2024-01-02,1,1,1,abc,0\n", wantErr: true},
		{name: "invalid date", content: header + "02/01/2024,1,1,1,1,0\n", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pts, err := parseStooqCSV(strings.NewReader(tc.content))
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if len(pts) != tc.wantRows {
				t.Fatalf("rows=%d want %d", len(pts), tc.wantRows)
			}
		})
	}
}
