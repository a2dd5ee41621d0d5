package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRequestID(t *testing.T) {
	const incoming = "3f0b7a5e-2c55-4a7b-9f1e-0a4d8c3b6e21"

	cases := []struct {
		name     string
		header   string
		wantSame bool
	}{
		{name: "generated", header: ""},
		{name: "propagated", header: incoming, wantSame: true},
		{name: "garbage replaced", header: "not-a-uuid"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gin.SetMode(gin.TestMode)
			r := gin.New()
			r.Use(RequestID())
			var seen string
			r.GET("/", func(c *gin.Context) {
				seen = c.GetString(RequestIDKey)
				c.String(200, "ok")
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set(RequestIDHeader, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			got := w.Header().Get(RequestIDHeader)
			if got == "" || got != seen {
				t.Fatalf("header=%q context=%q", got, seen)
			}
			if tc.wantSame != (got == incoming) {
				t.Fatalf("header=%q wantSame=%v", got, tc.wantSame)
			}
		})
	}
}
