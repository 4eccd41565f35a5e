package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/papacapim/server/store"
)

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		query  string
		want   store.Page
		ok     bool
		status int
	}{
		{"", 1, true, http.StatusOK},
		{"?page=3", 3, true, http.StatusOK},
		{"?page=0", 0, false, http.StatusBadRequest},
		{"?page=-2", 0, false, http.StatusBadRequest},
		{"?page=two", 0, false, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			ctx, _ := gin.CreateTestContext(w)
			ctx.Request = httptest.NewRequest(http.MethodGet, "/posts"+tc.query, nil)

			got, ok := parsePage(ctx)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("parsePage = %d, %v; want %d, %v", got, ok, tc.want, tc.ok)
			}
			if w.Code != tc.status {
				t.Fatalf("status = %d, want %d", w.Code, tc.status)
			}
		})
	}
}

func TestValidLogin(t *testing.T) {
	for _, s := range []string{"alice", "bob_99", "a.b-c"} {
		if !validLogin(s) {
			t.Errorf("%q rejected", s)
		}
	}
	for _, s := range []string{"", "has space", "slash/y", "emoji🙂"} {
		if validLogin(s) {
			t.Errorf("%q accepted", s)
		}
	}
}

func TestParseUint(t *testing.T) {
	if n, ok := parseUint("42"); !ok || n != 42 {
		t.Fatalf("got %d %v", n, ok)
	}
	for _, s := range []string{"0", "-1", "abc", ""} {
		if _, ok := parseUint(s); ok {
			t.Errorf("%q accepted", s)
		}
	}
}
