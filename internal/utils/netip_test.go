package utils

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/MrSnakeDoc/learntube/internal/logger"
)

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"10.0.0.0/8", " 192.168.1.10 ", "fd00::/8", "", "not-an-ip"})

	tests := []struct {
		ip   string
		want bool
	}{
		{"10.1.2.3", true},
		{"192.168.1.10", true},
		{"192.168.1.11", false},
		{"::ffff:10.0.0.1", true},
		{"fd12::1", true},
		{"2001:db8::1", false},
		{"", false},
		{"garbage", false},
	}
	for _, tt := range tests {
		if got := m.Allow(tt.ip); got != tt.want {
			t.Errorf("Allow(%q) = %v, want %v", tt.ip, got, tt.want)
		}
	}

	if m.IsEmpty() {
		t.Error("matcher with rules reported empty")
	}
	if !NewIPMatcher([]string{" ", "nope"}).IsEmpty() {
		t.Error("matcher without valid rules should be empty")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", want: "192.0.2.1"},
		{name: "proxy headers ignored", headers: map[string]string{"X-Forwarded-For": "203.0.113.9"}, want: "192.0.2.1"},
		{name: "cloudflare first", headers: map[string]string{"CF-Connecting-IP": "198.51.100.7", "X-Forwarded-For": "203.0.113.9"}, trustProxy: true, want: "198.51.100.7"},
		{name: "left-most forwarded", headers: map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, trustProxy: true, want: "203.0.113.9"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "203.0.113.10"}, trustProxy: true, want: "203.0.113.10"},
		{name: "no headers", trustProxy: true, want: "192.0.2.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			if got := ClientIP(r, tt.trustProxy); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseHostNoPort(t *testing.T) {
	tests := map[string]string{
		"":              "",
		"10.0.0.1:8080": "10.0.0.1",
		"[::1]:443":     "::1",
		"::1":           "::1",
		"[2001:db8::1]": "2001:db8::1",
		"203.0.113.9":   "203.0.113.9",
	}
	for in, want := range tests {
		if got := ParseHostNoPort(in); got != want {
			t.Errorf("ParseHostNoPort(%q) = %q, want %q", in, got, want)
		}
	}
}

type errCloser struct{ closed bool }

func (c *errCloser) Close() error {
	c.closed = true
	return errors.New("boom")
}

func TestClose(t *testing.T) {
	c := &errCloser{}
	Close(c)
	if !c.closed {
		t.Error("Close() did not close")
	}
}

func TestMustClose(t *testing.T) {
	c := &errCloser{}
	MustClose(c, "test", logger.Nop())
	if !c.closed {
		t.Error("MustClose() did not close")
	}
}
