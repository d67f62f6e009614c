package util

import (
	"net/http"
	"net/url"
	"testing"
)

func requestFor(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse %s: %v", rawURL, err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "http://sproxy:3128", "")

	u, err := proxy(requestFor(t, "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u.Host != "sproxy:3128" {
		t.Errorf("https request routed to %s, want sproxy:3128", u.Host)
	}

	u, err = proxy(requestFor(t, "http://api.example.com/v1"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u.Host != "proxy:3128" {
		t.Errorf("http request routed to %s, want proxy:3128", u.Host)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy:3128", "", "internal.example.com,.corp.local")

	for _, target := range []string{
		"https://internal.example.com/api",
		"https://svc.corp.local/api",
	} {
		u, err := proxy(requestFor(t, target))
		if err != nil {
			t.Fatalf("proxy(%s): %v", target, err)
		}
		if u != nil {
			t.Errorf("%s routed through %v, want direct", target, u)
		}
	}

	u, err := proxy(requestFor(t, "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("proxy: %v", err)
	}
	if u == nil {
		t.Error("unlisted host bypassed the proxy")
	}
}
