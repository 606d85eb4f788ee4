package logging

import (
	"testing"
	"time"
)

func TestTrackAudit(t *testing.T) {
	s := &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		PopularURLs:    make(map[string]int),
	}

	s.TrackAudit("https://example.com/page?utm=x", 120, false)
	s.TrackAudit("https://example.com/page", 80, true)
	s.TrackAudit("", 10, false)

	if s.AuditRequests != 3 {
		t.Errorf("Expected 3 audit requests, got %d", s.AuditRequests)
	}
	if s.PopularURLs["https://example.com/page"] != 2 {
		t.Errorf("Expected 2 hits for cleaned URL, got %d", s.PopularURLs["https://example.com/page"])
	}
	if len(s.PopularURLs) != 1 {
		t.Errorf("Empty URLs should not be tracked, got %v", s.PopularURLs)
	}
	if rate := s.GetErrorRate(); rate < 33 || rate > 34 {
		t.Errorf("Expected error rate around 33%%, got %f", rate)
	}
}

func TestCleanURL(t *testing.T) {
	cases := map[string]string{
		"https://example.com/page/":      "https://example.com/page",
		"https://example.com/":           "https://example.com",
		"http://localhost:8082/analyze":  "",
		"http://127.0.0.1:8082/analyze":  "",
		"":                               "",
	}

	for input, want := range cases {
		if got := cleanURL(input); got != want {
			t.Errorf("cleanURL(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestVisitorTracking(t *testing.T) {
	s := &Statistics{
		UniqueVisitors: make(map[string]time.Time),
		PopularURLs:    make(map[string]int),
	}

	s.TrackVisitor("1.2.3.4")
	s.TrackVisitor("1.2.3.4")
	s.TrackVisitor("5.6.7.8")

	if count := s.GetUniqueVisitorsCount(); count != 2 {
		t.Errorf("Expected 2 unique visitors, got %d", count)
	}
}
