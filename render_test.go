package main

import "testing"

func TestTruncateString(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a long book title", 10, "this is..."},
		{"ab", 2, "ab"},
		{"abcd", 3, "abc"},
		{"", 5, ""},
	}
	for _, tt := range tests {
		if got := truncateString(tt.input, tt.maxLen); got != tt.expected {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
		}
	}
}

func TestFormatStars(t *testing.T) {
	tests := []struct {
		rating   int
		expected string
	}{
		{0, "☆☆☆☆☆ 0.0"},
		{1, "★☆☆☆☆ 1.0"},
		{4, "★★★★☆ 4.0"},
		{5, "★★★★★ 5.0"},
		{-3, "☆☆☆☆☆ 0.0"},
		{9, "★★★★★ 5.0"},
	}
	for _, tt := range tests {
		if got := formatStars(tt.rating); got != tt.expected {
			t.Errorf("formatStars(%d) = %q, want %q", tt.rating, got, tt.expected)
		}
	}
}

func TestFallbackPrefersServerMessage(t *testing.T) {
	if got := fallback("insufficient stock", "borrow_failed"); got != "insufficient stock" {
		t.Errorf("server message dropped: %q", got)
	}
	if got := fallback("   ", "borrow_failed"); got != messages["borrow_failed"] {
		t.Errorf("blank server message should fall back, got %q", got)
	}
	if got := fallback("", "borrow_failed"); got != messages["borrow_failed"] {
		t.Errorf("empty server message should fall back, got %q", got)
	}
}

func TestMsgUnknownKeyReturnsKey(t *testing.T) {
	if got := msg("no_such_key"); got != "no_such_key" {
		t.Errorf("msg fallback broken: %q", got)
	}
	if got := msg("borrow_ok"); got != "Book borrowed successfully!" {
		t.Errorf("msg lookup broken: %q", got)
	}
}

func TestShortDate(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2026-08-31T12:04:55Z", "2026-08-31"},
		{"2026-08-31", "2026-08-31"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := shortDate(tt.input); got != tt.expected {
			t.Errorf("shortDate(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestDerefOr(t *testing.T) {
	val := "Herbert"
	empty := ""
	if got := derefOr(&val, "Unknown"); got != "Herbert" {
		t.Errorf("derefOr with value = %q", got)
	}
	if got := derefOr(nil, "Unknown"); got != "Unknown" {
		t.Errorf("derefOr with nil = %q", got)
	}
	if got := derefOr(&empty, "Unknown"); got != "Unknown" {
		t.Errorf("derefOr with empty = %q", got)
	}
}

func TestFeedbackLabels(t *testing.T) {
	if got := feedbackTypeLabel("suggestion"); got != "Suggestion" {
		t.Errorf("type label = %q", got)
	}
	if got := feedbackTypeLabel("request"); got != "Book Request" {
		t.Errorf("type label = %q", got)
	}
	if got := feedbackTypeLabel("other"); got != "other" {
		t.Errorf("unknown type should pass through, got %q", got)
	}
	if got := feedbackStatusLabel("pending"); got != "Pending" {
		t.Errorf("status label = %q", got)
	}
	if got := feedbackStatusLabel("replied"); got != "Replied" {
		t.Errorf("status label = %q", got)
	}
}
