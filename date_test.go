package fund

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2026-01-15", "2026-01-15", false},
		{"2026-1-5", "2026-01-05", false}, // lenient single digits
		{"2026/01/15", "", true},
		{"yesterday", "", true},
		{"", "", true},
	}
	for _, tc := range tests {
		got, err := ParseDate(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseDate(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if err == nil && got.String() != tc.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestDateNormalization(t *testing.T) {
	// Out-of-range days roll over like time.Date.
	if got := NewDate(2026, time.January, 32).String(); got != "2026-02-01" {
		t.Errorf("got %s, want 2026-02-01", got)
	}
	if got := NewDate(2026, time.February, 28).Add(1).String(); got != "2026-03-01" {
		t.Errorf("got %s, want 2026-03-01", got)
	}
}

func TestDateJSON(t *testing.T) {
	day := NewDate(2026, time.August, 30)
	content, err := json.Marshal(day)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != `"2026-08-30"` {
		t.Errorf("marshal = %s", content)
	}

	var got Date
	if err := json.Unmarshal(content, &got); err != nil {
		t.Fatal(err)
	}
	if got != day {
		t.Errorf("round trip = %s, want %s", got, day)
	}

	// The zero date round-trips through the empty string.
	var zero Date
	content, err = json.Marshal(zero)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != `""` {
		t.Errorf("zero marshal = %s, want \"\"", content)
	}
	var back Date
	if err := json.Unmarshal(content, &back); err != nil {
		t.Fatal(err)
	}
	if !back.IsZero() {
		t.Errorf("zero round trip = %s", back)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, time.March, 1)
	b := NewDate(2026, time.March, 2)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Error("date ordering broken")
	}
}
