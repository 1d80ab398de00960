package cmd

import (
	"reflect"
	"testing"
	"time"
)

func TestParseDueDate(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.Local)

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-09-01T09:30:00Z", time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC)},
		{"2026-09-01 09:30", time.Date(2026, 9, 1, 9, 30, 0, 0, time.Local)},
		{"2026-09-01", time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := parseDueDate(tt.input, now)
		if err != nil {
			t.Errorf("parseDueDate(%q): %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("parseDueDate(%q): got %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := parseDueDate("next tuesday", now); err == nil {
		t.Error("fuzzy due date accepted")
	}
}

func TestSplitAndTrim(t *testing.T) {
	if got := splitAndTrim("a, b ,c", ","); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("splitAndTrim: got %v", got)
	}
	if got := splitAndTrim("", ","); got != nil {
		t.Errorf("splitAndTrim of empty input: got %v, want nil", got)
	}
}
