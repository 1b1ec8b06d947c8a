package util

import (
	"testing"
	"time"
)

func TestMonthStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-month",
			in:   time.Date(2025, time.March, 15, 13, 45, 2, 0, time.UTC),
			want: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already at month start",
			in:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC input is normalized to UTC",
			in:   time.Date(2025, time.March, 15, 1, 0, 0, 0, time.FixedZone("CET", 3600)),
			want: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("MonthStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNextMonthStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "mid-year",
			in:   time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "december rolls into next year",
			in:   time.Date(2025, time.December, 31, 23, 59, 59, 0, time.UTC),
			want: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextMonthStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("NextMonthStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonthsBack(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{
			name: "five months back crosses the year boundary",
			in:   time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			n:    5,
			want: time.Date(2024, time.October, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "zero months back is the month start",
			in:   time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			n:    0,
			want: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "from january",
			in:   time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC),
			n:    1,
			want: time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MonthsBack(tt.in, tt.n); !got.Equal(tt.want) {
				t.Errorf("MonthsBack(%v, %d) = %v, want %v", tt.in, tt.n, got, tt.want)
			}
		})
	}
}

func TestSameMonth(t *testing.T) {
	in := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

	if !SameMonth(in, 2025, time.March) {
		t.Error("expected March 2025 to match")
	}
	if SameMonth(in, 2025, time.April) {
		t.Error("did not expect April 2025 to match")
	}
	if SameMonth(in, 2024, time.March) {
		t.Error("did not expect March 2024 to match")
	}
}

func TestMonthLabel(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  string
	}{
		{2025, time.March, "Mar 2025"},
		{2024, time.October, "Oct 2024"},
		{2026, time.January, "Jan 2026"},
	}

	for _, tt := range tests {
		if got := MonthLabel(tt.year, tt.month); got != tt.want {
			t.Errorf("MonthLabel(%d, %v) = %q, want %q", tt.year, tt.month, got, tt.want)
		}
	}
}
