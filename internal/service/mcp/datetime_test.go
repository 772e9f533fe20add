package mcp

import (
	"testing"
	"time"
)

func TestParseDateTimeFormat(t *testing.T) {
	tests := []struct {
		input any
		want  DateTimeFormat
	}{
		{"iso", DateTimeFormatISO},
		{"iso-8601", DateTimeFormatISO},
		{"short", DateTimeFormatShort},
		{"locale-short", DateTimeFormatShort},
		{"full", DateTimeFormatFull},
		{"locale-full", DateTimeFormatFull},
		{"FULL", DateTimeFormatISO},
		{"", DateTimeFormatISO},
		{nil, DateTimeFormatISO},
		{1, DateTimeFormatISO},
	}
	for _, tt := range tests {
		if got := ParseDateTimeFormat(tt.input); got != tt.want {
			t.Errorf("ParseDateTimeFormat(%v) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, time.March, 14, 9, 26, 53, 589_000_000, time.UTC)

	tests := []struct {
		format DateTimeFormat
		want   string
	}{
		{DateTimeFormatISO, "2025-03-14T09:26:53.589Z"},
		{DateTimeFormatShort, "3/14/2025, 9:26 AM"},
		{DateTimeFormatFull, "Friday, March 14, 2025 at 9:26:53 AM UTC"},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := FormatDateTime(ts, tt.format); got != tt.want {
				t.Errorf("FormatDateTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDateTimeISOIsAlwaysUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2025, time.March, 14, 11, 26, 53, 0, loc)

	want := "2025-03-14T09:26:53.000Z"
	if got := FormatDateTime(ts, DateTimeFormatISO); got != want {
		t.Errorf("FormatDateTime() = %q, want %q", got, want)
	}
}
