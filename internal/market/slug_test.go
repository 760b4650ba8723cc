package market

import (
	"strings"
	"testing"
	"time"
)

func TestHourLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12am"},
		{1, "1am"},
		{9, "9am"},
		{11, "11am"},
		{12, "12pm"},
		{13, "1pm"},
		{18, "6pm"},
		{23, "11pm"},
	}

	for _, tt := range tests {
		if got := HourLabel(tt.hour); got != tt.want {
			t.Errorf("HourLabel(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want string
	}{
		{
			name: "midnight",
			time: time.Date(2025, time.January, 5, 0, 15, 0, 0, time.UTC),
			want: "bitcoin-up-or-down-january-5-12am-et",
		},
		{
			name: "noon",
			time: time.Date(2025, time.March, 12, 12, 0, 0, 0, time.UTC),
			want: "bitcoin-up-or-down-march-12-12pm-et",
		},
		{
			name: "afternoon",
			time: time.Date(2025, time.October, 14, 13, 59, 59, 0, time.UTC),
			want: "bitcoin-up-or-down-october-14-1pm-et",
		},
		{
			name: "last hour",
			time: time.Date(2025, time.December, 31, 23, 30, 0, 0, time.UTC),
			want: "bitcoin-up-or-down-december-31-11pm-et",
		},
		{
			name: "single digit day not padded",
			time: time.Date(2025, time.September, 1, 7, 0, 0, 0, time.UTC),
			want: "bitcoin-up-or-down-september-1-7am-et",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.time); got != tt.want {
				t.Errorf("Slug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlugUsesTimeLocation(t *testing.T) {
	// 03:00 UTC is 23:00 the previous day at UTC-4; the slug follows the
	// location carried by the time value and still ends in -et.
	zone := time.FixedZone("EDT", -4*60*60)
	instant := time.Date(2025, time.June, 10, 3, 0, 0, 0, time.UTC)

	if got, want := Slug(instant.In(zone)), "bitcoin-up-or-down-june-9-11pm-et"; got != want {
		t.Errorf("Slug() = %q, want %q", got, want)
	}
	if got, want := Slug(instant), "bitcoin-up-or-down-june-10-3am-et"; got != want {
		t.Errorf("Slug() = %q, want %q", got, want)
	}
}

func TestSlugStableWithinHour(t *testing.T) {
	start := time.Date(2025, time.May, 2, 16, 0, 0, 0, time.UTC)
	want := Slug(start)

	for m := 0; m < 60; m += 7 {
		if got := Slug(start.Add(time.Duration(m) * time.Minute)); got != want {
			t.Errorf("Slug at +%dm = %q, want %q", m, got, want)
		}
	}
	if got := Slug(start.Add(time.Hour)); got == want {
		t.Errorf("Slug did not change across the hour boundary: %q", got)
	}
	if !strings.HasSuffix(want, "-4pm-et") {
		t.Errorf("Slug() = %q, want -4pm-et suffix", want)
	}
}
