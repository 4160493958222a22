package timeutil

import (
	"testing"
	"time"
)

func TestNow_IsUTC(t *testing.T) {
	if loc := Now().Location(); loc != time.UTC {
		t.Errorf("Now() location = %v, want UTC", loc)
	}
}

func TestDateOf_KeepsLocalCalendarDay(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	late := time.Date(2024, 3, 9, 23, 30, 0, 0, saoPaulo) // already the 10th in UTC

	got := DateOf(late)
	if FormatDate(got) != "2024-03-09" {
		t.Errorf("DateOf() = %s, want 2024-03-09", FormatDate(got))
	}
	if got.Location() != time.UTC || got.Hour() != 0 {
		t.Errorf("DateOf() = %v, want midnight UTC", got)
	}
}

func TestDateIn(t *testing.T) {
	instant := time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)
	saoPaulo := time.FixedZone("BRT", -3*60*60)

	tests := []struct {
		name     string
		loc      *time.Location
		expected string
	}{
		{"utc", time.UTC, "2024-03-10"},
		{"ahead of utc", tokyo, "2024-03-10"},
		{"behind utc crosses midnight", saoPaulo, "2024-03-09"},
		{"nil location means utc", nil, "2024-03-10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(DateIn(instant, tt.loc)); got != tt.expected {
				t.Errorf("DateIn() = %s, want %s", got, tt.expected)
			}
		})
	}
}

func TestDatesSubtractInWholeDays(t *testing.T) {
	due := DateOf(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	today := DateIn(time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC), time.UTC)

	if days := today.Sub(due).Hours() / 24; days != 4 {
		t.Errorf("days between = %v, want 4", days)
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-10")
	if err != nil {
		t.Fatalf("ParseDate() error = %v", err)
	}
	if !got.Equal(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("ParseDate() = %v", got)
	}

	if _, err := ParseDate("10/03/2024"); err == nil {
		t.Error("ParseDate() accepted a non ISO date")
	}
}
