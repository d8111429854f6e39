package util

import (
	"testing"
	"time"
)

func TestParseDayISO(t *testing.T) {
	got, ok := ParseDay("2024-07-15")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected day %v", got)
	}
}

func TestParseDayUS(t *testing.T) {
	got, ok := ParseDay("07/15/2024")
	if !ok {
		t.Fatalf("expected ok")
	}
	if DayKey(got) != "2024-07-15" {
		t.Fatalf("unexpected key %s", DayKey(got))
	}
}

func TestParseDayTruncatesTimestamp(t *testing.T) {
	got, ok := ParseDay("2024-07-15T13:45:00")
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}
}

func TestParseDayInvalid(t *testing.T) {
	if _, ok := ParseDay("ONPEAK"); ok {
		t.Fatalf("expected not ok")
	}
	if _, ok := ParseDay(""); ok {
		t.Fatalf("expected not ok for empty")
	}
}
