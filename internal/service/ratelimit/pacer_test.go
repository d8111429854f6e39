package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestPacerZeroIntervalNeverWaits(t *testing.T) {
	p := NewPacer(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Fatalf("zero-interval pacer must not sleep")
	}
}

func TestPacerSpacesCalls(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	// first call free, two paced gaps
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("calls not paced: elapsed %v", elapsed)
	}
}

func TestPacerHonorsContext(t *testing.T) {
	p := NewPacer(time.Hour)
	if err := p.Wait(context.Background()); err != nil {
		t.Fatalf("first wait must be free: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := p.Wait(ctx); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestLimiterAllowsWithinCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 5; i++ {
		if !l.Allow("client", 5, 1) {
			t.Fatalf("call %d should be allowed", i)
		}
	}
	if l.Allow("client", 5, 1) {
		t.Fatalf("sixth immediate call should be limited")
	}
	// independent key unaffected
	if !l.Allow("other", 5, 1) {
		t.Fatalf("different key should be allowed")
	}
}
