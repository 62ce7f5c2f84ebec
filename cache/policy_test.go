package cache

import (
	"testing"
	"time"
)

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.DefaultTTL != time.Hour {
		t.Errorf("DefaultTTL = %v, want 1h", p.DefaultTTL)
	}
	if p.MaxTTL != 24*time.Hour {
		t.Errorf("MaxTTL = %v, want 24h", p.MaxTTL)
	}
	if !p.ShouldCache() {
		t.Error("ShouldCache() = false, want true")
	}
}

func TestNoCachePolicy(t *testing.T) {
	p := NoCachePolicy()

	if p.ShouldCache() {
		t.Error("ShouldCache() = true, want false")
	}
	if got := p.EffectiveTTL(0); got != 0 {
		t.Errorf("EffectiveTTL(0) = %v, want 0", got)
	}
}

func TestPolicy_EffectiveTTL(t *testing.T) {
	p := Policy{
		DefaultTTL: 10 * time.Minute,
		MaxTTL:     time.Hour,
	}

	tests := []struct {
		name     string
		override time.Duration
		want     time.Duration
	}{
		{"no override uses default", 0, 10 * time.Minute},
		{"negative override uses default", -time.Second, 10 * time.Minute},
		{"override within max", 30 * time.Minute, 30 * time.Minute},
		{"override clamped to max", 2 * time.Hour, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.EffectiveTTL(tt.override); got != tt.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.override, got, tt.want)
			}
		})
	}
}

func TestPolicy_EffectiveTTL_NoMax(t *testing.T) {
	p := Policy{DefaultTTL: time.Minute}

	if got := p.EffectiveTTL(100 * time.Hour); got != 100*time.Hour {
		t.Errorf("EffectiveTTL with no MaxTTL = %v, want 100h", got)
	}
}
