package stats

import (
	"testing"
	"time"
)

func TestStep(t *testing.T) {
	t.Parallel()

	base := civilDay{year: 2025, month: time.March, day: 30}
	tests := []struct {
		name       string
		later      civilDay
		wantSame   bool
		wantBroken bool
	}{
		{name: "same day", later: base, wantSame: true, wantBroken: false},
		{name: "next day", later: civilDay{year: 2025, month: time.March, day: 31}, wantSame: false, wantBroken: false},
		{name: "gap of two across month", later: civilDay{year: 2025, month: time.April, day: 1}, wantSame: false, wantBroken: false},
		{name: "gap of three", later: civilDay{year: 2025, month: time.April, day: 2}, wantSame: false, wantBroken: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			same, broken := step(base, tt.later)
			if same != tt.wantSame || broken != tt.wantBroken {
				t.Errorf("step() = (%v, %v), want (%v, %v)", same, broken, tt.wantSame, tt.wantBroken)
			}
		})
	}
}
