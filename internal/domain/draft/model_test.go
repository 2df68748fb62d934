package draft

import (
	"errors"
	"testing"
)

func TestPickerAt_SnakeOrder(t *testing.T) {
	order := []string{"m1", "m2", "m3", "m4"}

	want := []string{
		"m1", "m2", "m3", "m4", // round 1 ascending
		"m4", "m3", "m2", "m1", // round 2 descending
		"m1", "m2", "m3", "m4",
	}
	for i, expected := range want {
		if got := PickerAt(order, i); got != expected {
			t.Fatalf("PickerAt(%d) = %s, want %s", i, got, expected)
		}
	}

	// The formula from first principles: order[i mod N] on even rounds,
	// order[N-1-(i mod N)] on odd rounds.
	n := len(order)
	for i := 0; i < n*15; i++ {
		var expected string
		if (i/n)%2 == 0 {
			expected = order[i%n]
		} else {
			expected = order[n-1-(i%n)]
		}
		if got := PickerAt(order, i); got != expected {
			t.Fatalf("PickerAt(%d) = %s, want %s", i, got, expected)
		}
	}
}

func TestNewState(t *testing.T) {
	tests := []struct {
		name      string
		order     []string
		targetErr error
		wantErr   bool
	}{
		{name: "two managers", order: []string{"m1", "m2"}},
		{name: "single manager", order: []string{"m1"}, targetErr: ErrTooFewManagers, wantErr: true},
		{name: "empty order", order: nil, targetErr: ErrTooFewManagers, wantErr: true},
		{name: "duplicate manager", order: []string{"m1", "m1"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state, err := NewState(tc.order)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if tc.targetErr != nil && !errors.Is(err, tc.targetErr) {
					t.Fatalf("expected %v, got %v", tc.targetErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewState failed: %v", err)
			}
			if state.Phase != PhaseInProgress {
				t.Fatalf("expected phase %s, got %s", PhaseInProgress, state.Phase)
			}
			if picker, ok := state.CurrentPicker(); !ok || picker != tc.order[0] {
				t.Fatalf("expected first picker %s, got %s (ok=%v)", tc.order[0], picker, ok)
			}
		})
	}
}

func TestState_TotalPicks(t *testing.T) {
	state, err := NewState([]string{"m1", "m2", "m3"})
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	if got := state.TotalPicks(); got != 45 {
		t.Fatalf("TotalPicks() = %d, want 45", got)
	}
}
