package pulse

import (
	"math"
	"testing"
)

func TestTracker_RisingThenFalling(t *testing.T) {
	tr := NewTracker(SpeedOfSoundMPS, PolicyOverwrite)

	p, res := tr.OnEdge(Rising, 1_000_000)
	if res != ResultNone {
		t.Fatalf("expected ResultNone on first rising edge, got %v", res)
	}
	if !tr.Armed() {
		t.Fatal("expected tracker armed after rising edge")
	}

	p, res = tr.OnEdge(Falling, 3_000_000)
	if res != ResultPulse {
		t.Fatalf("expected ResultPulse, got %v", res)
	}
	if tr.Armed() {
		t.Fatal("expected tracker disarmed after falling edge")
	}
	if p.WidthNS != 2_000_000 {
		t.Errorf("expected width 2000000ns, got %d", p.WidthNS)
	}

	// 343 * 2e6 * 1e-9 / 2 = 0.343 m
	if math.Abs(p.DistanceM-0.343) > 1e-9 {
		t.Errorf("expected distance 0.343m, got %v", p.DistanceM)
	}
}

func TestTracker_FixedPointMatchesFloat(t *testing.T) {
	cases := []int64{0, 1, 999, 58_309, 2_000_000, 11_764_705, 38_000_000}
	for _, width := range cases {
		um := DistanceMicrometers(width)
		floatUM := SpeedOfSoundMPS * float64(width) * 1e-9 / 2.0 * 1e6
		if diff := floatUM - float64(um); diff < 0 || diff > 1.0 {
			t.Errorf("width %dns: fixed %dum vs float %.3fum, diff %.3f exceeds 1um",
				width, um, floatUM, diff)
		}
	}
	if got := DistanceMicrometers(2_000_000); got != 343_000 {
		t.Errorf("expected 343000um for 2ms width, got %d", got)
	}
}

func TestTracker_FallingWithoutRisingIsOverrun(t *testing.T) {
	tr := NewTracker(SpeedOfSoundMPS, PolicyOverwrite)

	_, res := tr.OnEdge(Falling, 5_000)
	if res != ResultOverrun {
		t.Fatalf("expected ResultOverrun, got %v", res)
	}
	if tr.Armed() {
		t.Error("overrun must not arm the tracker")
	}

	// The tracker must still measure normally afterwards.
	tr.OnEdge(Rising, 10_000)
	p, res := tr.OnEdge(Falling, 20_000)
	if res != ResultPulse || p.WidthNS != 10_000 {
		t.Errorf("expected clean 10000ns pulse after overrun, got %v width=%d", res, p.WidthNS)
	}
}

func TestTracker_DoubleRisingRestarts(t *testing.T) {
	tr := NewTracker(SpeedOfSoundMPS, PolicyOverwrite)

	tr.OnEdge(Rising, 1_000)
	_, res := tr.OnEdge(Rising, 5_000)
	if res != ResultRestart {
		t.Fatalf("expected ResultRestart on second rising edge, got %v", res)
	}

	// Width must be measured from the newer rising edge.
	p, res := tr.OnEdge(Falling, 8_000)
	if res != ResultPulse {
		t.Fatalf("expected ResultPulse, got %v", res)
	}
	if p.WidthNS != 3_000 {
		t.Errorf("expected width from restarted rise (3000ns), got %d", p.WidthNS)
	}
}

func TestTracker_ResetDisarms(t *testing.T) {
	tr := NewTracker(SpeedOfSoundMPS, PolicyOverwrite)
	tr.OnEdge(Rising, 1_000)
	tr.Reset()
	if tr.Armed() {
		t.Fatal("expected Reset to disarm")
	}
	if _, res := tr.OnEdge(Falling, 2_000); res != ResultOverrun {
		t.Errorf("falling edge after reset must be an overrun, got %v", res)
	}
}

func TestTracker_CustomSpeedUsesFloatPath(t *testing.T) {
	tr := NewTracker(340.0, PolicyOverwrite)
	tr.OnEdge(Rising, 0)
	p, _ := tr.OnEdge(Falling, 2_000_000)
	// 340 * 2e-3 / 2 = 0.340 m
	if math.Abs(p.DistanceM-0.340) > 1e-9 {
		t.Errorf("expected 0.340m at c=340, got %v", p.DistanceM)
	}
	if p.DistanceUM != 340_000 {
		t.Errorf("expected 340000um derived from float path, got %d", p.DistanceUM)
	}
}
