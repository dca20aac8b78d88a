package config

import "testing"

func TestResolver_Precedence(t *testing.T) {
	high := NewFlagSource()
	high.Set(KeyChannelCount, 3)

	low := NewFlagSource()
	low.Set(KeyChannelCount, 8)
	low.Set(KeySmoothingWindow, 7)

	r := NewConfigResolver(high, low)

	if got := r.ResolveInt(KeyChannelCount, 5); got != 3 {
		t.Errorf("expected first source to win, got %d", got)
	}
	if got := r.ResolveInt(KeySmoothingWindow, 5); got != 7 {
		t.Errorf("expected fallthrough to second source, got %d", got)
	}
	if got := r.ResolveInt(KeyArmedTimeoutMS, 100); got != 100 {
		t.Errorf("expected default when no source has the key, got %d", got)
	}
}

func TestResolver_TypedResolution(t *testing.T) {
	src := NewFlagSource()
	src.Set(KeySpeedOfSoundMPS, 331.4)
	src.Set(KeyJSONLPath, "/tmp/out.jsonl")
	src.Set(KeyDashboard, true)

	r := NewConfigResolver(src)

	if got := r.ResolveFloat(KeySpeedOfSoundMPS, 343.0); got != 331.4 {
		t.Errorf("expected 331.4, got %v", got)
	}
	if got := r.ResolveString(KeyJSONLPath, ""); got != "/tmp/out.jsonl" {
		t.Errorf("expected path, got %q", got)
	}
	if got := r.ResolveBool(KeyDashboard, false); !got {
		t.Error("expected true for dashboard")
	}
	if got := r.ResolveBool(KeyExportStats, true); !got {
		t.Error("expected default true for unset bool")
	}
}
